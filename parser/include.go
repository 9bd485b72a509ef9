package parser

import (
	"path/filepath"
	"sort"

	"github.com/nginxconf/gonginx/catalog"
	ngxerr "github.com/nginxconf/gonginx/errors"
)

// resolveInclude expands pattern (relative to the root file's directory)
// as a filesystem glob, enqueues each newly-seen match for parsing at the
// given context, and returns the config-array indices of every match (old
// or new). A pattern matching nothing is not an error.
func (s *session) resolveInclude(pattern string, ctxStack []catalog.Context) ([]int, error) {
	full := pattern
	if !filepath.IsAbs(pattern) {
		full = filepath.Join(s.rootDir, pattern)
	}

	matches, err := filepath.Glob(full)
	if err != nil {
		return nil, ngxerr.NewIncludeError("invalid include pattern \"" + pattern + "\": " + err.Error())
	}
	sort.Strings(matches)

	idxs := make([]int, 0, len(matches))
	for _, m := range matches {
		key := normalizePath(m)
		if existing, ok := s.visited[key]; ok {
			idxs = append(idxs, existing)
			continue
		}
		if len(s.visited) >= s.p.maxFiles {
			return idxs, ngxerr.NewIncludeCycleError(s.p.maxFiles)
		}
		idxs = append(idxs, s.reserve(m, m, append([]catalog.Context{}, ctxStack...)))
	}
	return idxs, nil
}
