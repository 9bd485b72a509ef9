package parser

import (
	"fmt"
	"path/filepath"

	"github.com/nginxconf/gonginx/analyzer"
	"github.com/nginxconf/gonginx/catalog"
	"github.com/nginxconf/gonginx/config"
	ngxerr "github.com/nginxconf/gonginx/errors"
	"github.com/nginxconf/gonginx/token"
)

// maxBlockDepth bounds block nesting; exceeding it raises a RecursionError
// that aborts the whole session, even under catch_errors.
const maxBlockDepth = 256

// abortSignal unwinds parsing entirely when catch_errors is false. It never
// reaches a caller of Parse: Parse converts it into a failure-status
// Payload carrying whatever was collected so far.
type abortSignal struct{ err error }

func (a *abortSignal) Error() string { return a.err.Error() }

func isAbort(err error) (*abortSignal, bool) {
	a, ok := err.(*abortSignal)
	return a, ok
}

func isRecursion(err error) bool {
	e, ok := err.(*ngxerr.Error)
	return ok && e.Kind == ngxerr.RecursionKind
}

// session carries the mutable state of one Parse call: the payload under
// construction, the queue of files still to visit, and include dedup.
type session struct {
	p       *Parser
	payload *config.Payload
	rootDir string
	visited map[string]int // normalized absolute path -> config index
	queue   []string        // included file paths (include glob matches) left to parse
	fileCtx map[int][]catalog.Context // config index -> context stack it was included at
}

// Parse parses rootPath and everything it transitively includes (unless
// single-file mode is set) into a Payload. Parse itself only ever returns
// an error for a root-file I/O failure or a RecursionError; every other
// failure is recorded inside the returned Payload per the catch_errors
// option, which still returns normally (status "failed").
func (p *Parser) Parse(rootPath string) (*config.Payload, error) {
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolving root path %s: %w", rootPath, err)
	}

	s := &session{
		p:       p,
		payload: &config.Payload{Status: "ok"},
		rootDir: filepath.Dir(absRoot),
		visited: map[string]int{},
		fileCtx: map[int][]catalog.Context{},
	}
	rootCtx := []catalog.Context{catalog.Main}
	rootIdx := s.reserve(rootPath, absRoot, rootCtx)
	// The root file is parsed directly below, not through the queue-drain
	// loop; reserve enqueues every path it registers (the right behavior for
	// includes), so undo that one enqueue here to avoid re-opening and
	// re-parsing the root file a second time, which would duplicate it in
	// payload.Errors under catch_errors.
	s.queue = s.queue[1:]

	rc, err := p.opener.Open(rootPath)
	if err != nil {
		return nil, fmt.Errorf("opening root file %s: %w", rootPath, err)
	}
	dirs, err := s.parseBlock(token.New(rc), rootCtx, 0, rootIdx)
	rc.Close()
	if err != nil {
		if isRecursion(err) {
			return nil, err
		}
		if _, ok := isAbort(err); !ok {
			return nil, err
		}
	}
	s.payload.Config[rootIdx].Parsed = dirs

	aborted := isAborted(err)
	for !aborted && len(s.queue) > 0 {
		path := s.queue[0]
		s.queue = s.queue[1:]
		idx := s.visited[normalizePath(path)]

		rc, err := p.opener.Open(path)
		if err != nil {
			s.recordError(idx, 0, fmt.Sprintf("opening included file %s: %v", path, err))
			continue
		}
		dirs, err := s.parseBlock(token.New(rc), s.fileCtx[idx], 0, idx)
		rc.Close()
		if err != nil {
			if isRecursion(err) {
				return nil, err
			}
			if _, ok := isAbort(err); !ok {
				return nil, err
			}
			aborted = true
		}
		s.payload.Config[idx].Parsed = dirs
	}

	result := s.payload
	if p.combine && len(result.Config) > 0 {
		result = &config.Payload{
			Status: result.Status,
			Errors: result.Errors,
			Config: []config.FileConfig{{
				File:   result.Config[0].File,
				Status: result.Config[0].Status,
				Parsed: config.Combine(result),
			}},
		}
	}

	return result, nil
}

func isAborted(err error) bool {
	_, ok := isAbort(err)
	return ok
}

// reserve appends a new (empty) FileConfig for path and enqueues it for
// parsing, returning its index into payload.Config. ctx is the context
// stack the file was included from (main, for the root file); included
// files are parsed starting there rather than restarting at main, since an
// include inside e.g. an http>server block pulls in statements that belong
// to that context.
func (s *session) reserve(path, absPath string, ctx []catalog.Context) int {
	idx := len(s.payload.Config)
	s.payload.Config = append(s.payload.Config, config.FileConfig{File: path, Status: "ok"})
	s.visited[normalizePath(absPath)] = idx
	s.queue = append(s.queue, path)
	s.fileCtx[idx] = ctx
	return idx
}

func normalizePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return filepath.Clean(abs)
}

// recordError attaches a parse error to both the top-level and per-file
// error lists and marks both failed, addressed by index rather than by
// searching the config array for a matching file name.
func (s *session) recordError(idx int, line int, msg string) {
	s.payload.Status = "failed"
	file := s.payload.Config[idx].File
	s.payload.Errors = append(s.payload.Errors, config.ParseError{File: file, Line: line, Error: msg})
	s.payload.Config[idx].Status = "failed"
	s.payload.Config[idx].Errors = append(s.payload.Config[idx].Errors, config.ParseError{File: file, Line: line, Error: msg})
}

func (s *session) analyzerOptions() analyzer.Options {
	return analyzer.Options{Strict: s.p.strict, CheckCtx: s.p.checkCtx, CheckArgs: s.p.checkArgs}
}
