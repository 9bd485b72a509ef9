package utils

import (
	"fmt"
	"strings"

	"github.com/nginxconf/gonginx/config"
)

// DiffType classifies one structural difference between two trees.
type DiffType int

const (
	DiffAdded DiffType = iota
	DiffRemoved
	DiffModified
)

func (t DiffType) String() string {
	switch t {
	case DiffAdded:
		return "ADDED"
	case DiffRemoved:
		return "REMOVED"
	case DiffModified:
		return "MODIFIED"
	default:
		return "UNKNOWN"
	}
}

// Difference is one entry in a Diff result.
type Difference struct {
	Type     DiffType
	Path     string
	OldValue string
	NewValue string
}

// String renders a human-readable line for the difference.
func (d Difference) String() string {
	switch d.Type {
	case DiffAdded:
		return fmt.Sprintf("+ [%s] %s", d.Path, d.NewValue)
	case DiffRemoved:
		return fmt.Sprintf("- [%s] %s", d.Path, d.OldValue)
	default:
		return fmt.Sprintf("~ [%s] %s -> %s", d.Path, d.OldValue, d.NewValue)
	}
}

// Diff compares two directive lists position by position and reports
// additions, removals, and argument/name changes. It does not attempt to
// detect moved or reordered directives: a reorder shows up as a sequence of
// removals and additions at the affected positions, so the result is not
// a minimal edit script.
func Diff(oldDirs, newDirs []config.Directive) []Difference {
	return diffAt("", oldDirs, newDirs)
}

func diffAt(path string, oldDirs, newDirs []config.Directive) []Difference {
	var diffs []Difference
	max := len(oldDirs)
	if len(newDirs) > max {
		max = len(newDirs)
	}
	for i := 0; i < max; i++ {
		childPath := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case i >= len(oldDirs):
			diffs = append(diffs, Difference{Type: DiffAdded, Path: childPath, NewValue: summarize(newDirs[i])})
		case i >= len(newDirs):
			diffs = append(diffs, Difference{Type: DiffRemoved, Path: childPath, OldValue: summarize(oldDirs[i])})
		default:
			diffs = append(diffs, compareOne(childPath, oldDirs[i], newDirs[i])...)
		}
	}
	return diffs
}

func compareOne(path string, o, n config.Directive) []Difference {
	var diffs []Difference
	if o.Directive != n.Directive || !equalArgs(o.Args, n.Args) {
		diffs = append(diffs, Difference{
			Type:     DiffModified,
			Path:     path,
			OldValue: summarize(o),
			NewValue: summarize(n),
		})
	}
	diffs = append(diffs, diffAt(path+">"+n.Directive, o.Children(), n.Children())...)
	return diffs
}

func equalArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func summarize(d config.Directive) string {
	if d.IsComment() {
		if d.Comment != nil {
			return "#" + *d.Comment
		}
		return "#"
	}
	if len(d.Args) == 0 {
		return d.Directive
	}
	return d.Directive + " " + strings.Join(d.Args, " ")
}
