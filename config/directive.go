// Package config defines the generic syntax tree a parsed nginx
// configuration is reduced to: Payload, FileConfig, Directive, and the
// parse-error records attached to them. The tree is intentionally untyped
// (every directive is the same Directive struct, whatever its name) so
// that external tooling can walk, mutate, and re-serialize it without
// needing a Go type for every nginx directive.
package config

// CommentDirective is the sentinel name used for comment nodes.
const CommentDirective = "#"

// Directive is one statement in the tree: a name, its arguments, an
// optional child block, and (for "#" nodes) comment text. Block is a
// pointer so that "no block" (a plain statement) is distinguishable from
// "an empty block" (`foo {}`).
type Directive struct {
	Directive string       `json:"directive"`
	Line      int          `json:"line"`
	Args      []string     `json:"args"`
	Block     *[]Directive `json:"block,omitempty"`
	Comment   *string      `json:"comment,omitempty"`
	File      string       `json:"file,omitempty"`
	Includes  *[]int       `json:"includes,omitempty"`
}

// IsBlock reports whether the directive opens a block (possibly empty).
func (d Directive) IsBlock() bool {
	return d.Block != nil
}

// IsComment reports whether the directive is a "#" comment node.
func (d Directive) IsComment() bool {
	return d.Directive == CommentDirective
}

// IsInclude reports whether the directive is a resolved include.
func (d Directive) IsInclude() bool {
	return d.Includes != nil
}

// Children returns the directive's block contents, or nil if it has none.
func (d Directive) Children() []Directive {
	if d.Block == nil {
		return nil
	}
	return *d.Block
}
