// Package errors defines the typed error kinds raised while lexing,
// parsing, and analyzing an nginx configuration tree.
package errors

import (
	"fmt"
	"strings"
)

// Kind identifies which stage of the pipeline raised an error.
type Kind int

const (
	// LexKind is a malformed token: unterminated quote, bad escape.
	LexKind Kind = iota
	// StructureKind is unbalanced braces or an unexpected statement terminator.
	StructureKind
	// DirectiveKind is an unknown directive, bad context, or bad arity.
	DirectiveKind
	// IncludeKind is a malformed or unresolvable include.
	IncludeKind
	// RecursionKind is block nesting past the depth bound.
	RecursionKind
)

// String renders the kind the way it should read in a message prefix.
func (k Kind) String() string {
	switch k {
	case LexKind:
		return "lex error"
	case StructureKind:
		return "structure error"
	case DirectiveKind:
		return "directive error"
	case IncludeKind:
		return "include error"
	case RecursionKind:
		return "recursion error"
	default:
		return "error"
	}
}

// Error is a single source-located parse error.
type Error struct {
	Kind       Kind
	Message    string
	File       string
	Line       int
	Directive  string
	Suggestion string
	Cycle      bool // set on an IncludeKind error raised by the include-count bound
	Inner      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.File != "" {
		if e.Line > 0 {
			fmt.Fprintf(&b, " in %s:%d", e.File, e.Line)
		} else {
			fmt.Fprintf(&b, " in %s", e.File)
		}
	} else if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (%s)", e.Suggestion)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Inner
}

// WithFile sets the source file and returns the error for chaining.
func (e *Error) WithFile(file string) *Error {
	e.File = file
	return e
}

// WithLine sets the source line and returns the error for chaining.
func (e *Error) WithLine(line int) *Error {
	e.Line = line
	return e
}

// NewLexError builds a LexKind error.
func NewLexError(what string) *Error {
	return &Error{Kind: LexKind, Message: what}
}

// NewStructureError builds a StructureKind error.
func NewStructureError(what string) *Error {
	return &Error{Kind: StructureKind, Message: what}
}

// NewDirectiveError builds a DirectiveKind error for a specific directive.
func NewDirectiveError(directive, what string) *Error {
	return &Error{Kind: DirectiveKind, Message: what, Directive: directive}
}

// NewUnknownDirectiveError builds a DirectiveKind error with a spelling
// suggestion when the unknown name closely resembles a common directive.
func NewUnknownDirectiveError(directive string) *Error {
	return &Error{
		Kind:       DirectiveKind,
		Message:    fmt.Sprintf("unknown directive %q", directive),
		Directive:  directive,
		Suggestion: suggestDirective(directive),
	}
}

// NewIncludeError builds an IncludeKind error.
func NewIncludeError(what string) *Error {
	return &Error{Kind: IncludeKind, Message: what}
}

// NewIncludeCycleError builds an IncludeKind error for a session that has
// opened more than limit distinct files, the signature of an include cycle.
func NewIncludeCycleError(limit int) *Error {
	return &Error{
		Kind:    IncludeKind,
		Message: fmt.Sprintf("too many included files (over %d), possible include cycle", limit),
		Cycle:   true,
	}
}

// NewRecursionError builds a RecursionKind error.
func NewRecursionError(depth int) *Error {
	return &Error{
		Kind:    RecursionKind,
		Message: fmt.Sprintf("block nesting exceeds the recursion depth bound (%d)", depth),
	}
}

var commonMisspellings = map[string]string{
	"servername":       "server_name",
	"server-name":      "server_name",
	"listenport":       "listen",
	"listen_port":      "listen",
	"documentroot":     "root",
	"document_root":    "root",
	"proxypass":        "proxy_pass",
	"proxy-pass":       "proxy_pass",
	"workerprocesses":  "worker_processes",
	"worker-processes": "worker_processes",
}

// suggestDirective offers a "did you mean" hint for common misspellings.
// It never affects parsing outcomes, only the message attached to an error.
func suggestDirective(name string) string {
	lower := strings.ToLower(name)
	if got, ok := commonMisspellings[lower]; ok {
		return fmt.Sprintf("did you mean %q?", got)
	}
	return ""
}

// Collection accumulates errors encountered in tolerant (catch_errors) mode.
type Collection struct {
	Errors []*Error
}

// Add appends an error to the collection.
func (c *Collection) Add(err *Error) {
	c.Errors = append(c.Errors, err)
}

// HasErrors reports whether any error has been recorded.
func (c *Collection) HasErrors() bool {
	return len(c.Errors) > 0
}

// ByKind filters the collection down to one error kind.
func (c *Collection) ByKind(k Kind) []*Error {
	var out []*Error
	for _, e := range c.Errors {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
