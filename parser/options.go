// Package parser turns an nginx configuration file (and the files it
// includes) into a config.Payload. It is driven entirely by functional
// options, mirroring the style the rest of this module's ambient stack
// uses for configurable constructors.
package parser

import "io"

// FileOpener abstracts the filesystem so tests (and embedders with a
// virtual filesystem) can supply configuration without touching disk. It
// must be safe to call concurrently from independent Parser sessions.
type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

// Option configures a Parser. Construct one with New and any number of
// With... options; unset options keep the documented defaults.
type Option func(*Parser)

// Parser holds parse-session configuration. The zero value is not usable;
// build one with New.
type Parser struct {
	catchErrors bool
	ignore      map[string]bool
	single      bool
	strict      bool
	combine     bool
	checkCtx    bool
	checkArgs   bool
	comments    bool
	opener      FileOpener
	maxFiles    int
}

// New builds a Parser with the documented defaults (catch_errors=true,
// check_ctx=true, check_args=true, everything else false) plus any options.
func New(opts ...Option) *Parser {
	p := &Parser{
		catchErrors: true,
		checkCtx:    true,
		checkArgs:   true,
		opener:      osOpener{},
		maxFiles:    4096,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithCatchErrors toggles tolerant parsing: on error, record and resync to
// the next statement boundary rather than aborting. Default true.
func WithCatchErrors(b bool) Option {
	return func(p *Parser) { p.catchErrors = b }
}

// WithIgnore adds directive names dropped from the output tree without
// validation.
func WithIgnore(names ...string) Option {
	return func(p *Parser) {
		if p.ignore == nil {
			p.ignore = make(map[string]bool, len(names))
		}
		for _, n := range names {
			p.ignore[n] = true
		}
	}
}

// WithSingleFile disables include expansion: an include directive's
// argument is retained verbatim and no child files are opened.
func WithSingleFile(b bool) Option {
	return func(p *Parser) { p.single = b }
}

// WithStrict makes unknown directives an error instead of passing through
// unchecked.
func WithStrict(b bool) Option {
	return func(p *Parser) { p.strict = b }
}

// WithCombine post-processes the result so config contains exactly one
// synthetic file, includes elided and expanded in place.
func WithCombine(b bool) Option {
	return func(p *Parser) { p.combine = b }
}

// WithCheckContext toggles context-legality checking.
func WithCheckContext(b bool) Option {
	return func(p *Parser) { p.checkCtx = b }
}

// WithCheckArgs toggles arity checking.
func WithCheckArgs(b bool) Option {
	return func(p *Parser) { p.checkArgs = b }
}

// WithComments emits "#" comment directives into the tree instead of
// dropping them.
func WithComments(b bool) Option {
	return func(p *Parser) { p.comments = b }
}

// WithFileOpener overrides how include targets (and the root file) are
// opened. Default opens real files with os.Open.
func WithFileOpener(o FileOpener) Option {
	return func(p *Parser) { p.opener = o }
}

// WithMaxIncludeFiles bounds the number of distinct files a single Parse
// session will open, guarding against an include cycle. Default 4096.
func WithMaxIncludeFiles(n int) Option {
	return func(p *Parser) { p.maxFiles = n }
}
