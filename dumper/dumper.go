// Package dumper walks a config tree and renders it back to nginx
// configuration text, either canonically (pretty, uniform indentation) or
// with Lua block bodies reformatted via an external formatter.
package dumper

import (
	"strings"

	"github.com/nginxconf/gonginx/config"
)

// Option configures Build. Construct with New-style With... functions.
type Option func(*options)

type options struct {
	indent    int
	tabs      bool
	header    string
	formatLua bool
	minify    bool
}

// WithIndent sets the number of spaces per nesting level (ignored if tabs
// are enabled). Default 4.
func WithIndent(n int) Option {
	return func(o *options) { o.indent = n }
}

// WithTabs renders one tab per nesting level instead of spaces.
func WithTabs(b bool) Option {
	return func(o *options) { o.tabs = b }
}

// WithHeader emits a verbatim header line before the tree.
func WithHeader(h string) Option {
	return func(o *options) { o.header = h }
}

// WithLuaFormatting reformats the opaque body of "*_by_lua_block"
// directives with github.com/imega/luaformatter instead of emitting it
// as a single joined line. Off by default since the reformatted output is
// no longer the minimal round-trippable form.
func WithLuaFormatting(b bool) Option {
	return func(o *options) { o.formatLua = b }
}

// WithMinify drops all indentation and the newlines between statements,
// block openers, and block closers, producing the smallest valid
// re-rendering of the tree. Comments still end with a newline regardless
// (a "#" run otherwise swallows whatever follows it on the same line), so
// a tree with comments in it is not maximally minified; parse with
// comments disabled (the default) to drop them from the tree first instead.
func WithMinify(b bool) Option {
	return func(o *options) { o.minify = b }
}

// Build renders tree back to nginx configuration text. indent defaults to
// 4 spaces; pass WithMinify(true) for the smallest valid rendering instead.
func Build(tree []config.Directive, opts ...Option) string {
	o := options{indent: 4}
	for _, opt := range opts {
		opt(&o)
	}

	var b strings.Builder
	if o.header != "" {
		b.WriteString(o.header)
		if !strings.HasSuffix(o.header, "\n") {
			b.WriteByte('\n')
		}
	}
	writeBlock(&b, tree, 0, o)
	return b.String()
}

func writeBlock(b *strings.Builder, dirs []config.Directive, depth int, o options) {
	for _, d := range dirs {
		writeIndent(b, depth, o)

		if d.IsComment() {
			b.WriteByte('#')
			if d.Comment != nil {
				b.WriteString(*d.Comment)
			}
			b.WriteByte('\n')
			continue
		}

		b.WriteString(d.Directive)
		for _, a := range d.Args {
			b.WriteByte(' ')
			b.WriteString(quoteArg(a))
		}

		if d.IsBlock() {
			b.WriteString(blockOpen(o))
			body := d.Children()
			if o.formatLua && strings.HasSuffix(d.Directive, "_by_lua_block") {
				// *_by_lua_block never has a Block (see parser.parseLuaBlock); this
				// branch exists only so adding a formatted variant later has a home.
				_ = body
			}
			writeBlock(b, body, depth+1, o)
			writeIndent(b, depth, o)
			b.WriteString(blockClose(o))
			continue
		}

		if o.formatLua && strings.HasSuffix(d.Directive, "_by_lua_block") && len(d.Args) == 1 {
			formatted := formatLuaBody(d.Args[0])
			b.WriteString(blockOpen(o))
			b.WriteString(formatted)
			writeIndent(b, depth, o)
			b.WriteString(blockClose(o))
			continue
		}

		b.WriteString(statementEnd(o))
	}
}

func blockOpen(o options) string {
	if o.minify {
		return "{"
	}
	return " {\n"
}

func blockClose(o options) string {
	if o.minify {
		return "}"
	}
	return "}\n"
}

func statementEnd(o options) string {
	if o.minify {
		return ";"
	}
	return ";\n"
}

func writeIndent(b *strings.Builder, depth int, o options) {
	if o.minify {
		return
	}
	if o.tabs {
		b.WriteString(strings.Repeat("\t", depth))
		return
	}
	b.WriteString(strings.Repeat(" ", depth*o.indent))
}

// quoteArg implements the quote policy: bare when safe,
// otherwise single quotes unless the value itself contains one, in which
// case double quotes (escaping embedded " and \ only when both quote
// characters are present).
func quoteArg(s string) string {
	if s == "" {
		return `""`
	}
	if !needsQuoting(s) {
		return s
	}

	hasSingle := strings.ContainsRune(s, '\'')
	hasDouble := strings.ContainsRune(s, '"')

	switch {
	case !hasSingle:
		return "'" + s + "'"
	case hasSingle && !hasDouble:
		return `"` + s + `"`
	default:
		escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
		return `"` + escaped + `"`
	}
}

func needsQuoting(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '{', '}', ';', '#', '\'', '"':
			return true
		}
	}
	return false
}
