// Package analyzer validates a single directive (or an entire tree) against
// the directive catalog's context and arity rules.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/nginxconf/gonginx/catalog"
	"github.com/nginxconf/gonginx/config"
	ngxerr "github.com/nginxconf/gonginx/errors"
)

// Options mirrors the parser's check_ctx/check_args/strict switches so the
// analyzer can be driven independently of a live parse.
type Options struct {
	Strict    bool
	CheckCtx  bool
	CheckArgs bool
}

// Analyze checks one directive occurrence against the catalog: name must be
// known (if Strict), legal in the current context (if CheckCtx), and have an
// argument count/shape the catalog accepts for that context (if CheckArgs).
// ctxStack is the full nesting stack with the innermost context last; only
// its top is consulted, but the whole stack is accepted to mirror the
// parser's own bookkeeping and to let future context rules see ancestors.
func Analyze(name string, args []string, isBlock bool, ctxStack []catalog.Context, opts Options) error {
	variants, known := catalog.Lookup(name)
	if !known {
		if opts.Strict {
			return ngxerr.NewUnknownDirectiveError(name)
		}
		return nil
	}

	if len(ctxStack) == 0 {
		return nil
	}
	top := ctxStack[len(ctxStack)-1]

	var inContext []catalog.Variant
	if opts.CheckCtx {
		for _, v := range variants {
			if v.Contexts&top != 0 {
				inContext = append(inContext, v)
			}
		}
		if len(inContext) == 0 {
			return ngxerr.NewDirectiveError(name, fmt.Sprintf("%q directive is not allowed here", name))
		}
	} else {
		inContext = variants
	}

	if !opts.CheckArgs {
		return nil
	}

	for _, v := range inContext {
		if v.Arity&catalog.Block != 0 && !isBlock {
			continue
		}
		if v.Arity&catalog.Block == 0 && isBlock {
			continue
		}
		if v.ArgCountOK(len(args), isValidFlag, args) {
			return nil
		}
	}

	return ngxerr.NewDirectiveError(name, arityErrorMessage(name, args, isBlock, inContext))
}

func isValidFlag(s string) bool {
	l := strings.ToLower(s)
	return l == "on" || l == "off"
}

// arityErrorMessage distinguishes block/statement mismatches from wrong
// argument counts, following the de-facto nginx conventions; too few and
// too many arguments share nginx's "invalid number of arguments" message.
func arityErrorMessage(name string, args []string, isBlock bool, variants []catalog.Variant) string {
	wantsBlock, wantsStatement := false, false
	for _, v := range variants {
		if v.Arity&catalog.Block != 0 {
			wantsBlock = true
		} else {
			wantsStatement = true
		}
	}
	switch {
	case wantsBlock && !wantsStatement && !isBlock:
		return fmt.Sprintf("directive %q has no opening %q", name, "{")
	case wantsStatement && !wantsBlock && isBlock:
		return fmt.Sprintf("directive %q is not terminated by %q", name, ";")
	case len(args) == 0:
		return fmt.Sprintf("invalid number of arguments in %q directive", name)
	default:
		return fmt.Sprintf("invalid number of arguments in %q directive", name)
	}
}

// Validate re-checks an entire tree from scratch, starting the context
// stack at main. Useful when external tooling has mutated a tree between
// parse and build, per the tree's documented mutability.
func Validate(tree []config.Directive) []error {
	return validate(tree, []catalog.Context{catalog.Main}, Options{Strict: false, CheckCtx: true, CheckArgs: true})
}

func validate(dirs []config.Directive, ctxStack []catalog.Context, opts Options) []error {
	var errs []error
	for _, d := range dirs {
		if d.IsComment() {
			continue
		}
		if err := Analyze(d.Directive, d.Args, d.IsBlock(), ctxStack, opts); err != nil {
			errs = append(errs, err)
		}
		if d.IsBlock() {
			child := childContext(d.Directive, ctxStack)
			errs = append(errs, validate(d.Children(), append(append([]catalog.Context{}, ctxStack...), child), opts)...)
		}
	}
	return errs
}

// childContext determines the context a block directive pushes.
func childContext(name string, ctxStack []catalog.Context) catalog.Context {
	top := ctxStack[len(ctxStack)-1]
	if c, ok := catalog.ChildContext(top, name); ok {
		return c
	}
	return top
}
