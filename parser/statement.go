package parser

import (
	"fmt"
	"strings"

	"github.com/nginxconf/gonginx/analyzer"
	"github.com/nginxconf/gonginx/catalog"
	"github.com/nginxconf/gonginx/config"
	ngxerr "github.com/nginxconf/gonginx/errors"
	"github.com/nginxconf/gonginx/token"
)

// parseBlock reads statements until the lexer is exhausted or a matching
// "}" closes the current block. depth is the current nesting depth (0 at
// the top of a file); idx identifies which FileConfig errors should be
// recorded against.
func (s *session) parseBlock(lex *token.Lexer, ctxStack []catalog.Context, depth int, idx int) ([]config.Directive, error) {
	if depth > maxBlockDepth {
		return nil, ngxerr.NewRecursionError(maxBlockDepth)
	}

	var dirs []config.Directive
	for {
		tok, ok := lex.Next()
		if !ok {
			if depth > 0 {
				s.recordError(idx, 0, "unexpected end of file, expected '}'")
			}
			if lexErr := lex.Err(); lexErr != nil {
				s.recordError(idx, 0, lexErr.Error())
			}
			return dirs, nil
		}

		if tok.IsComment() {
			if s.p.comments {
				text := strings.TrimPrefix(tok.Value, "#")
				dirs = append(dirs, config.Directive{Directive: config.CommentDirective, Line: tok.Line, Comment: &text})
			}
			continue
		}

		if !tok.Quoted && tok.Value == "}" {
			if depth == 0 {
				s.recordError(idx, tok.Line, "unexpected '}'")
				continue
			}
			return dirs, nil
		}

		name := tok.Value
		line := tok.Line

		if s.p.ignore[name] {
			s.skipStatement(lex)
			continue
		}

		d, err := s.readStatement(lex, name, line, ctxStack, depth, idx)
		if err != nil {
			if _, ok := isAbort(err); ok || isRecursion(err) {
				return dirs, err
			}
			s.recordError(idx, line, err.Error())
			if !s.p.catchErrors {
				return dirs, &abortSignal{err: err}
			}
			closedBlock, eof := skipToBoundary(lex)
			if eof {
				return dirs, nil
			}
			if closedBlock {
				return dirs, nil
			}
			continue
		}
		dirs = append(dirs, d)
	}
}

// readStatement reads the arguments (and, if present, child block) of one
// directive and returns the finished node. Special forms that the generic
// grammar cannot handle are dispatched before falling back to the generic
// reader.
func (s *session) readStatement(lex *token.Lexer, name string, line int, ctxStack []catalog.Context, depth int, idx int) (config.Directive, error) {
	switch {
	case name == "if":
		return s.parseIf(lex, line, ctxStack, depth, idx)
	case strings.HasSuffix(name, "_by_lua_block"):
		return s.parseLuaBlock(lex, name, line, ctxStack, idx)
	}

	d, err := s.readGenericStatement(lex, name, line, ctxStack, depth, idx)
	if err != nil {
		return d, err
	}
	if fn, ok := userSpecialForms[name]; ok {
		newArgs, ferr := fn(d.Args)
		if ferr != nil {
			return config.Directive{}, ngxerr.NewDirectiveError(name, ferr.Error()).WithLine(line)
		}
		d.Args = newArgs
	}
	return d, nil
}

// readGenericStatement implements the generic statement grammar: collect
// argument tokens until ';' (a plain statement) or '{' (a block opener),
// recursing for the block's children.
func (s *session) readGenericStatement(lex *token.Lexer, name string, line int, ctxStack []catalog.Context, depth int, idx int) (config.Directive, error) {
	var args []string
	for {
		tok, ok := lex.Next()
		if !ok {
			return config.Directive{}, ngxerr.NewStructureError(fmt.Sprintf("unexpected end of file in %q directive", name)).WithLine(line)
		}
		if tok.IsComment() {
			continue
		}
		if !tok.Quoted && tok.Value == ";" {
			return s.finishStatement(name, line, args, false, nil, ctxStack)
		}
		if !tok.Quoted && tok.Value == "{" {
			childCtx, _ := catalog.ChildContext(topContext(ctxStack), name)
			children, err := s.parseBlock(lex, append(append([]catalog.Context{}, ctxStack...), childCtx), depth+1, idx)
			if err != nil {
				return config.Directive{}, err
			}
			return s.finishStatement(name, line, args, true, children, ctxStack)
		}
		if !tok.Quoted && tok.Value == "}" {
			return config.Directive{}, ngxerr.NewStructureError(fmt.Sprintf("unexpected '}' in %q directive", name)).WithLine(line)
		}
		args = append(args, tok.Value)
	}
}

func topContext(ctxStack []catalog.Context) catalog.Context {
	return ctxStack[len(ctxStack)-1]
}

// withLine attaches a source line to an analyzer error for display, if it
// is one of ours; the analyzer itself doesn't know the statement's line.
func withLine(err error, line int) error {
	if e, ok := err.(*ngxerr.Error); ok {
		e.WithLine(line)
	}
	return err
}

// finishStatement runs the analyzer and, for a resolved include, expands it.
func (s *session) finishStatement(name string, line int, args []string, isBlock bool, children []config.Directive, ctxStack []catalog.Context) (config.Directive, error) {
	if name == "include" && len(args) != 1 {
		return config.Directive{}, ngxerr.NewIncludeError("\"include\" directive requires exactly one argument").WithLine(line)
	}

	if err := analyzer.Analyze(name, args, isBlock, ctxStack, s.analyzerOptions()); err != nil {
		return config.Directive{}, withLine(err, line)
	}

	d := config.Directive{Directive: name, Line: line, Args: args}
	if isBlock {
		d.Block = &children
	}

	if name == "include" && !s.p.single {
		idxs, err := s.resolveInclude(args[0], ctxStack)
		if err != nil {
			return config.Directive{}, err
		}
		d.Includes = &idxs
	}

	return d, nil
}

// skipStatement consumes one entire statement (args through ';', or the
// whole body of a block) without producing a Directive, for an ignored
// directive name.
func (s *session) skipStatement(lex *token.Lexer) {
	for {
		tok, ok := lex.Next()
		if !ok {
			return
		}
		if tok.IsComment() || tok.Quoted {
			continue
		}
		switch tok.Value {
		case ";":
			return
		case "{":
			skipNestedBlock(lex)
			return
		case "}":
			return
		}
	}
}

func skipNestedBlock(lex *token.Lexer) {
	depth := 1
	for {
		tok, ok := lex.Next()
		if !ok {
			return
		}
		if tok.Quoted {
			continue
		}
		switch tok.Value {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// skipToBoundary advances the token stream to the next top-level ';' or
// balancing '}' after an error.
// closedBlock reports whether the boundary consumed was a "}" that closes
// the caller's own block (so the caller should stop reading, not continue).
func skipToBoundary(lex *token.Lexer) (closedBlock bool, eof bool) {
	depth := 0
	for {
		tok, ok := lex.Next()
		if !ok {
			return false, true
		}
		if tok.Quoted {
			continue
		}
		switch tok.Value {
		case "{":
			depth++
		case "}":
			if depth == 0 {
				return true, false
			}
			depth--
		case ";":
			if depth == 0 {
				return false, false
			}
		}
	}
}
