package parser

import (
	"strings"

	"github.com/nginxconf/gonginx/analyzer"
	"github.com/nginxconf/gonginx/catalog"
	"github.com/nginxconf/gonginx/config"
	ngxerr "github.com/nginxconf/gonginx/errors"
	"github.com/nginxconf/gonginx/token"
)

// userSpecialForms holds the registered extension hook: a directive
// name mapped to a function that rewrites the generically-collected
// argument list before it is attached to the tree. This covers directives
// whose arguments need reinterpreting but whose statement shape (args up to
// ';', or a normal block) is otherwise ordinary. "if" and "*_by_lua_block"
// need lexer-level access the generic reader doesn't have, so they are
// built in rather than expressible through this hook (see readStatement).
var userSpecialForms = map[string]func(args []string) ([]string, error){}

// RegisterSpecialForm installs fn as the argument post-processor for the
// named directive.
func RegisterSpecialForm(name string, fn func(args []string) ([]string, error)) {
	userSpecialForms[name] = fn
}

// parseIf is the "if" micro-parser: nginx's condition is a
// parenthesized expression lexed as one logical token. The generic reader
// would otherwise split it on whitespace, so this re-joins tokens from the
// opening '(' through the matching ')' with single spaces, preserving the
// parentheses in the single resulting argument.
func (s *session) parseIf(lex *token.Lexer, line int, ctxStack []catalog.Context, depth int, idx int) (config.Directive, error) {
	var parts []string
	parens := 0
	opened := false
	for {
		tok, ok := lex.Next()
		if !ok {
			return config.Directive{}, ngxerr.NewStructureError("unexpected end of file in \"if\" condition").WithLine(line)
		}
		if tok.IsComment() {
			continue
		}
		for _, r := range tok.Value {
			switch r {
			case '(':
				parens++
				opened = true
			case ')':
				parens--
			}
		}
		parts = append(parts, tok.Value)
		if opened && parens == 0 {
			break
		}
	}

	tok, ok := lex.Next()
	if !ok || tok.Quoted || tok.Value != "{" {
		return config.Directive{}, ngxerr.NewStructureError("expected '{' after \"if\" condition").WithLine(line)
	}

	condition := strings.Join(parts, " ")
	childCtx, _ := catalog.ChildContext(topContext(ctxStack), "if")
	children, err := s.parseBlock(lex, append(append([]catalog.Context{}, ctxStack...), childCtx), depth+1, idx)
	if err != nil {
		return config.Directive{}, err
	}

	if err := analyzer.Analyze("if", []string{condition}, true, ctxStack, s.analyzerOptions()); err != nil {
		return config.Directive{}, withLine(err, line)
	}

	return config.Directive{Directive: "if", Line: line, Args: []string{condition}, Block: &children}, nil
}

// parseLuaBlock is the "*_by_lua_block" micro-parser: the
// block body is treated as a single opaque string rather than nested
// directives. Minimal brace-balance tracking finds the matching close; the
// body is reconstructed by joining the intervening tokens with single
// spaces, which is lossy with respect to the original Lua source's exact
// whitespace but preserves its token content (see DESIGN.md).
func (s *session) parseLuaBlock(lex *token.Lexer, name string, line int, ctxStack []catalog.Context, idx int) (config.Directive, error) {
	tok, ok := lex.Next()
	if !ok || tok.Quoted || tok.Value != "{" {
		return config.Directive{}, ngxerr.NewStructureError("expected '{' after " + name).WithLine(line)
	}

	var parts []string
	depth := 1
	for {
		tok, ok := lex.Next()
		if !ok {
			return config.Directive{}, ngxerr.NewStructureError("unexpected end of file in " + name).WithLine(line)
		}
		if !tok.Quoted && tok.Value == "{" {
			depth++
			parts = append(parts, tok.Value)
			continue
		}
		if !tok.Quoted && tok.Value == "}" {
			depth--
			if depth == 0 {
				break
			}
			parts = append(parts, tok.Value)
			continue
		}
		parts = append(parts, tok.Value)
	}

	body := strings.Join(parts, " ")
	// Analyzed as written in the source: a block opener with no arguments.
	if err := analyzer.Analyze(name, nil, true, ctxStack, s.analyzerOptions()); err != nil {
		return config.Directive{}, withLine(err, line)
	}
	return config.Directive{Directive: name, Line: line, Args: []string{body}}, nil
}
