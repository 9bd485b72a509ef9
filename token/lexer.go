package token

import (
	"bufio"
	"io"
	"strings"

	ngxerr "github.com/nginxconf/gonginx/errors"
)

// Lexer pulls a lazy, totally-ordered token stream out of an nginx
// configuration file. Tokens are produced by a background goroutine and
// consumed once via Next, mirroring bufio.Scanner.
type Lexer struct {
	tokens chan Token
	err    *ngxerr.Error
	done   bool
}

// New starts lexing r. Lexing begins immediately in a background goroutine;
// Next drains the resulting token stream.
func New(r io.Reader) *Lexer {
	l := &Lexer{tokens: make(chan Token)}
	go l.run(r)
	return l
}

// Lex is a convenience wrapper returning all tokens from r, stopping at the
// first lexer error.
func Lex(r io.Reader) ([]Token, error) {
	l := New(r)
	var out []Token
	for {
		t, ok := l.Next()
		if !ok {
			break
		}
		out = append(out, t)
	}
	if err := l.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// Next returns the next token, or ok=false when the stream is exhausted
// (check Err to distinguish clean EOF from a lexer error).
func (l *Lexer) Next() (Token, bool) {
	t, ok := <-l.tokens
	if !ok {
		l.done = true
	}
	return t, ok
}

// Err returns the error that stopped lexing, if any. Only meaningful after
// Next has returned ok=false.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

type charLine struct {
	char string
	line int
}

// run drains the character-level lexer and forwards tokens until either the
// input is exhausted or a LexerError (unterminated quote) is hit. Brace
// balancing is the parser's concern, not the lexer's: the lexer only knows
// about tokens, not about which directives open blocks.
func (l *Lexer) run(r io.Reader) {
	defer close(l.tokens)

	for t := range lex(r) {
		if t.err != nil {
			l.err = t.err
			return
		}
		l.tokens <- t.tok
	}
}

type tokenOrErr struct {
	tok Token
	err *ngxerr.Error
}

// lex is the character-level state machine: whitespace skipping with line
// tracking, "#"-comment runs, quote accumulation with \\ and \<quote>
// escapes, and adjacent-fragment concatenation, exactly as nginx's own
// lexer behaves.
func lex(r io.Reader) chan tokenOrErr {
	out := make(chan tokenOrErr)

	go func() {
		defer close(out)

		it := lineCount(escapeChars(readChars(r)))

		var token string
		var tokenLine int
		var tokenQuoted bool
		var haveOpen bool // token has at least one quoted fragment

		flush := func() {
			if token != "" || haveOpen {
				out <- tokenOrErr{tok: Token{Value: token, Line: tokenLine, Quoted: tokenQuoted}}
				token = ""
				tokenQuoted = false
				haveOpen = false
			}
		}

		cl, ok := <-it
		for ok {
			if isSpace(cl.char) {
				flush()
				for ok && isSpace(cl.char) {
					cl, ok = <-it
				}
				continue
			}

			if token == "" && !haveOpen && cl.char == "#" {
				lineAtStart := cl.line
				var comment string
				for ok && !strings.HasSuffix(cl.char, "\n") {
					comment += cl.char
					cl, ok = <-it
				}
				out <- tokenOrErr{tok: Token{Value: comment, Line: lineAtStart, Quoted: false}}
				continue
			}

			if token == "" && !haveOpen {
				tokenLine = cl.line
			}

			if cl.char == `"` || cl.char == "'" {
				quote := cl.char
				openLine := cl.line
				if token == "" && !haveOpen {
					tokenLine = openLine
				}
				cl, ok = <-it
				for ok && cl.char != quote {
					if cl.char == "\\"+quote {
						token += quote
					} else if cl.char == `\\` {
						token += `\`
					} else {
						token += cl.char
					}
					cl, ok = <-it
				}
				if !ok {
					out <- tokenOrErr{err: ngxerr.NewLexError("unterminated quoted string").WithLine(openLine)}
					return
				}
				tokenQuoted = true
				haveOpen = true
				cl, ok = <-it
				continue
			}

			if cl.char == "{" || cl.char == "}" || cl.char == ";" {
				flush()
				out <- tokenOrErr{tok: Token{Value: cl.char, Line: cl.line, Quoted: false}}
				cl, ok = <-it
				continue
			}

			token += cl.char
			cl, ok = <-it
		}

		flush()
	}()

	return out
}

func readChars(r io.Reader) chan string {
	c := make(chan string)
	go func() {
		defer close(c)
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanRunes)
		for scanner.Scan() {
			c <- scanner.Text()
		}
	}()
	return c
}

func lineCount(chars chan string) chan charLine {
	c := make(chan charLine)
	go func() {
		defer close(c)
		line := 1
		for char := range chars {
			if strings.HasSuffix(char, "\n") {
				line++
			}
			c <- charLine{char: char, line: line}
		}
	}()
	return c
}

func escapeChars(chars chan string) chan string {
	c := make(chan string)
	go func() {
		defer close(c)
		for char := range chars {
			if char == `\` {
				if next, ok := <-chars; ok {
					char += next
				}
			}
			if char == "\r" {
				continue
			}
			c <- char
		}
	}()
	return c
}

func isSpace(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
