package dumper

import "github.com/imega/luaformatter"

// formatLuaBody reformats the opaque body text captured from a
// "*_by_lua_block" directive. The body as stored has already lost its
// original whitespace (the lexer joins tokens with single spaces), so this
// is a best-effort reformat rather than a faithful round trip; on any
// formatter error the original body is returned unchanged on its own
// indented line.
func formatLuaBody(body string) string {
	formatted, err := luaformatter.Format(body)
	if err != nil {
		return "\t" + body + "\n"
	}
	return formatted
}
