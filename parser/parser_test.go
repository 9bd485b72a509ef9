package parser_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nginxconf/gonginx/config"
	"github.com/nginxconf/gonginx/parser"
	"gotest.tools/v3/assert"
)

// memOpener serves in-memory file contents by path, so tests don't touch disk.
type memOpener map[string]string

func (m memOpener) Open(path string) (io.ReadCloser, error) {
	content, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// A minimal two-block config with an empty block parses and re-nests correctly.
func TestParseMinimal(t *testing.T) {
	t.Parallel()

	opener := memOpener{"root.conf": "events {}\nhttp { server { listen 80; } }\n"}
	p := parser.New(parser.WithFileOpener(opener))

	payload, err := p.Parse("root.conf")
	assert.NilError(t, err)
	assert.Equal(t, payload.Status, "ok")
	assert.Equal(t, len(payload.Errors), 0)

	parsed := payload.Config[0].Parsed
	assert.Equal(t, len(parsed), 2)
	assert.Equal(t, parsed[0].Directive, "events")
	assert.Assert(t, parsed[0].IsBlock())
	assert.Equal(t, len(parsed[0].Children()), 0)

	assert.Equal(t, parsed[1].Directive, "http")
	server := parsed[1].Children()[0]
	assert.Equal(t, server.Directive, "server")
	listen := server.Children()[0]
	assert.Equal(t, listen.Directive, "listen")
	assert.DeepEqual(t, listen.Args, []string{"80"})
}

// Mixed quoted/bare arguments strip their quoting but keep embedded characters.
func TestParseQuoting(t *testing.T) {
	t.Parallel()

	opener := memOpener{"root.conf": `server_name "a b" 'c"d' unquoted;`}
	p := parser.New(parser.WithFileOpener(opener), parser.WithCheckContext(false))

	payload, err := p.Parse("root.conf")
	assert.NilError(t, err)
	assert.Equal(t, payload.Status, "ok")

	parsed := payload.Config[0].Parsed
	assert.Equal(t, len(parsed), 1)
	assert.DeepEqual(t, parsed[0].Args, []string{"a b", `c"d`, "unquoted"})
}

// An "if" condition keeps its surrounding parentheses as a single joined argument.
func TestParseIfCondition(t *testing.T) {
	t.Parallel()

	opener := memOpener{"root.conf": "http { server { if ($request_method = POST) { return 405; } } }\n"}
	p := parser.New(parser.WithFileOpener(opener))

	payload, err := p.Parse("root.conf")
	assert.NilError(t, err)
	assert.Equal(t, payload.Status, "ok")

	server := payload.Config[0].Parsed[0].Children()[0]
	ifDir := server.Children()[0]
	assert.Equal(t, ifDir.Directive, "if")
	assert.DeepEqual(t, ifDir.Args, []string{"($request_method = POST)"})
	ret := ifDir.Children()[0]
	assert.Equal(t, ret.Directive, "return")
	assert.DeepEqual(t, ret.Args, []string{"405"})
}

// Include expansion against the real filesystem so the glob in resolveInclude
// has something to match.
func TestParseIncludeExpansion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "a.conf"), []byte("include b.conf;\n"), 0o644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "b.conf"), []byte("worker_processes 4;\n"), 0o644))

	p := parser.New()
	payload, err := p.Parse(filepath.Join(dir, "a.conf"))
	assert.NilError(t, err)
	assert.Equal(t, payload.Status, "ok")
	assert.Equal(t, len(payload.Config), 2)

	includeDir := payload.Config[0].Parsed[0]
	assert.Assert(t, includeDir.IsInclude())
	assert.DeepEqual(t, *includeDir.Includes, []int{1})

	combined := config.Combine(payload)
	assert.Equal(t, len(combined), 1)
	assert.Equal(t, combined[0].Directive, "worker_processes")
}

func TestParseCombineOption(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "a.conf"), []byte("include b.conf;\n"), 0o644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "b.conf"), []byte("worker_processes 4;\n"), 0o644))

	p := parser.New(parser.WithCombine(true))
	payload, err := p.Parse(filepath.Join(dir, "a.conf"))
	assert.NilError(t, err)
	assert.Equal(t, len(payload.Config), 1)
	assert.Equal(t, len(payload.Config[0].Parsed), 1)
	assert.Equal(t, payload.Config[0].Parsed[0].Directive, "worker_processes")
}

// catch_errors tolerates a malformed statement and keeps going.
func TestParseErrorTolerance(t *testing.T) {
	t.Parallel()

	opener := memOpener{"root.conf": "foo { bar"}
	p := parser.New(parser.WithFileOpener(opener), parser.WithCheckContext(false), parser.WithCheckArgs(false))

	payload, err := p.Parse("root.conf")
	assert.NilError(t, err)
	assert.Equal(t, payload.Status, "failed")
	assert.Equal(t, len(payload.Errors), 1)
	assert.Assert(t, strings.Contains(payload.Errors[0].Error, "end of file"))
	assert.Equal(t, len(payload.Config), 1)
	assert.Equal(t, len(payload.Config[0].Errors), 1)
}

// Strict mode rejects an unknown directive; lenient mode accepts it.
func TestParseStrictUnknownDirective(t *testing.T) {
	t.Parallel()

	opener := memOpener{"root.conf": "flibberty_widget on;"}

	strict := parser.New(parser.WithFileOpener(opener), parser.WithStrict(true), parser.WithCheckContext(false))
	payload, err := strict.Parse("root.conf")
	assert.NilError(t, err)
	assert.Equal(t, payload.Status, "failed")
	assert.Assert(t, strings.Contains(payload.Errors[0].Error, "unknown directive"))

	lenient := parser.New(parser.WithFileOpener(opener), parser.WithCheckContext(false))
	payload, err = lenient.Parse("root.conf")
	assert.NilError(t, err)
	assert.Equal(t, payload.Status, "ok")
	assert.DeepEqual(t, payload.Config[0].Parsed[0].Args, []string{"on"})
}

func TestParseCommentsOption(t *testing.T) {
	t.Parallel()

	opener := memOpener{"root.conf": "# top\nworker_processes 4;\n"}
	p := parser.New(parser.WithFileOpener(opener), parser.WithComments(true), parser.WithCheckContext(false))

	payload, err := p.Parse("root.conf")
	assert.NilError(t, err)
	parsed := payload.Config[0].Parsed
	assert.Equal(t, len(parsed), 2)
	assert.Assert(t, parsed[0].IsComment())
	assert.Equal(t, *parsed[0].Comment, " top")
}

func TestParseIgnoreDropsDirectiveAndBlock(t *testing.T) {
	t.Parallel()

	opener := memOpener{"root.conf": "http { unknown_module_block { anything here; } server_name x; }"}
	p := parser.New(parser.WithFileOpener(opener), parser.WithIgnore("unknown_module_block"), parser.WithCheckContext(false))

	payload, err := p.Parse("root.conf")
	assert.NilError(t, err)
	assert.Equal(t, payload.Status, "ok")
	children := payload.Config[0].Parsed[0].Children()
	assert.Equal(t, len(children), 1)
	assert.Equal(t, children[0].Directive, "server_name")
}

func TestParseLuaBlockOpaqueBody(t *testing.T) {
	t.Parallel()

	opener := memOpener{"root.conf": `http { server { location / { content_by_lua_block { ngx.say("hi") } } } }`}
	p := parser.New(parser.WithFileOpener(opener))

	payload, err := p.Parse("root.conf")
	assert.NilError(t, err)
	assert.Equal(t, payload.Status, "ok")

	server := payload.Config[0].Parsed[0].Children()[0]
	location := server.Children()[0]
	lua := location.Children()[0]
	assert.Equal(t, lua.Directive, "content_by_lua_block")
	assert.Assert(t, !lua.IsBlock())
	assert.Equal(t, len(lua.Args), 1)
	assert.Assert(t, strings.Contains(lua.Args[0], "ngx.say"))
}

func TestParseSingleFileLeavesIncludeVerbatim(t *testing.T) {
	t.Parallel()

	opener := memOpener{"root.conf": "include b.conf;\n"}
	p := parser.New(parser.WithFileOpener(opener), parser.WithSingleFile(true))

	payload, err := p.Parse("root.conf")
	assert.NilError(t, err)
	assert.Equal(t, len(payload.Config), 1)
	assert.DeepEqual(t, payload.Config[0].Parsed[0].Args, []string{"b.conf"})
	assert.Assert(t, !payload.Config[0].Parsed[0].IsInclude())
}

func TestParseRootFileNotFound(t *testing.T) {
	t.Parallel()

	p := parser.New(parser.WithFileOpener(memOpener{}))
	_, err := p.Parse("missing.conf")
	assert.Assert(t, err != nil)
}
