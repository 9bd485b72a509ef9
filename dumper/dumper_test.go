package dumper_test

import (
	"strings"
	"testing"

	"github.com/nginxconf/gonginx/config"
	"github.com/nginxconf/gonginx/dumper"
	"gotest.tools/v3/assert"
)

func block(name string, children ...config.Directive) config.Directive {
	return config.Directive{Directive: name, Block: &children}
}

func stmt(name string, args ...string) config.Directive {
	return config.Directive{Directive: name, Args: args}
}

func TestBuildMinimal(t *testing.T) {
	t.Parallel()

	tree := []config.Directive{
		block("events"),
		block("http", block("server", stmt("listen", "80"))),
	}

	out := dumper.Build(tree)
	assert.Equal(t, out, "events {\n}\nhttp {\n    server {\n        listen 80;\n    }\n}\n")
}

func TestBuildQuotePolicyBare(t *testing.T) {
	t.Parallel()

	out := dumper.Build([]config.Directive{stmt("server_name", "example.com", "unquoted")})
	assert.Equal(t, out, "server_name example.com unquoted;\n")
}

func TestBuildQuotePolicyWhitespacePrefersSingle(t *testing.T) {
	t.Parallel()

	out := dumper.Build([]config.Directive{stmt("server_name", "a b")})
	assert.Equal(t, out, "server_name 'a b';\n")
}

func TestBuildQuotePolicyEmbeddedDoubleQuote(t *testing.T) {
	t.Parallel()

	out := dumper.Build([]config.Directive{stmt("server_name", `c"d`)})
	assert.Equal(t, out, "server_name 'c\"d';\n")
}

func TestBuildQuotePolicyEmbeddedSingleQuote(t *testing.T) {
	t.Parallel()

	out := dumper.Build([]config.Directive{stmt("server_name", "it's")})
	assert.Equal(t, out, `server_name "it's";`+"\n")
}

func TestBuildQuotePolicyEmbeddedBoth(t *testing.T) {
	t.Parallel()

	out := dumper.Build([]config.Directive{stmt("server_name", `it's "ok"`)})
	assert.Equal(t, out, `server_name "it's \"ok\"";`+"\n")
}

func TestBuildComment(t *testing.T) {
	t.Parallel()

	text := " config header"
	tree := []config.Directive{{Directive: config.CommentDirective, Comment: &text}}
	out := dumper.Build(tree)
	assert.Equal(t, out, "# config header\n")
}

func TestBuildWithTabs(t *testing.T) {
	t.Parallel()

	tree := []config.Directive{block("http", stmt("server_tokens", "off"))}
	out := dumper.Build(tree, dumper.WithTabs(true))
	assert.Equal(t, out, "http {\n\tserver_tokens off;\n}\n")
}

func TestBuildWithHeader(t *testing.T) {
	t.Parallel()

	out := dumper.Build([]config.Directive{stmt("worker_processes", "auto")}, dumper.WithHeader("# generated"))
	assert.Assert(t, strings.HasPrefix(out, "# generated\n"))
}

func TestBuildWithMinify(t *testing.T) {
	t.Parallel()

	tree := []config.Directive{
		stmt("worker_processes", "auto"),
		block("events", stmt("worker_connections", "1024")),
		block("http", block("server", stmt("listen", "80"))),
	}

	out := dumper.Build(tree, dumper.WithMinify(true))
	assert.Assert(t, !strings.Contains(out, "\n"))
	assert.Equal(t, out, "worker_processes auto;events{worker_connections 1024;}http{server{listen 80;}}")
}

func TestBuildWithMinifyKeepsCommentNewline(t *testing.T) {
	t.Parallel()

	text := " keep me separate"
	tree := []config.Directive{
		{Directive: config.CommentDirective, Comment: &text},
		stmt("worker_processes", "auto"),
	}

	out := dumper.Build(tree, dumper.WithMinify(true))
	assert.Equal(t, out, "# keep me separate\nworker_processes auto;")
}

func TestBuildEmptyArgument(t *testing.T) {
	t.Parallel()

	out := dumper.Build([]config.Directive{stmt("return", "")})
	assert.Equal(t, out, `return "";`+"\n")
}

func TestBuildIncludeDirectiveEmitsVerbatimArg(t *testing.T) {
	t.Parallel()

	out := dumper.Build([]config.Directive{stmt("include", "conf.d/*.conf")})
	assert.Equal(t, out, "include conf.d/*.conf;\n")
}
