package analyzer_test

import (
	"testing"

	"github.com/nginxconf/gonginx/analyzer"
	"github.com/nginxconf/gonginx/catalog"
	"github.com/nginxconf/gonginx/config"
	"gotest.tools/v3/assert"
)

var strictCheck = analyzer.Options{Strict: true, CheckCtx: true, CheckArgs: true}

func TestAnalyzeAcceptsKnownDirective(t *testing.T) {
	t.Parallel()

	err := analyzer.Analyze("listen", []string{"80"}, false, []catalog.Context{catalog.Main, catalog.HTTP, catalog.HTTPServer}, strictCheck)
	assert.NilError(t, err)
}

func TestAnalyzeRejectsWrongContext(t *testing.T) {
	t.Parallel()

	err := analyzer.Analyze("listen", []string{"80"}, false, []catalog.Context{catalog.Main}, strictCheck)
	assert.ErrorContains(t, err, "not allowed here")
}

func TestAnalyzeRejectsWrongArity(t *testing.T) {
	t.Parallel()

	err := analyzer.Analyze("worker_processes", []string{"4", "8"}, false, []catalog.Context{catalog.Main}, strictCheck)
	assert.ErrorContains(t, err, "worker_processes")
}

func TestAnalyzeStrictRejectsUnknown(t *testing.T) {
	t.Parallel()

	err := analyzer.Analyze("flibberty_widget", []string{"on"}, false, []catalog.Context{catalog.Main}, strictCheck)
	assert.ErrorContains(t, err, "unknown directive")
}

// Non-strict mode accepts an
// unknown directive with no arity check at all.
func TestAnalyzeNonStrictAcceptsUnknown(t *testing.T) {
	t.Parallel()

	err := analyzer.Analyze("flibberty_widget", []string{"on"}, false, []catalog.Context{catalog.Main}, analyzer.Options{CheckCtx: true, CheckArgs: true})
	assert.NilError(t, err)
}

func TestAnalyzeBlockVsStatementMismatch(t *testing.T) {
	t.Parallel()

	err := analyzer.Analyze("listen", []string{"80"}, true, []catalog.Context{catalog.Main, catalog.HTTP, catalog.HTTPServer}, strictCheck)
	assert.Assert(t, err != nil)
}

func TestValidateWholeTree(t *testing.T) {
	t.Parallel()

	servers := []config.Directive{
		{Directive: "listen", Args: []string{"80"}, Line: 2},
	}
	http := []config.Directive{
		{Directive: "server", Block: &servers, Line: 1},
	}
	tree := []config.Directive{
		{Directive: "http", Block: &http, Line: 0},
	}

	errs := analyzer.Validate(tree)
	assert.Equal(t, len(errs), 0)
}

func TestValidateFindsContextViolation(t *testing.T) {
	t.Parallel()

	tree := []config.Directive{
		{Directive: "listen", Args: []string{"80"}},
	}

	errs := analyzer.Validate(tree)
	assert.Assert(t, len(errs) >= 1)
}

// Analyzer totality: sampled directives each accept at
// least one shape and reject at least one.
func TestCatalogTotalityForIf(t *testing.T) {
	t.Parallel()

	ok := analyzer.Analyze("if", []string{"($request_method = POST)"}, true, []catalog.Context{catalog.Main, catalog.HTTP, catalog.HTTPServer}, strictCheck)
	assert.NilError(t, ok)

	bad := analyzer.Analyze("if", []string{"($request_method = POST)"}, true, []catalog.Context{catalog.Main}, strictCheck)
	assert.Assert(t, bad != nil)
}
