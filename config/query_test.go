package config_test

import (
	"testing"

	"github.com/nginxconf/gonginx/config"
	"gotest.tools/v3/assert"
)

func sampleTree() []config.Directive {
	locations := []config.Directive{
		{Directive: "location", Args: []string{"/"}, Line: 4},
	}
	servers := []config.Directive{
		{Directive: "server_name", Args: []string{"example.com"}, Line: 3},
		{Directive: "location", Args: []string{"/api"}, Block: &locations, Line: 3},
	}
	http := []config.Directive{
		{Directive: "server", Block: &servers, Line: 2},
	}
	return []config.Directive{
		{Directive: config.CommentDirective, Comment: strPtr(" top-level comment")},
		{Directive: "http", Block: &http, Line: 1},
	}
}

func strPtr(s string) *string { return &s }

func TestFindDirectivesRecursesIntoBlocks(t *testing.T) {
	t.Parallel()

	locs := config.FindDirectives(sampleTree(), "location")
	assert.Equal(t, len(locs), 2)
}

func TestFindFirstStopsAtFirstMatch(t *testing.T) {
	t.Parallel()

	d, ok := config.FindFirst(sampleTree(), "server_name")
	assert.Assert(t, ok)
	assert.DeepEqual(t, d.Args, []string{"example.com"})
}

func TestFindFirstMissing(t *testing.T) {
	t.Parallel()

	_, ok := config.FindFirst(sampleTree(), "upstream")
	assert.Assert(t, !ok)
}

func TestTopDoesNotDescend(t *testing.T) {
	t.Parallel()

	tree := sampleTree()
	assert.Equal(t, len(config.Top(tree, "http")), 1)
	assert.Equal(t, len(config.Top(tree, "location")), 0)
}

func TestComments(t *testing.T) {
	t.Parallel()

	c := config.Comments(sampleTree())
	assert.Equal(t, len(c), 1)
	assert.Equal(t, *c[0].Comment, " top-level comment")
}
