package utils_test

import (
	"testing"

	"github.com/nginxconf/gonginx/config"
	"github.com/nginxconf/gonginx/utils"
	"gotest.tools/v3/assert"
)

func TestDiffIdentical(t *testing.T) {
	t.Parallel()

	tree := []config.Directive{{Directive: "worker_processes", Args: []string{"auto"}}}
	diffs := utils.Diff(tree, tree)
	assert.Equal(t, len(diffs), 0)
}

func TestDiffModifiedArgument(t *testing.T) {
	t.Parallel()

	old := []config.Directive{{Directive: "worker_processes", Args: []string{"auto"}}}
	new := []config.Directive{{Directive: "worker_processes", Args: []string{"4"}}}

	diffs := utils.Diff(old, new)
	assert.Equal(t, len(diffs), 1)
	assert.Equal(t, diffs[0].Type, utils.DiffModified)
}

func TestDiffAddedAndRemoved(t *testing.T) {
	t.Parallel()

	old := []config.Directive{{Directive: "worker_processes", Args: []string{"auto"}}}
	new := []config.Directive{
		{Directive: "worker_processes", Args: []string{"auto"}},
		{Directive: "pid", Args: []string{"/run/nginx.pid"}},
	}

	diffs := utils.Diff(old, new)
	assert.Equal(t, len(diffs), 1)
	assert.Equal(t, diffs[0].Type, utils.DiffAdded)

	removed := utils.Diff(new, old)
	assert.Equal(t, len(removed), 1)
	assert.Equal(t, removed[0].Type, utils.DiffRemoved)
}

func TestDiffNestedBlock(t *testing.T) {
	t.Parallel()

	oldChildren := []config.Directive{{Directive: "listen", Args: []string{"80"}}}
	newChildren := []config.Directive{{Directive: "listen", Args: []string{"8080"}}}
	old := []config.Directive{{Directive: "server", Block: &oldChildren}}
	new := []config.Directive{{Directive: "server", Block: &newChildren}}

	diffs := utils.Diff(old, new)
	assert.Equal(t, len(diffs), 1)
	assert.Equal(t, diffs[0].Type, utils.DiffModified)
	assert.Assert(t, diffs[0].Path != "")
}
