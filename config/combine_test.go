package config_test

import (
	"testing"

	"github.com/nginxconf/gonginx/config"
	"gotest.tools/v3/assert"
)

// A root file including a
// second file collapses to a single flat list with the include elided.
func TestCombineExpandsInclude(t *testing.T) {
	t.Parallel()

	includes := []int{1}
	payload := &config.Payload{
		Status: "ok",
		Config: []config.FileConfig{
			{
				File: "a.conf",
				Parsed: []config.Directive{
					{Directive: "include", Args: []string{"b.conf"}, Includes: &includes},
				},
			},
			{
				File: "b.conf",
				Parsed: []config.Directive{
					{Directive: "worker_processes", Args: []string{"4"}},
				},
			},
		},
	}

	combined := config.Combine(payload)
	assert.Equal(t, len(combined), 1)
	assert.Equal(t, combined[0].Directive, "worker_processes")
	assert.DeepEqual(t, combined[0].Args, []string{"4"})
}

func TestCombineNestedBlocks(t *testing.T) {
	t.Parallel()

	includes := []int{1}
	inner := []config.Directive{
		{Directive: "include", Args: []string{"conf.d/*.conf"}, Includes: &includes},
	}
	payload := &config.Payload{
		Config: []config.FileConfig{
			{
				File: "main.conf",
				Parsed: []config.Directive{
					{Directive: "http", Block: &inner},
				},
			},
			{
				File: "conf.d/server.conf",
				Parsed: []config.Directive{
					{Directive: "server_name", Args: []string{"example.com"}},
				},
			},
		},
	}

	combined := config.Combine(payload)
	assert.Equal(t, len(combined), 1)
	children := combined[0].Children()
	assert.Equal(t, len(children), 1)
	assert.Equal(t, children[0].Directive, "server_name")
}

func TestCombineEmptyPayload(t *testing.T) {
	t.Parallel()

	assert.Assert(t, config.Combine(&config.Payload{}) == nil)
}
