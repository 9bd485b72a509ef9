package generator_test

import (
	"testing"

	"github.com/nginxconf/gonginx/dumper"
	"github.com/nginxconf/gonginx/generator"
	"gotest.tools/v3/assert"
)

func TestBuilderEventsAndHTTP(t *testing.T) {
	t.Parallel()

	tree := generator.NewConfigBuilder().
		WorkerProcesses("auto").
		Events().
			WorkerConnections("1024").
			UseEpoll().
			End().
		HTTP().
			SendFile(true).
			Server().
				Listen("80").
				ServerName("example.com").
				Location("/").
					ProxyPass("http://backend").
					EndLocation().
				EndServer().
			End().
		Build()

	assert.Equal(t, len(tree), 3)
	assert.Equal(t, tree[0].Directive, "worker_processes")
	assert.Equal(t, tree[1].Directive, "events")
	assert.Equal(t, tree[1].Children()[0].Directive, "worker_connections")

	http := tree[2]
	assert.Equal(t, http.Directive, "http")
	server := http.Children()[1]
	assert.Equal(t, server.Directive, "server")
	location := server.Children()[2]
	assert.Equal(t, location.Directive, "location")
	assert.DeepEqual(t, location.Args, []string{"/"})
	assert.Equal(t, location.Children()[0].Directive, "proxy_pass")
}

func TestBuilderUpstream(t *testing.T) {
	t.Parallel()

	tree := generator.NewConfigBuilder().
		HTTP().
			Upstream("backend").
				Server("10.0.0.1:8080", "weight=5").
				Server("10.0.0.2:8080").
				LeastConn().
				EndUpstream().
			End().
		Build()

	upstream := tree[0].Children()[0]
	assert.Equal(t, upstream.Directive, "upstream")
	assert.DeepEqual(t, upstream.Args, []string{"backend"})
	children := upstream.Children()
	assert.Equal(t, len(children), 3)
	assert.DeepEqual(t, children[0].Args, []string{"10.0.0.1:8080", "weight=5"})
	assert.Equal(t, children[2].Directive, "least_conn")
}

func TestBuilderStream(t *testing.T) {
	t.Parallel()

	tree := generator.NewConfigBuilder().
		Stream().
			Upstream("db").
				Server("10.0.0.5:5432").
				EndStreamUpstream().
			Server().
				Listen("5432").
				ProxyPass("db").
				EndStreamServer().
			End().
		Build()

	stream := tree[0]
	assert.Equal(t, stream.Directive, "stream")
	assert.Equal(t, len(stream.Children()), 2)
}

func TestBuilderOutputRoundTripsThroughDumper(t *testing.T) {
	t.Parallel()

	tree := generator.NewConfigBuilder().
		WorkerProcesses("auto").
		Events().WorkerConnections("1024").End().
		Build()

	out := dumper.Build(tree)
	assert.Equal(t, out, "worker_processes auto;\nevents {\n    worker_connections 1024;\n}\n")
}
