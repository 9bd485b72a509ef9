// Package generator provides a fluent API for constructing a config tree
// programmatically, as an alternative to parsing one from text.
package generator

import "github.com/nginxconf/gonginx/config"

// ConfigBuilder builds the top-level directive list of a configuration.
type ConfigBuilder struct {
	dirs []config.Directive
}

// NewConfigBuilder starts an empty configuration.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// Build returns the directives assembled so far.
func (cb *ConfigBuilder) Build() []config.Directive {
	return cb.dirs
}

// AddDirective appends a plain statement.
func (cb *ConfigBuilder) AddDirective(name string, args ...string) *ConfigBuilder {
	cb.dirs = append(cb.dirs, config.Directive{Directive: name, Args: args})
	return cb
}

// AddComment appends a "#" comment node.
func (cb *ConfigBuilder) AddComment(text string) *ConfigBuilder {
	cb.dirs = append(cb.dirs, config.Directive{Directive: config.CommentDirective, Comment: &text})
	return cb
}

// AddInclude appends an unresolved include directive (Includes is left nil;
// only the parser populates it).
func (cb *ConfigBuilder) AddInclude(pattern string) *ConfigBuilder {
	return cb.AddDirective("include", pattern)
}

// WorkerProcesses sets worker_processes.
func (cb *ConfigBuilder) WorkerProcesses(value string) *ConfigBuilder {
	return cb.AddDirective("worker_processes", value)
}

// PidFile sets pid.
func (cb *ConfigBuilder) PidFile(path string) *ConfigBuilder {
	return cb.AddDirective("pid", path)
}

// ErrorLog sets error_log, with an optional level.
func (cb *ConfigBuilder) ErrorLog(path string, level ...string) *ConfigBuilder {
	if len(level) > 0 {
		return cb.AddDirective("error_log", path, level[0])
	}
	return cb.AddDirective("error_log", path)
}

// addBlock appends a block directive and returns the pointer to its
// (initially empty) child slice, shared with the returned sub-builder.
func addBlock(dirs *[]config.Directive, name string, args ...string) *[]config.Directive {
	block := &[]config.Directive{}
	*dirs = append(*dirs, config.Directive{Directive: name, Args: args, Block: block})
	return block
}

// Events opens an events block.
func (cb *ConfigBuilder) Events() *EventsBuilder {
	return &EventsBuilder{parent: cb, block: addBlock(&cb.dirs, "events")}
}

// HTTP opens an http block.
func (cb *ConfigBuilder) HTTP() *HTTPBuilder {
	return &HTTPBuilder{parent: cb, block: addBlock(&cb.dirs, "http")}
}

// Stream opens a stream block.
func (cb *ConfigBuilder) Stream() *StreamBuilder {
	return &StreamBuilder{parent: cb, block: addBlock(&cb.dirs, "stream")}
}

// EventsBuilder builds the contents of an events block.
type EventsBuilder struct {
	parent *ConfigBuilder
	block  *[]config.Directive
}

// AddDirective appends a plain statement inside the events block.
func (eb *EventsBuilder) AddDirective(name string, args ...string) *EventsBuilder {
	*eb.block = append(*eb.block, config.Directive{Directive: name, Args: args})
	return eb
}

// WorkerConnections sets worker_connections.
func (eb *EventsBuilder) WorkerConnections(value string) *EventsBuilder {
	return eb.AddDirective("worker_connections", value)
}

// UseEpoll sets "use epoll".
func (eb *EventsBuilder) UseEpoll() *EventsBuilder {
	return eb.AddDirective("use", "epoll")
}

// MultiAccept sets multi_accept on or off.
func (eb *EventsBuilder) MultiAccept(enabled bool) *EventsBuilder {
	return eb.AddDirective("multi_accept", onOff(enabled))
}

// End returns to the enclosing config builder.
func (eb *EventsBuilder) End() *ConfigBuilder {
	return eb.parent
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
