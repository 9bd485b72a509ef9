package generator

import "github.com/nginxconf/gonginx/config"

// StreamBuilder builds the contents of a stream block.
type StreamBuilder struct {
	parent *ConfigBuilder
	block  *[]config.Directive
}

// AddDirective appends a plain statement inside the stream block.
func (sb *StreamBuilder) AddDirective(name string, args ...string) *StreamBuilder {
	*sb.block = append(*sb.block, config.Directive{Directive: name, Args: args})
	return sb
}

// Include adds an include directive inside the stream block.
func (sb *StreamBuilder) Include(pattern string) *StreamBuilder {
	return sb.AddDirective("include", pattern)
}

// Server opens a server block inside stream.
func (sb *StreamBuilder) Server() *ServerBuilder {
	return &ServerBuilder{streamParent: sb, block: addBlock(sb.block, "server")}
}

// Upstream opens a named upstream block inside stream.
func (sb *StreamBuilder) Upstream(name string) *UpstreamBuilder {
	return &UpstreamBuilder{streamParent: sb, block: addBlock(sb.block, "upstream", name)}
}

// End returns to the enclosing config builder.
func (sb *StreamBuilder) End() *ConfigBuilder {
	return sb.parent
}
