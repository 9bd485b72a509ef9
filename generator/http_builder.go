package generator

import "github.com/nginxconf/gonginx/config"

// HTTPBuilder builds the contents of an http block.
type HTTPBuilder struct {
	parent *ConfigBuilder
	block  *[]config.Directive
}

// AddDirective appends a plain statement inside the http block.
func (hb *HTTPBuilder) AddDirective(name string, args ...string) *HTTPBuilder {
	*hb.block = append(*hb.block, config.Directive{Directive: name, Args: args})
	return hb
}

func (hb *HTTPBuilder) SendFile(enabled bool) *HTTPBuilder       { return hb.AddDirective("sendfile", onOff(enabled)) }
func (hb *HTTPBuilder) TcpNoPush(enabled bool) *HTTPBuilder      { return hb.AddDirective("tcp_nopush", onOff(enabled)) }
func (hb *HTTPBuilder) TcpNoDelay(enabled bool) *HTTPBuilder     { return hb.AddDirective("tcp_nodelay", onOff(enabled)) }
func (hb *HTTPBuilder) KeepaliveTimeout(t string) *HTTPBuilder   { return hb.AddDirective("keepalive_timeout", t) }
func (hb *HTTPBuilder) ClientMaxBodySize(s string) *HTTPBuilder  { return hb.AddDirective("client_max_body_size", s) }
func (hb *HTTPBuilder) Gzip(enabled bool) *HTTPBuilder           { return hb.AddDirective("gzip", onOff(enabled)) }
func (hb *HTTPBuilder) GzipTypes(types ...string) *HTTPBuilder   { return hb.AddDirective("gzip_types", types...) }
func (hb *HTTPBuilder) Include(pattern string) *HTTPBuilder      { return hb.AddDirective("include", pattern) }

// AccessLog sets access_log, with an optional format name.
func (hb *HTTPBuilder) AccessLog(path string, format ...string) *HTTPBuilder {
	if len(format) > 0 {
		return hb.AddDirective("access_log", path, format[0])
	}
	return hb.AddDirective("access_log", path)
}

// ErrorLog sets error_log, with an optional level.
func (hb *HTTPBuilder) ErrorLog(path string, level ...string) *HTTPBuilder {
	if len(level) > 0 {
		return hb.AddDirective("error_log", path, level[0])
	}
	return hb.AddDirective("error_log", path)
}

// Server opens a server block inside http.
func (hb *HTTPBuilder) Server() *ServerBuilder {
	return &ServerBuilder{httpParent: hb, block: addBlock(hb.block, "server")}
}

// Upstream opens a named upstream block inside http.
func (hb *HTTPBuilder) Upstream(name string) *UpstreamBuilder {
	return &UpstreamBuilder{httpParent: hb, block: addBlock(hb.block, "upstream", name)}
}

// End returns to the enclosing config builder.
func (hb *HTTPBuilder) End() *ConfigBuilder {
	return hb.parent
}

// ServerBuilder builds the contents of a server block.
type ServerBuilder struct {
	httpParent   *HTTPBuilder
	streamParent *StreamBuilder
	block        *[]config.Directive
}

// AddDirective appends a plain statement inside the server block.
func (sb *ServerBuilder) AddDirective(name string, args ...string) *ServerBuilder {
	*sb.block = append(*sb.block, config.Directive{Directive: name, Args: args})
	return sb
}

// Listen adds a listen directive, with optional trailing parameters (e.g. "ssl", "default_server").
func (sb *ServerBuilder) Listen(port string, options ...string) *ServerBuilder {
	args := append([]string{port}, options...)
	return sb.AddDirective("listen", args...)
}

func (sb *ServerBuilder) ServerName(names ...string) *ServerBuilder { return sb.AddDirective("server_name", names...) }
func (sb *ServerBuilder) Root(path string) *ServerBuilder           { return sb.AddDirective("root", path) }
func (sb *ServerBuilder) Index(files ...string) *ServerBuilder      { return sb.AddDirective("index", files...) }
func (sb *ServerBuilder) ProxyPass(upstream string) *ServerBuilder  { return sb.AddDirective("proxy_pass", upstream) }

// AccessLog sets access_log for this server, with an optional format name.
func (sb *ServerBuilder) AccessLog(path string, format ...string) *ServerBuilder {
	if len(format) > 0 {
		return sb.AddDirective("access_log", path, format[0])
	}
	return sb.AddDirective("access_log", path)
}

// ErrorLog sets error_log for this server, with an optional level.
func (sb *ServerBuilder) ErrorLog(path string, level ...string) *ServerBuilder {
	if len(level) > 0 {
		return sb.AddDirective("error_log", path, level[0])
	}
	return sb.AddDirective("error_log", path)
}

// Return adds a return directive, with an optional URL/text argument.
func (sb *ServerBuilder) Return(code string, body ...string) *ServerBuilder {
	if len(body) > 0 {
		return sb.AddDirective("return", code, body[0])
	}
	return sb.AddDirective("return", code)
}

// SSLCertificate sets ssl_certificate and ssl_certificate_key together.
func (sb *ServerBuilder) SSLCertificate(cert, key string) *ServerBuilder {
	return sb.AddDirective("ssl_certificate", cert).AddDirective("ssl_certificate_key", key)
}

// Location opens a location block, with an optional modifier ("=", "~", "~*", "^~").
func (sb *ServerBuilder) Location(pattern string, modifier ...string) *LocationBuilder {
	var args []string
	if len(modifier) > 0 {
		args = append(args, modifier[0])
	}
	args = append(args, pattern)
	return &LocationBuilder{serverParent: sb, block: addBlock(sb.block, "location", args...)}
}

// EndServer returns to the enclosing http builder.
func (sb *ServerBuilder) EndServer() *HTTPBuilder {
	return sb.httpParent
}

// EndStreamServer returns to the enclosing stream builder.
func (sb *ServerBuilder) EndStreamServer() *StreamBuilder {
	return sb.streamParent
}

// LocationBuilder builds the contents of a location block.
type LocationBuilder struct {
	serverParent *ServerBuilder
	block        *[]config.Directive
}

// AddDirective appends a plain statement inside the location block.
func (lb *LocationBuilder) AddDirective(name string, args ...string) *LocationBuilder {
	*lb.block = append(*lb.block, config.Directive{Directive: name, Args: args})
	return lb
}

func (lb *LocationBuilder) ProxyPass(upstream string) *LocationBuilder { return lb.AddDirective("proxy_pass", upstream) }
func (lb *LocationBuilder) Root(path string) *LocationBuilder         { return lb.AddDirective("root", path) }
func (lb *LocationBuilder) TryFiles(args ...string) *LocationBuilder  { return lb.AddDirective("try_files", args...) }

// Return adds a return directive, with an optional URL/text argument.
func (lb *LocationBuilder) Return(code string, body ...string) *LocationBuilder {
	if len(body) > 0 {
		return lb.AddDirective("return", code, body[0])
	}
	return lb.AddDirective("return", code)
}

// EndLocation returns to the enclosing server builder.
func (lb *LocationBuilder) EndLocation() *ServerBuilder {
	return lb.serverParent
}

// UpstreamBuilder builds the contents of an upstream block.
type UpstreamBuilder struct {
	httpParent   *HTTPBuilder
	streamParent *StreamBuilder
	block        *[]config.Directive
}

// AddDirective appends a plain statement inside the upstream block.
func (ub *UpstreamBuilder) AddDirective(name string, args ...string) *UpstreamBuilder {
	*ub.block = append(*ub.block, config.Directive{Directive: name, Args: args})
	return ub
}

// Server adds one upstream server entry, with optional parameters (e.g. "weight=5", "max_fails=3").
func (ub *UpstreamBuilder) Server(address string, params ...string) *UpstreamBuilder {
	args := append([]string{address}, params...)
	return ub.AddDirective("server", args...)
}

func (ub *UpstreamBuilder) LeastConn() *UpstreamBuilder { return ub.AddDirective("least_conn") }
func (ub *UpstreamBuilder) IPHash() *UpstreamBuilder    { return ub.AddDirective("ip_hash") }

// EndUpstream returns to the enclosing http builder.
func (ub *UpstreamBuilder) EndUpstream() *HTTPBuilder {
	return ub.httpParent
}

// EndStreamUpstream returns to the enclosing stream builder.
func (ub *UpstreamBuilder) EndStreamUpstream() *StreamBuilder {
	return ub.streamParent
}
