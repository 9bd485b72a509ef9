// Package catalog holds the static, extensible table mapping directive
// names to the contexts and argument counts they are legal in. Context
// dispatch is a small integer enum with a bitmask per catalog variant, so
// legality lookup is a bitwise AND rather than a string-keyed scan.
package catalog

// Context is one nesting position a directive can appear at.
type Context uint32

// Standard contexts, one bit each.
const (
	Main Context = 1 << iota
	Events
	HTTP
	HTTPServer
	HTTPLocation
	HTTPUpstream
	HTTPServerIf
	HTTPLocationIf
	HTTPLimitExcept
	Mail
	MailServer
	Stream
	StreamServer
	StreamUpstream
)

// Any is every context a directive legal "anywhere" can appear in. It
// deliberately excludes the "if" and "limit_except" pseudo-contexts, which
// only a handful of directives are legal in.
const Any = Main | Events | HTTP | HTTPServer | HTTPLocation | HTTPUpstream |
	Mail | MailServer | Stream | StreamServer | StreamUpstream

// names maps a context back to its ">"-joined path, as rendered by String.
var names = map[Context]string{
	Main:             "main",
	Events:           "events",
	HTTP:             "http",
	HTTPServer:       "http>server",
	HTTPLocation:     "http>location",
	HTTPUpstream:     "http>upstream",
	HTTPServerIf:     "http>server>if",
	HTTPLocationIf:   "http>location>if",
	HTTPLimitExcept:  "http>location>limit_except",
	Mail:             "mail",
	MailServer:       "mail>server",
	Stream:           "stream",
	StreamServer:     "stream>server",
	StreamUpstream:   "stream>upstream",
}

// String renders a context the way error messages and the context stack
// key format expect.
func (c Context) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "unknown"
}

// Arity is a bitmask describing how many arguments a variant accepts and
// whether it opens a block.
type Arity uint32

const (
	Take0 Arity = 1 << iota
	Take1
	Take2
	Take3
	Take4
	Take5
	Take6
	Take7
	Block      // must be followed by "{"
	Flag       // exactly one argument, "on" or "off"
	AnyCount   // zero or more arguments
	OneOrMore  // at least one argument
	TwoOrMore  // at least two arguments
)

// Helpful aliases mirroring the common "takes N or M" shapes.
const (
	Take01   = Take0 | Take1
	Take12   = Take1 | Take2
	Take23   = Take2 | Take3
	Take34   = Take3 | Take4
	Take123  = Take1 | Take2 | Take3
	Take1234 = Take123 | Take4
)

// Variant is one legal way to write a directive: a set of contexts it may
// appear in, combined with the arity it expects there.
type Variant struct {
	Contexts Context
	Arity    Arity
}

// ArgCountOK reports whether n arguments satisfy the variant's arity mask.
func (v Variant) ArgCountOK(n int, isFlagValid func(string) bool, args []string) bool {
	switch {
	case n <= 7 && v.Arity&(1<<uint(n)) != 0:
		return true
	case v.Arity&Flag != 0 && n == 1 && isFlagValid(args[0]):
		return true
	case v.Arity&AnyCount != 0:
		return true
	case v.Arity&OneOrMore != 0 && n >= 1:
		return true
	case v.Arity&TwoOrMore != 0 && n >= 2:
		return true
	}
	return false
}

// directives is the built-in catalog: directive name -> legal variants.
// Grounded on the bitmask table nginx itself uses internally (as mirrored
// by the Go crossplane port's analyze.go) and cross-checked against a
// typed nginx parser's hand-maintained context table; trimmed to a
// representative, broad-coverage subset rather than nginx's full ~700
// built-in directives.
var directives = map[string][]Variant{
	// main context
	"user":                 {{Main, Take12}},
	"worker_processes":     {{Main, Take1}},
	"worker_rlimit_nofile": {{Main, Take1}},
	"pid":                  {{Main, Take1}},
	"daemon":               {{Main, Flag}},
	"master_process":       {{Main, Flag}},
	"error_log":            {{Main | HTTP | HTTPServer | HTTPLocation | Mail | MailServer | Stream | StreamServer, Take12}},
	"pcre_jit":             {{Main, Flag}},
	"load_module":          {{Main, Take1}},
	"events":               {{Main, Block | Take0}},
	"http":                 {{Main, Block | Take0}},
	"mail":                 {{Main, Block | Take0}},
	"stream":               {{Main, Block | Take0}},

	// events
	"worker_connections": {{Events, Take1}},
	"use":                {{Events, Take1}},
	"multi_accept":       {{Events, Flag}},
	"accept_mutex":       {{Events, Flag}},
	"accept_mutex_delay": {{Events, Take1}},

	// http main
	"server":                {{HTTP, Block | Take0}, {Stream, Block | Take0}, {HTTPUpstream | StreamUpstream, OneOrMore}},
	"upstream":              {{HTTP, Block | Take1}, {Stream, Block | Take1}},
	"map":                   {{HTTP | Stream, Block | Take2}},
	"geo":                   {{HTTP, Block | Take12}},
	"split_clients":         {{HTTP, Block | Take2}},
	"limit_req_zone":        {{HTTP, Take3}},
	"limit_conn_zone":       {{HTTP, Take2}},
	"proxy_cache_path":      {{HTTP, TwoOrMore}},
	"types_hash_bucket_size": {{HTTP, Take1}},
	"types_hash_max_size":    {{HTTP, Take1}},
	"server_tokens":          {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"sendfile":               {{HTTP | HTTPServer | HTTPLocation | HTTPServerIf | HTTPLocationIf, Flag}},
	"tcp_nodelay":            {{HTTP | HTTPServer | HTTPLocation, Flag}},
	"tcp_nopush":             {{HTTP | HTTPServer | HTTPLocation, Flag}},
	"keepalive_timeout":      {{HTTP | HTTPServer | HTTPLocation, Take12}},
	"client_max_body_size":   {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"client_body_timeout":    {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"send_timeout":           {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"default_type":           {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"include":                {{Any | HTTPServerIf | HTTPLocationIf | HTTPLimitExcept, Take1}},
	"gzip":                   {{HTTP | HTTPServer | HTTPLocation | HTTPServerIf | HTTPLocationIf, Flag}},
	"gzip_types":             {{HTTP | HTTPServer | HTTPLocation, OneOrMore}},
	"access_log":             {{HTTP | HTTPServer | HTTPLocation | HTTPLimitExcept, OneOrMore}, {Stream | StreamServer, OneOrMore}},

	// http server
	"listen":                    {{HTTPServer, OneOrMore}, {StreamServer, OneOrMore}},
	"server_name":                {{HTTPServer, OneOrMore}},
	"location":                   {{HTTPServer | HTTPLocation, Block | Take12}},
	"ssl_certificate":             {{HTTPServer | Mail | MailServer | Stream | StreamServer, Take1}},
	"ssl_certificate_key":         {{HTTPServer | Mail | MailServer | Stream | StreamServer, Take1}},
	"ssl_protocols":               {{HTTPServer | HTTP | Mail | MailServer | Stream | StreamServer, OneOrMore}},
	"ssl_ciphers":                 {{HTTPServer | HTTP | Mail | MailServer | Stream | StreamServer, Take1}},
	"ssl_prefer_server_ciphers":   {{HTTPServer | HTTP, Flag}},
	"ssl_session_cache":           {{HTTPServer | HTTP, Take1}},
	"ssl_session_timeout":         {{HTTPServer | HTTP, Take1}},

	// http location / if
	"alias":             {{HTTPLocation, Take1}},
	"internal":           {{HTTPLocation, Take0}},
	"root":                {{HTTP | HTTPServer | HTTPLocation | HTTPServerIf | HTTPLocationIf, Take1}},
	"index":               {{HTTP | HTTPServer | HTTPLocation, OneOrMore}},
	"try_files":           {{HTTPServer | HTTPLocation, TwoOrMore}},
	"return":              {{HTTPServer | HTTPLocation | HTTPServerIf | HTTPLocationIf, Take12}},
	"rewrite":             {{HTTPServer | HTTPLocation | HTTPServerIf | HTTPLocationIf, Take23}},
	"break":               {{HTTPLocation | HTTPServerIf | HTTPLocationIf, Take0}},
	"set":                 {{HTTPServer | HTTPLocation | HTTPServerIf | HTTPLocationIf | Stream | StreamServer, Take2}},
	"if":                  {{HTTPServer | HTTPLocation, Block | Take1}},
	"limit_except":        {{HTTPLocation, Block | OneOrMore}},
	"error_page":          {{HTTP | HTTPServer | HTTPLocation | HTTPServerIf | HTTPLocationIf, TwoOrMore}},
	"add_header":          {{HTTP | HTTPServer | HTTPLocation | HTTPLocationIf, Take23}},
	"expires":             {{HTTP | HTTPServer | HTTPLocation | HTTPLocationIf, Take12}},
	"deny":                {{HTTP | HTTPServer | HTTPLocation | HTTPLimitExcept, Take1}},
	"allow":               {{HTTP | HTTPServer | HTTPLocation | HTTPLimitExcept, Take1}},
	"auth_basic":          {{HTTP | HTTPServer | HTTPLocation | HTTPLimitExcept, Take1}},
	"auth_basic_user_file": {{HTTP | HTTPServer | HTTPLocation | HTTPLimitExcept, Take1}},
	"autoindex":           {{HTTP | HTTPServer | HTTPLocation, Flag}},
	"limit_req":           {{HTTP | HTTPServer | HTTPLocation, OneOrMore}},
	"limit_conn":          {{HTTP | HTTPServer | HTTPLocation, Take2}},

	// proxy_*
	"proxy_pass":             {{HTTPLocation | HTTPServerIf | HTTPLocationIf | HTTPLimitExcept, Take1}, {StreamServer, Take1}},
	"proxy_set_header":        {{HTTP | HTTPServer | HTTPLocation | HTTPLocationIf, Take2}},
	"proxy_connect_timeout":    {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"proxy_read_timeout":       {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"proxy_send_timeout":       {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"proxy_buffering":          {{HTTP | HTTPServer | HTTPLocation, Flag}},
	"proxy_buffer_size":        {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"proxy_buffers":            {{HTTP | HTTPServer | HTTPLocation, Take2}},
	"proxy_cache":              {{HTTP | HTTPServer | HTTPLocation | HTTPLocationIf, Take1}},
	"proxy_cache_valid":        {{HTTP | HTTPServer | HTTPLocation, TwoOrMore}},
	"proxy_cache_key":          {{HTTP | HTTPServer | HTTPLocation, Take1}},
	"fastcgi_pass":             {{HTTPLocation | HTTPLocationIf, Take1}},

	// upstream
	"hash":               {{HTTPUpstream | StreamUpstream, Take12}},
	"ip_hash":            {{HTTPUpstream, Take0}},
	"least_conn":         {{HTTPUpstream | StreamUpstream, Take0}},
	"keepalive":          {{HTTPUpstream, Take1}},
	"keepalive_requests": {{HTTPUpstream, Take1}},
	"zone":               {{HTTPUpstream | StreamUpstream, Take12}},

	// mail
	"listen_mail":       {{MailServer, OneOrMore}},
	"protocol":          {{MailServer, Take1}},
	"auth_http":         {{Mail | MailServer, Take1}},

	// stream
	"proxy_timeout": {{StreamServer, Take1}},
	"preread_buffer_size": {{Stream | StreamServer, Take1}},
}

func init() {
	for name, variants := range directives {
		registered[name] = variants
	}
}

// registered is the live, mutable catalog: a copy of the built-in table
// seeded at init, plus anything Register or LoadExtensions adds later. The
// built-in table itself is never mutated, so it stays safe to share as a
// read-only reference across sessions even while registered is extended.
var registered = map[string][]Variant{}

// Lookup returns the legal variants for a directive name, if known.
func Lookup(name string) ([]Variant, bool) {
	v, ok := registered[name]
	return v, ok
}

// Register adds (or appends to) the legal variants for a directive name.
// This is the extension point for adding vendor/module directives instead of a hard-coded
// dispatch table; catalog.LoadExtensions builds on top of it.
func Register(name string, variants ...Variant) {
	registered[name] = append(registered[name], variants...)
}
