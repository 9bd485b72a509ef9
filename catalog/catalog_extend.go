package catalog

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"
)

var contextByName = map[string]Context{
	"main":                       Main,
	"events":                     Events,
	"http":                       HTTP,
	"http>server":                HTTPServer,
	"http>location":              HTTPLocation,
	"http>upstream":              HTTPUpstream,
	"http>server>if":             HTTPServerIf,
	"http>location>if":           HTTPLocationIf,
	"http>location>limit_except": HTTPLimitExcept,
	"mail":                       Mail,
	"mail>server":                MailServer,
	"stream":                     Stream,
	"stream>server":              StreamServer,
	"stream>upstream":            StreamUpstream,
	"any":                        Any,
}

var arityByName = map[string]Arity{
	"take0":     Take0,
	"take1":     Take1,
	"take2":     Take2,
	"take3":     Take3,
	"take4":     Take4,
	"take5":     Take5,
	"take6":     Take6,
	"take7":     Take7,
	"block":     Block,
	"flag":      Flag,
	"any":       AnyCount,
	"1more":     OneOrMore,
	"2more":     TwoOrMore,
}

// ContextFromPath resolves a ">"-joined context path (one of the names
// Context.String renders, e.g. "http>location") to its bitmask. Any other
// path, such as "http>server>location", reports ok=false.
func ContextFromPath(path string) (Context, bool) {
	c, ok := contextByName[path]
	return c, ok
}

// ChildContext determines the context a block-opening directive pushes,
// given the context it was found in. Nesting in nginx is not a uniform
// ">"-path walk (a "location" nested inside another "location" stays in
// http>location, not a deeper path), so this is a small explicit table
// rather than string concatenation.
func ChildContext(parent Context, name string) (Context, bool) {
	switch name {
	case "http":
		return HTTP, parent == Main
	case "events":
		return Events, parent == Main
	case "mail":
		return Mail, parent == Main
	case "stream":
		return Stream, parent == Main
	case "server":
		switch parent {
		case HTTP:
			return HTTPServer, true
		case Stream:
			return StreamServer, true
		case Mail:
			return MailServer, true
		}
	case "location":
		if parent == HTTPServer || parent == HTTPLocation {
			return HTTPLocation, true
		}
	case "upstream":
		switch parent {
		case HTTP:
			return HTTPUpstream, true
		case Stream:
			return StreamUpstream, true
		}
	case "if":
		switch parent {
		case HTTPServer:
			return HTTPServerIf, true
		case HTTPLocation:
			return HTTPLocationIf, true
		}
	case "limit_except":
		if parent == HTTPLocation {
			return HTTPLimitExcept, true
		}
	}
	return parent, false
}

// entry is the YAML shape accepted by LoadExtensions: one directive name
// with the list of contexts and arity tokens that make up a single Variant.
// Each entry describes exactly one Variant; repeat the name across entries
// to register multiple variants for the same directive.
type entry struct {
	Name     string   `yaml:"name"`
	Contexts []string `yaml:"contexts"`
	Arity    []string `yaml:"arity"`
}

// LoadExtensions reads a YAML document of directive entries and registers
// them with the catalog. This is the registration hook for extending
// in place of a hard-coded dispatch table: a deployment that enables an
// nginx module the built-in table doesn't know about can describe its
// directives in YAML rather than recompiling the catalog.
func LoadExtensions(r io.Reader) error {
	var entries []entry
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("catalog: decoding extensions: %w", err)
	}

	for _, e := range entries {
		var ctx Context
		for _, c := range e.Contexts {
			mask, ok := contextByName[strings.ToLower(c)]
			if !ok {
				return fmt.Errorf("catalog: unknown context %q for directive %q", c, e.Name)
			}
			ctx |= mask
		}

		var arity Arity
		for _, a := range e.Arity {
			mask, ok := arityByName[strings.ToLower(a)]
			if !ok {
				return fmt.Errorf("catalog: unknown arity token %q for directive %q", a, e.Name)
			}
			arity |= mask
		}

		Register(e.Name, Variant{Contexts: ctx, Arity: arity})
	}
	return nil
}

// luaBlockDirectives is the default extension loaded at init: the standard
// *_by_lua_block family, registered as opaque-body block openers legal
// wherever the corresponding phase hook applies. Kept as a YAML document
// (rather than Go Variant literals) to exercise LoadExtensions itself and
// to serve as the template for a deployment's own extension file.
const luaBlockDirectives = `
- name: rewrite_by_lua_block
  contexts: [http, "http>server", "http>location", "http>location>if"]
  arity: [block, take0]
- name: access_by_lua_block
  contexts: [http, "http>server", "http>location"]
  arity: [block, take0]
- name: content_by_lua_block
  contexts: ["http>location", "http>location>if"]
  arity: [block, take0]
- name: log_by_lua_block
  contexts: [http, "http>server", "http>location"]
  arity: [block, take0]
- name: header_filter_by_lua_block
  contexts: [http, "http>server", "http>location"]
  arity: [block, take0]
- name: body_filter_by_lua_block
  contexts: [http, "http>server", "http>location"]
  arity: [block, take0]
- name: balancer_by_lua_block
  contexts: ["http>upstream"]
  arity: [block, take0]
- name: init_by_lua_block
  contexts: [http]
  arity: [block, take0]
- name: init_worker_by_lua_block
  contexts: [http]
  arity: [block, take0]
- name: ssl_certificate_by_lua_block
  contexts: ["http>server"]
  arity: [block, take0]
- name: lua_shared_dict
  contexts: [http]
  arity: [take2]
- name: lua_package_path
  contexts: [http]
  arity: [take1]
- name: lua_code_cache
  contexts: [http, "http>server", "http>location"]
  arity: [flag]
`

func init() {
	if err := LoadExtensions(strings.NewReader(luaBlockDirectives)); err != nil {
		panic(fmt.Sprintf("catalog: loading built-in lua extension: %v", err))
	}
}
