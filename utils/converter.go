// Package utils provides encoding helpers and structural diffing for
// config trees; the cmd/gonginx CLI uses the JSON helpers.
package utils

import (
	"encoding/json"
	"fmt"

	"github.com/nginxconf/gonginx/config"
	"gopkg.in/yaml.v2"
)

// ToJSON marshals a Payload using the field names and ordering defined on
// config.Payload/FileConfig/Directive.
func ToJSON(p *config.Payload, pretty bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(p, "", "  ")
	} else {
		data, err = json.Marshal(p)
	}
	if err != nil {
		return "", fmt.Errorf("marshal payload to JSON: %w", err)
	}
	return string(data), nil
}

// FromJSON parses a Payload previously produced by ToJSON (or by the
// gonginx parse subcommand).
func FromJSON(data []byte) (*config.Payload, error) {
	var p config.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal payload from JSON: %w", err)
	}
	return &p, nil
}

// ToYAML marshals a Payload to YAML after re-encoding it through JSON, so
// the YAML keys and omitted empty fields follow the json tags on
// config.Payload/FileConfig/Directive.
func ToYAML(p *config.Payload) (string, error) {
	data, err := yaml.Marshal(jsonRoundTrip(p))
	if err != nil {
		return "", fmt.Errorf("marshal payload to YAML: %w", err)
	}
	return string(data), nil
}

// jsonRoundTrip re-encodes v through JSON into a generic map/slice tree so
// yaml.Marshal sees the same keys ToJSON produces (json tag names, with
// omitempty fields dropped), instead of yaml.v2's lowercased-field-name
// defaults, which ignore json tags and omitempty.
func jsonRoundTrip(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return v
	}
	return generic
}
