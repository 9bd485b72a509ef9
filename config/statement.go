package config

import (
	"regexp"
	"strconv"
	"strings"
)

// ParameterType classifies an argument's shape for tooling that wants to
// reason about it without re-deriving the pattern itself. Classification
// is advisory only: it never gates parsing or directive legality, which
// stay arity/context checks per the catalog (see package analyzer).
type ParameterType int

const (
	ParameterString ParameterType = iota
	ParameterVariable
	ParameterNumber
	ParameterSize
	ParameterTime
	ParameterPath
	ParameterURL
	ParameterRegex
	ParameterBoolean
)

// String renders the parameter type's name.
func (pt ParameterType) String() string {
	switch pt {
	case ParameterVariable:
		return "variable"
	case ParameterNumber:
		return "number"
	case ParameterSize:
		return "size"
	case ParameterTime:
		return "time"
	case ParameterPath:
		return "path"
	case ParameterURL:
		return "url"
	case ParameterRegex:
		return "regex"
	case ParameterBoolean:
		return "boolean"
	default:
		return "string"
	}
}

var (
	sizeRe = regexp.MustCompile(`(?i)^[0-9]+(\.[0-9]+)?[kmgt]b?$`)
	timeRe = regexp.MustCompile(`(?i)^[0-9]+(ms|[smhdwy])$`)
)

// ClassifyArgument detects the type of a single argument value.
func ClassifyArgument(value string) ParameterType {
	if value == "" {
		return ParameterString
	}
	if strings.HasPrefix(value, "$") {
		return ParameterVariable
	}
	lower := strings.ToLower(value)
	if lower == "on" || lower == "off" {
		return ParameterBoolean
	}
	if timeRe.MatchString(value) {
		return ParameterTime
	}
	if sizeRe.MatchString(value) {
		return ParameterSize
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return ParameterNumber
	}
	if strings.HasPrefix(value, "~") {
		return ParameterRegex
	}
	if strings.Contains(value, "://") {
		return ParameterURL
	}
	if strings.HasPrefix(value, "/") {
		return ParameterPath
	}
	return ParameterString
}

// ClassifyArgs classifies every argument of a directive in order.
func (d Directive) ClassifyArgs() []ParameterType {
	out := make([]ParameterType, len(d.Args))
	for i, a := range d.Args {
		out[i] = ClassifyArgument(a)
	}
	return out
}
