package config

// Payload is the top-level result of a parse session. Field names and
// ordering are a stable public JSON compatibility surface.
type Payload struct {
	Status string       `json:"status"`
	Errors []ParseError `json:"errors"`
	Config []FileConfig `json:"config"`
}

// FileConfig is the parsed result of one source file.
type FileConfig struct {
	File   string       `json:"file"`
	Status string       `json:"status"`
	Errors []ParseError `json:"errors"`
	Parsed []Directive  `json:"parsed"`
}

// ParseError is a single source-located parse failure recorded in tolerant
// mode, or the failing cause in strict mode.
type ParseError struct {
	File  string `json:"file"`
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// OK reports whether the payload's status is "ok".
func (p *Payload) OK() bool {
	return p.Status == "ok"
}

// AddError records an error against both the payload and the named file's
// FileConfig, marking both "failed".
func (p *Payload) AddError(file string, line int, msg string) {
	p.Status = "failed"
	p.Errors = append(p.Errors, ParseError{File: file, Line: line, Error: msg})
	for i := range p.Config {
		if p.Config[i].File == file {
			p.Config[i].Status = "failed"
			p.Config[i].Errors = append(p.Config[i].Errors, ParseError{Line: line, Error: msg})
			return
		}
	}
}
