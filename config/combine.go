package config

// Combine flattens a multi-file Payload into the single tree an include-free
// rendering would have produced: every resolved "include" directive is
// replaced in place by the directives of the file(s) its Includes indices
// point to, recursively. The root file is p.Config[0], matching the order
// the parser always appends it in.
//
// Combine is read-only: it builds a new tree and never mutates p.
func Combine(p *Payload) []Directive {
	if len(p.Config) == 0 {
		return nil
	}
	return combineDirectives(p.Config[0].Parsed, p.Config)
}

func combineDirectives(dirs []Directive, all []FileConfig) []Directive {
	out := make([]Directive, 0, len(dirs))
	for _, d := range dirs {
		if d.IsInclude() {
			for _, idx := range *d.Includes {
				if idx < 0 || idx >= len(all) {
					continue
				}
				out = append(out, combineDirectives(all[idx].Parsed, all)...)
			}
			continue
		}
		if d.IsBlock() {
			children := combineDirectives(d.Children(), all)
			d.Block = &children
		}
		out = append(out, d)
	}
	return out
}
