package config

// Walk visits every directive in dirs depth-first, including nested blocks.
// fn is called once per directive; if it returns false, Walk does not
// descend into that directive's block.
func Walk(dirs []Directive, fn func(d *Directive) bool) {
	for i := range dirs {
		d := &dirs[i]
		if !fn(d) {
			continue
		}
		if d.IsBlock() {
			Walk(*d.Block, fn)
		}
	}
}

// FindDirectives returns every directive named name anywhere under dirs,
// in document order.
func FindDirectives(dirs []Directive, name string) []Directive {
	var out []Directive
	Walk(dirs, func(d *Directive) bool {
		if d.Directive == name {
			out = append(out, *d)
		}
		return true
	})
	return out
}

// FindFirst returns the first directive named name anywhere under dirs.
func FindFirst(dirs []Directive, name string) (Directive, bool) {
	var (
		found Directive
		ok    bool
	)
	Walk(dirs, func(d *Directive) bool {
		if ok {
			return false
		}
		if d.Directive == name {
			found, ok = *d, true
			return false
		}
		return true
	})
	return found, ok
}

// Top returns the direct children of dirs named name, without descending
// into nested blocks. Use this to query a known context, e.g. the http
// block's immediate "server" children.
func Top(dirs []Directive, name string) []Directive {
	var out []Directive
	for _, d := range dirs {
		if d.Directive == name {
			out = append(out, d)
		}
	}
	return out
}

// Comments returns every "#" comment node under dirs, in document order.
func Comments(dirs []Directive) []Directive {
	return FindDirectives(dirs, CommentDirective)
}
