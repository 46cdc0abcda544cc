// Package usage analyzes how a record's generic parameters are used inside
// its field types. The analyzer is a depth-first walk over every type
// expression reachable from every field, including generic arguments nested
// arbitrarily deep, and classifies three shapes: a parameter used directly,
// a parameter wrapped solely in the Phantom marker, and a parameter used as
// the root of an associated-type path (T.Value).
package usage

import "github.com/quill-lang/quill/internal/derive/ast"

// MarkerWrapper is the well-known zero-size wrapper whose payload does not
// need to satisfy a capability at the value level. Phantom[T] alone never
// forces a bound on T.
const MarkerWrapper = "Phantom"

// Facts records, per generic parameter, every usage classification found in
// the record's fields. A parameter may hold several classifications at once;
// direct use dominates marker-wrapper use for bound purposes.
type Facts struct {
	params []string
	direct map[string]bool
	marker map[string]bool
	assoc  map[string][]string // param -> associated paths, first-seen order
}

// Analyze walks every field type of the record and returns the usage facts
// for its generic parameters. Analysis never fails; a parameter with no
// usage at all is a valid, representable fact.
func Analyze(record *ast.Record) *Facts {
	f := &Facts{
		params: record.ParamNames(),
		direct: make(map[string]bool),
		marker: make(map[string]bool),
		assoc:  make(map[string][]string),
	}

	known := make(map[string]bool, len(f.params))
	for _, name := range f.params {
		known[name] = true
	}

	for _, field := range record.Fields {
		f.walk(field.Type, known)
	}
	return f
}

// walk visits one type expression node and recurses into all nested
// generic arguments.
func (f *Facts) walk(t *ast.TypeExpr, known map[string]bool) {
	if t == nil || t.Kind != ast.TypePath || len(t.Segments) == 0 {
		return // opaque leaves contribute no usage
	}

	// Multi-segment path rooted at a generic parameter: an associated-type
	// reference. The full path is captured; segment arguments are still
	// visited below.
	if len(t.Segments) >= 2 && known[t.Segments[0].Name] {
		f.recordAssociated(t.Segments[0].Name, t.String())
	}

	if len(t.Segments) == 1 {
		seg := t.Segments[0]

		// Bare parameter occurrence, either as a field's own type or as a
		// generic argument of some other type.
		if known[seg.Name] && len(seg.Args) == 0 {
			f.direct[seg.Name] = true
			return
		}

		// Phantom[T] with a sole bare-parameter argument is the marker
		// shape; the payload parameter is recorded without descending, so
		// it does not count as a direct use.
		if seg.Name == MarkerWrapper && len(seg.Args) == 1 {
			if arg := seg.Args[0]; arg.Kind == ast.TypePath &&
				len(arg.Segments) == 1 &&
				len(arg.Segments[0].Args) == 0 &&
				known[arg.Segments[0].Name] {
				f.marker[arg.Segments[0].Name] = true
				return
			}
		}
	}

	for _, seg := range t.Segments {
		for _, arg := range seg.Args {
			f.walk(arg, known)
		}
	}
}

// recordAssociated appends an associated path for a parameter, keeping
// first-seen order and dropping duplicates.
func (f *Facts) recordAssociated(param, path string) {
	for _, existing := range f.assoc[param] {
		if existing == path {
			return
		}
	}
	f.assoc[param] = append(f.assoc[param], path)
}

// Params returns the generic parameter names in declaration order.
func (f *Facts) Params() []string {
	return f.params
}

// Direct reports whether the parameter appears as a plain type anywhere in
// the fields (its own type or a generic argument of a non-marker type).
func (f *Facts) Direct(param string) bool {
	return f.direct[param]
}

// MarkerOnly reports whether the parameter appears only inside the Phantom
// marker wrapper. Direct use always dominates.
func (f *Facts) MarkerOnly(param string) bool {
	return f.marker[param] && !f.direct[param]
}

// AssociatedPaths returns the distinct associated-type paths rooted at the
// parameter, in the order they were first encountered.
func (f *Facts) AssociatedPaths(param string) []string {
	return f.assoc[param]
}

// Unused reports whether the parameter has no usage of any kind in the
// record's fields.
func (f *Facts) Unused(param string) bool {
	return !f.direct[param] && !f.marker[param] && len(f.assoc[param]) == 0
}
