package codegen

import (
	"strings"

	"github.com/quill-lang/quill/internal/derive/bounds"
)

// The emitter renders the post-inference generic clause into Quill surface
// syntax and assembles generator output into the final artifact. It holds
// no decision logic.

// Output is the result of one generator run: the emitted source plus the
// operations it contains.
type Output struct {
	Code    string
	Methods []Method
}

// renderParams renders the bracketed generic parameter list with bounds,
// e.g. "[T: Show, U]". Empty for non-generic records.
func renderParams(clause *bounds.Clause) string {
	if len(clause.Params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(clause.Params))
	for _, p := range clause.Params {
		if len(p.Bounds) > 0 {
			parts = append(parts, p.Name+": "+strings.Join(p.Bounds, " + "))
		} else {
			parts = append(parts, p.Name)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// renderArgs renders the bracketed generic argument list without bounds,
// e.g. "[T, U]", for use sites of a generic type.
func renderArgs(clause *bounds.Clause) string {
	if len(clause.Params) == 0 {
		return ""
	}
	names := make([]string, 0, len(clause.Params))
	for _, p := range clause.Params {
		names = append(names, p.Name)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// renderWhere renders the where-clause suffix, e.g.
// " where T.Value: Show", or "" when there are no predicates.
func renderWhere(clause *bounds.Clause) string {
	if len(clause.Where) == 0 {
		return ""
	}
	return " where " + strings.Join(clause.Where, ", ")
}

// assemble joins generated sections with single blank lines between them.
func assemble(sections ...string) string {
	trimmed := make([]string, 0, len(sections))
	for _, s := range sections {
		s = strings.TrimRight(s, "\n")
		if s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return strings.Join(trimmed, "\n\n") + "\n"
}
