// Package bounds turns usage facts into the final generic clause attached to
// generated impls. Two rules here are load-bearing and easy to get backwards:
// a record-level escape hatch replaces automatic inference entirely (never
// merged), and a direct field use of a parameter dominates its appearance
// inside the Phantom marker wrapper.
package bounds

import (
	"github.com/quill-lang/quill/internal/derive/ast"
	"github.com/quill-lang/quill/internal/derive/attr"
	"github.com/quill-lang/quill/internal/derive/usage"
)

// Capability is the default bound added to parameters whose values must be
// formattable by generated Show impls.
const Capability = "Show"

// Param is one generic parameter of a clause with its full bound list
// (declared bounds plus any inferred ones).
type Param struct {
	Name   string
	Bounds []string
}

// Clause is the generic clause for a generated impl: the bracketed parameter
// list and the where-clause predicates. Ordering is deterministic for a
// given input: parameters in declaration order, predicates in the order
// their paths were first encountered.
type Clause struct {
	Params []Param
	Where  []string
}

// Infer produces the clause for a capability-requiring impl.
//
// When the record carries an escape hatch, its literal clauses become the
// where-clause verbatim and no automatic inference runs. Otherwise, per
// parameter in declaration order: a direct use adds the capability bound to
// the parameter itself; a marker-only use adds nothing; associated-type
// paths become where-clause predicates on each distinct path, which is
// strictly more precise than bounding the parameter. A parameter with no
// usage at all stays unbounded.
//
// Inferred bounds are also appended to the record's GenericParam bound
// lists in place.
func Infer(record *ast.Record, facts *usage.Facts, cfg *attr.RecordConfig) *Clause {
	if cfg != nil && cfg.HasEscapeHatch() {
		clause := Passthrough(record)
		clause.Where = append(clause.Where, cfg.Bounds...)
		return clause
	}

	clause := &Clause{Params: make([]Param, 0, len(record.Params))}
	for _, p := range record.Params {
		paths := facts.AssociatedPaths(p.Name)
		if facts.Direct(p.Name) {
			appendBound(p, Capability)
		}
		for _, path := range paths {
			clause.Where = append(clause.Where, path+": "+Capability)
		}
		clause.Params = append(clause.Params, Param{Name: p.Name, Bounds: p.Bounds})
	}
	return clause
}

// Passthrough produces the record's generic clause unchanged, for
// generators that add no capability of their own.
func Passthrough(record *ast.Record) *Clause {
	clause := &Clause{Params: make([]Param, 0, len(record.Params))}
	for _, p := range record.Params {
		clause.Params = append(clause.Params, Param{Name: p.Name, Bounds: p.Bounds})
	}
	return clause
}

// appendBound adds a bound to a parameter unless an identical one is
// already present.
func appendBound(p *ast.GenericParam, bound string) {
	for _, existing := range p.Bounds {
		if existing == bound {
			return
		}
	}
	p.Bounds = append(p.Bounds, bound)
}
