// Package ast defines the structural description of a Quill record declaration
// as delivered by the host parser: the record itself, its generic parameters,
// named fields with type expressions, and inert attributes. The derive engine
// consumes these nodes; it never parses Quill source text itself.
package ast

import "strings"

// SourceLocation tracks the position of a node in source code
type SourceLocation struct {
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Node is the base interface for all derive input nodes
type Node interface {
	Location() SourceLocation
	node()
}

// RecordKind distinguishes the declaration shapes the host can hand us.
// Only named-field records are derivable; everything else is rejected
// with an unsupported-shape error by the generators.
type RecordKind int

const (
	// KindRecord represents a plain record with named fields
	KindRecord RecordKind = iota
	// KindUnion represents a sum type (union/enum declaration)
	KindUnion
)

// Record represents one record declaration handed over by the host parser.
// It is immutable for the duration of a synthesis run, with one exception:
// bound inference appends inferred bounds to the generic parameters in place.
type Record struct {
	Name   string
	Kind   RecordKind
	Params []*GenericParam
	Fields []*Field
	Attrs  []*Attribute // record-level attributes (e.g. @debug(bound = "..."))
	Loc    SourceLocation
}

func (r *Record) node() {}

// Location returns the source location of the record declaration.
func (r *Record) Location() SourceLocation {
	return r.Loc
}

// ParamNames returns the generic parameter identifiers in declaration order.
func (r *Record) ParamNames() []string {
	names := make([]string, 0, len(r.Params))
	for _, p := range r.Params {
		names = append(names, p.Name)
	}
	return names
}

// GenericParam represents one generic parameter of a record.
// Bounds holds the bounds already written in the declaration; bound
// inference appends to it.
type GenericParam struct {
	Name   string
	Bounds []string
	Loc    SourceLocation
}

func (p *GenericParam) node() {}

// Location returns the source location of the generic parameter.
func (p *GenericParam) Location() SourceLocation {
	return p.Loc
}

// Field represents a named field declaration in a record
type Field struct {
	Name  string
	Type  *TypeExpr
	Attrs []*Attribute // field-level attributes (e.g. @builder(each = "arg"))
	Loc   SourceLocation
}

func (f *Field) node() {}

// Location returns the source location of the field declaration.
func (f *Field) Location() SourceLocation {
	return f.Loc
}

// Attribute represents one inert attribute as the host parser saw it:
// the tag name and the raw, still-unparsed argument text between the
// parentheses. The attr package parses Args into entries.
type Attribute struct {
	Name string // attribute tag name ("builder", "debug")
	Args string // raw argument text, e.g. `each = "arg"`
	Loc  SourceLocation
}

func (a *Attribute) node() {}

// Location returns the source location of the attribute.
func (a *Attribute) Location() SourceLocation {
	return a.Loc
}

// TypeKind represents the kind of a type expression node
type TypeKind int

const (
	// TypePath represents a (possibly generic, possibly multi-segment) path
	// type such as T, List[T], or T.Value
	TypePath TypeKind = iota
	// TypeOpaque represents any type shape the derive engine does not
	// inspect (function types, tuples, ...). Opaque nodes contribute no
	// generic-parameter usage.
	TypeOpaque
)

// TypeExpr is the recursive type expression tree for a field type.
// Only TypePath nodes are inspected by the usage analyzer; TypeOpaque
// nodes are leaves carrying their source text verbatim.
type TypeExpr struct {
	Kind     TypeKind
	Segments []*PathSegment // for TypePath; at least one segment
	Raw      string         // for TypeOpaque; verbatim source text
	Loc      SourceLocation
}

func (t *TypeExpr) node() {}

// Location returns the source location of the type expression.
func (t *TypeExpr) Location() SourceLocation {
	return t.Loc
}

// PathSegment is one dotted segment of a path type, optionally carrying
// generic arguments (e.g. the "List" in List[T], or the "Value" in T.Value).
type PathSegment struct {
	Name string
	Args []*TypeExpr
}

// Path constructs a plain path type from dotted segment names.
// Convenience for descriptor decoding and tests.
func Path(names ...string) *TypeExpr {
	segs := make([]*PathSegment, 0, len(names))
	for _, n := range names {
		segs = append(segs, &PathSegment{Name: n})
	}
	return &TypeExpr{Kind: TypePath, Segments: segs}
}

// Generic constructs a single-segment path type with generic arguments,
// e.g. Generic("List", Path("T")) for List[T].
func Generic(name string, args ...*TypeExpr) *TypeExpr {
	return &TypeExpr{
		Kind:     TypePath,
		Segments: []*PathSegment{{Name: name, Args: args}},
	}
}

// Opaque constructs an opaque type leaf carrying its source text.
func Opaque(raw string) *TypeExpr {
	return &TypeExpr{Kind: TypeOpaque, Raw: raw}
}

// String renders the type expression back into Quill surface syntax.
// The rendering is used verbatim in generated code, so it must round-trip
// what the host parser delivered.
func (t *TypeExpr) String() string {
	if t == nil {
		return ""
	}
	if t.Kind == TypeOpaque {
		return t.Raw
	}

	var b strings.Builder
	for i, seg := range t.Segments {
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(seg.Name)
		if len(seg.Args) > 0 {
			b.WriteString("[")
			for j, arg := range seg.Args {
				if j > 0 {
					b.WriteString(", ")
				}
				b.WriteString(arg.String())
			}
			b.WriteString("]")
		}
	}
	return b.String()
}

// IsSinglePath reports whether the type is a plain one-segment path with
// the given name and no generic arguments (e.g. a bare generic parameter).
func (t *TypeExpr) IsSinglePath(name string) bool {
	return t != nil && t.Kind == TypePath &&
		len(t.Segments) == 1 &&
		t.Segments[0].Name == name &&
		len(t.Segments[0].Args) == 0
}

// Unwrap returns the sole generic argument of a one-segment path type with
// the given head name (e.g. the T of Option[T]), or nil if the type does
// not have that shape.
func (t *TypeExpr) Unwrap(head string) *TypeExpr {
	if t == nil || t.Kind != TypePath || len(t.Segments) != 1 {
		return nil
	}
	seg := t.Segments[0]
	if seg.Name != head || len(seg.Args) != 1 {
		return nil
	}
	return seg.Args[0]
}
