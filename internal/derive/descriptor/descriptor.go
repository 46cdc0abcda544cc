// Package descriptor decodes the JSON wire format a host uses to hand one
// record declaration to the derive engine. The document mirrors the ast
// package structurally; type expressions arrive already parsed, either as
// path trees or as opaque source text.
package descriptor

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/quill-lang/quill/internal/derive/ast"
)

// Document is the top-level descriptor for one record declaration
type Document struct {
	Name   string       `json:"name"`
	Kind   string       `json:"kind,omitempty"` // "record" (default) or "union"
	Params []ParamDoc   `json:"params,omitempty"`
	Fields []FieldDoc   `json:"fields"`
	Attrs  []AttrDoc    `json:"attrs,omitempty"`
	Loc    *LocationDoc `json:"loc,omitempty"`
}

// ParamDoc describes one generic parameter
type ParamDoc struct {
	Name   string       `json:"name"`
	Bounds []string     `json:"bounds,omitempty"`
	Loc    *LocationDoc `json:"loc,omitempty"`
}

// FieldDoc describes one named field
type FieldDoc struct {
	Name  string       `json:"name"`
	Type  *TypeDoc     `json:"type"`
	Attrs []AttrDoc    `json:"attrs,omitempty"`
	Loc   *LocationDoc `json:"loc,omitempty"`
}

// TypeDoc describes a type expression: either a path of segments or an
// opaque source string. Exactly one of Path and Opaque must be set.
type TypeDoc struct {
	Path   []SegmentDoc `json:"path,omitempty"`
	Opaque string       `json:"opaque,omitempty"`
}

// SegmentDoc is one dotted segment of a path type
type SegmentDoc struct {
	Name string    `json:"name"`
	Args []TypeDoc `json:"args,omitempty"`
}

// AttrDoc describes one inert attribute with its raw argument text
type AttrDoc struct {
	Name string       `json:"name"`
	Args string       `json:"args,omitempty"`
	Loc  *LocationDoc `json:"loc,omitempty"`
}

// LocationDoc is a source position
type LocationDoc struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Decode reads a descriptor document and converts it into an ast.Record,
// validating the structural invariants the engine relies on.
func Decode(r io.Reader) (*ast.Record, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode record descriptor: %w", err)
	}
	return doc.ToRecord()
}

// ToRecord converts the document into the engine's input representation.
func (d *Document) ToRecord() (*ast.Record, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("record descriptor is missing a name")
	}

	var kind ast.RecordKind
	switch d.Kind {
	case "", "record":
		kind = ast.KindRecord
	case "union":
		kind = ast.KindUnion
	default:
		return nil, fmt.Errorf("unknown record kind %q", d.Kind)
	}

	record := &ast.Record{
		Name: d.Name,
		Kind: kind,
		Loc:  d.Loc.toLocation(),
	}

	for _, p := range d.Params {
		if p.Name == "" {
			return nil, fmt.Errorf("record %s: generic parameter is missing a name", d.Name)
		}
		record.Params = append(record.Params, &ast.GenericParam{
			Name:   p.Name,
			Bounds: p.Bounds,
			Loc:    p.Loc.toLocation(),
		})
	}

	for i, f := range d.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("record %s: field %d is missing a name", d.Name, i)
		}
		typ, err := f.Type.ToTypeExpr()
		if err != nil {
			return nil, fmt.Errorf("record %s: field %s: %w", d.Name, f.Name, err)
		}
		field := &ast.Field{
			Name: f.Name,
			Type: typ,
			Loc:  f.Loc.toLocation(),
		}
		for _, a := range f.Attrs {
			field.Attrs = append(field.Attrs, a.toAttribute())
		}
		record.Fields = append(record.Fields, field)
	}

	for _, a := range d.Attrs {
		record.Attrs = append(record.Attrs, a.toAttribute())
	}

	return record, nil
}

// ToTypeExpr converts the type document into the engine's type tree.
func (t *TypeDoc) ToTypeExpr() (*ast.TypeExpr, error) {
	if t == nil {
		return nil, fmt.Errorf("missing type")
	}
	if t.Opaque != "" && len(t.Path) > 0 {
		return nil, fmt.Errorf("type cannot be both a path and opaque")
	}
	if t.Opaque != "" {
		return ast.Opaque(t.Opaque), nil
	}
	if len(t.Path) == 0 {
		return nil, fmt.Errorf("type has neither a path nor opaque text")
	}

	expr := &ast.TypeExpr{Kind: ast.TypePath}
	for _, seg := range t.Path {
		if seg.Name == "" {
			return nil, fmt.Errorf("path segment is missing a name")
		}
		segment := &ast.PathSegment{Name: seg.Name}
		for i := range seg.Args {
			arg, err := seg.Args[i].ToTypeExpr()
			if err != nil {
				return nil, err
			}
			segment.Args = append(segment.Args, arg)
		}
		expr.Segments = append(expr.Segments, segment)
	}
	return expr, nil
}

func (a AttrDoc) toAttribute() *ast.Attribute {
	return &ast.Attribute{Name: a.Name, Args: a.Args, Loc: a.Loc.toLocation()}
}

func (l *LocationDoc) toLocation() ast.SourceLocation {
	if l == nil {
		return ast.SourceLocation{}
	}
	return ast.SourceLocation{Line: l.Line, Column: l.Column}
}
