package codegen

import (
	"github.com/quill-lang/quill/internal/derive/ast"
	"github.com/quill-lang/quill/internal/derive/attr"
	"github.com/quill-lang/quill/internal/derive/bounds"
	"github.com/quill-lang/quill/internal/derive/errors"
)

// Container heads the builder generator treats specially.
const (
	optionHead = "Option"
	listHead   = "List"
)

// builderField is the per-field emission plan for the builder target.
type builderField struct {
	field    *ast.Field
	cfg      *attr.FieldConfig
	optional bool          // Option[...] field: never required
	list     bool          // List[...] field: defaults to empty, never required
	elem     *ast.TypeExpr // List element type when list is true
}

// GenerateBuilder emits the builder companion for a record: a constructor,
// the <Name>Builder record with one slot per field, a setter per field
// (element-at-a-time for `each` fields), and a build operation that fails
// at the record's own runtime for every required field left unset.
func GenerateBuilder(record *ast.Record, clause *bounds.Clause) (*Output, *errors.DeriveError) {
	if record.Kind != ast.KindRecord {
		return nil, errors.NewUnsupportedShape(record.Loc, record.Name)
	}

	fields := make([]*builderField, 0, len(record.Fields))
	for _, f := range record.Fields {
		cfg, err := attr.ParseFieldConfig(f)
		if err != nil {
			return nil, err
		}
		bf := &builderField{field: f, cfg: cfg}
		if inner := f.Type.Unwrap(optionHead); inner != nil {
			bf.optional = true
		}
		if elem := f.Type.Unwrap(listHead); elem != nil {
			bf.list = true
			bf.elem = elem
		}
		if cfg.HasEach() && !bf.list {
			return nil, errors.NewUnsupportedAttributeTarget(cfg.EachLoc, f.Name, f.Type.String())
		}
		fields = append(fields, bf)
	}

	builderName := record.Name + "Builder"
	params := renderParams(clause)
	args := renderArgs(clause)
	methods := make([]Method, 0, len(fields)+2)

	g := NewGenerator()

	// Constructor impl on the record itself.
	g.writeLine("impl%s %s%s {", params, record.Name, args)
	g.indent++
	g.writeLine("fn builder() -> %s%s {", builderName, args)
	g.indent++
	g.writeLine("%s {", builderName)
	g.indent++
	for _, bf := range fields {
		if bf.list {
			g.writeLine("%s: List.new(),", bf.field.Name)
		} else {
			g.writeLine("%s: None,", bf.field.Name)
		}
	}
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	constructor := g.String()
	methods = append(methods, Method{Name: "builder", Kind: "builder"})

	// Builder record declaration. List fields keep their own type; every
	// other field gets an Option slot (Option fields already are one).
	g = NewGenerator()
	g.writeLine("record %s%s {", builderName, params)
	g.indent++
	for _, bf := range fields {
		switch {
		case bf.list, bf.optional:
			g.writeLine("%s: %s,", bf.field.Name, bf.field.Type.String())
		default:
			g.writeLine("%s: Option[%s],", bf.field.Name, bf.field.Type.String())
		}
	}
	g.indent--
	g.writeLine("}")
	recordDecl := g.String()

	// Setter and build impl.
	g = NewGenerator()
	g.writeLine("impl%s %s%s {", params, builderName, args)
	g.indent++

	first := true
	writeGap := func() {
		if !first {
			g.writeLine("")
		}
		first = false
	}

	for _, bf := range fields {
		if bf.cfg.HasEach() {
			writeGap()
			g.writeLine("fn %s(self, value: %s) -> %s%s {", bf.cfg.Each, bf.elem.String(), builderName, args)
			g.indent++
			g.writeLine("self.%s.push(value)", bf.field.Name)
			g.writeLine("self")
			g.indent--
			g.writeLine("}")
			methods = append(methods, Method{Name: bf.cfg.Each, Kind: "each"})

			// The accumulating method wins the name when it collides with
			// the field's own all-at-once setter.
			if bf.cfg.Each == bf.field.Name {
				continue
			}
		}

		writeGap()
		valueType := bf.field.Type.String()
		if bf.optional {
			valueType = bf.field.Type.Unwrap(optionHead).String()
		}
		g.writeLine("fn %s(self, value: %s) -> %s%s {", bf.field.Name, valueType, builderName, args)
		g.indent++
		if bf.list {
			g.writeLine("self.%s = value", bf.field.Name)
		} else {
			g.writeLine("self.%s = Some(value)", bf.field.Name)
		}
		g.writeLine("self")
		g.indent--
		g.writeLine("}")
		methods = append(methods, Method{Name: bf.field.Name, Kind: "setter"})
	}

	writeGap()
	g.writeLine("fn build(self) -> Result[%s%s, BuildError] {", record.Name, args)
	g.indent++
	for _, bf := range fields {
		if bf.optional || bf.list {
			continue
		}
		g.writeLine("if self.%s.is_none() {", bf.field.Name)
		g.indent++
		g.writeLine("return Err(BuildError.missing(%q))", bf.field.Name)
		g.indent--
		g.writeLine("}")
	}
	g.writeLine("Ok(%s {", record.Name)
	g.indent++
	for _, bf := range fields {
		if bf.optional || bf.list {
			g.writeLine("%s: self.%s,", bf.field.Name, bf.field.Name)
		} else {
			g.writeLine("%s: self.%s.unwrap(),", bf.field.Name, bf.field.Name)
		}
	}
	g.indent--
	g.writeLine("})")
	g.indent--
	g.writeLine("}")

	g.indent--
	g.writeLine("}")
	methods = append(methods, Method{Name: "build", Kind: "build"})

	return &Output{
		Code:    assemble(constructor, recordDecl, g.String()),
		Methods: methods,
	}, nil
}
