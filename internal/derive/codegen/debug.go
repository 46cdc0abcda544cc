package codegen

import (
	"github.com/quill-lang/quill/internal/derive/ast"
	"github.com/quill-lang/quill/internal/derive/attr"
	"github.com/quill-lang/quill/internal/derive/bounds"
	"github.com/quill-lang/quill/internal/derive/errors"
)

// GenerateDebug emits a Show impl printing the record's name and each field
// in declaration order. Fields with a format annotation are rendered through
// their template; everything else uses default structural formatting. The
// clause carries the inferred (or escape-hatched) bounds.
func GenerateDebug(record *ast.Record, clause *bounds.Clause) (*Output, *errors.DeriveError) {
	if record.Kind != ast.KindRecord {
		return nil, errors.NewUnsupportedShape(record.Loc, record.Name)
	}

	type debugField struct {
		field *ast.Field
		cfg   *attr.FieldConfig
	}
	fields := make([]*debugField, 0, len(record.Fields))
	for _, f := range record.Fields {
		cfg, err := attr.ParseFieldConfig(f)
		if err != nil {
			return nil, err
		}
		fields = append(fields, &debugField{field: f, cfg: cfg})
	}

	g := NewGenerator()
	g.writeLine("impl%s Show for %s%s%s {", renderParams(clause), record.Name, renderArgs(clause), renderWhere(clause))
	g.indent++
	g.writeLine("fn show(self, f: Formatter) -> ShowResult {")
	g.indent++
	g.writeLine("f.record(%q)", record.Name)
	g.indent++
	for _, df := range fields {
		if df.cfg.HasFormat() {
			g.writeLine(".field(%q, format(%q, self.%s))", df.field.Name, df.cfg.Format, df.field.Name)
		} else {
			g.writeLine(".field(%q, self.%s)", df.field.Name, df.field.Name)
		}
	}
	g.writeLine(".finish()")
	g.indent--
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")

	return &Output{
		Code:    assemble(g.String()),
		Methods: []Method{{Name: "show", Kind: "show"}},
	}, nil
}
