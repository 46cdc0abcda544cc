package bounds

import (
	"reflect"
	"testing"

	"github.com/quill-lang/quill/internal/derive/ast"
	"github.com/quill-lang/quill/internal/derive/attr"
	"github.com/quill-lang/quill/internal/derive/usage"
)

func fixture(params []*ast.GenericParam, fieldTypes ...*ast.TypeExpr) *ast.Record {
	r := &ast.Record{Name: "Fixture", Params: params}
	for i, t := range fieldTypes {
		r.Fields = append(r.Fields, &ast.Field{Name: "f" + string(rune('0'+i)), Type: t})
	}
	return r
}

func infer(r *ast.Record, cfg *attr.RecordConfig) *Clause {
	return Infer(r, usage.Analyze(r), cfg)
}

func TestInfer_DirectUseGetsCapability(t *testing.T) {
	r := fixture([]*ast.GenericParam{{Name: "T"}}, ast.Path("T"))
	clause := infer(r, &attr.RecordConfig{})

	if !reflect.DeepEqual(clause.Params[0].Bounds, []string{Capability}) {
		t.Errorf("bounds for T = %v, want [%s]", clause.Params[0].Bounds, Capability)
	}
	if len(clause.Where) != 0 {
		t.Errorf("unexpected where-clause %v", clause.Where)
	}
}

func TestInfer_MarkerOnlyGetsNoBound(t *testing.T) {
	r := fixture([]*ast.GenericParam{{Name: "T"}},
		ast.Generic(usage.MarkerWrapper, ast.Path("T")))
	clause := infer(r, &attr.RecordConfig{})

	if len(clause.Params[0].Bounds) != 0 {
		t.Errorf("marker-only T should stay unbounded, got %v", clause.Params[0].Bounds)
	}
}

func TestInfer_DirectUseDominatesMarker(t *testing.T) {
	r := fixture([]*ast.GenericParam{{Name: "T"}},
		ast.Generic(usage.MarkerWrapper, ast.Path("T")),
		ast.Path("T"))
	clause := infer(r, &attr.RecordConfig{})

	if !reflect.DeepEqual(clause.Params[0].Bounds, []string{Capability}) {
		t.Errorf("bounds for T = %v, want [%s]", clause.Params[0].Bounds, Capability)
	}
}

func TestInfer_AssociatedTypeGetsWhereClause(t *testing.T) {
	r := fixture([]*ast.GenericParam{{Name: "T"}}, ast.Path("T", "Value"))
	clause := infer(r, &attr.RecordConfig{})

	if len(clause.Params[0].Bounds) != 0 {
		t.Errorf("T itself should stay unbounded, got %v", clause.Params[0].Bounds)
	}
	want := []string{"T.Value: " + Capability}
	if !reflect.DeepEqual(clause.Where, want) {
		t.Errorf("where-clause = %v, want %v", clause.Where, want)
	}
}

func TestInfer_AssociatedPathsKeptAlongsideDirectUse(t *testing.T) {
	r := fixture([]*ast.GenericParam{{Name: "T"}},
		ast.Path("T"),
		ast.Path("T", "Value"))
	clause := infer(r, &attr.RecordConfig{})

	if !reflect.DeepEqual(clause.Params[0].Bounds, []string{Capability}) {
		t.Errorf("bounds for T = %v, want [%s]", clause.Params[0].Bounds, Capability)
	}
	want := []string{"T.Value: " + Capability}
	if !reflect.DeepEqual(clause.Where, want) {
		t.Errorf("where-clause = %v, want %v", clause.Where, want)
	}
}

// Pins the zero-usage policy: a parameter appearing in no field stays
// unbounded rather than getting a conservative default bound.
func TestInfer_UnusedParamStaysUnbounded(t *testing.T) {
	r := fixture([]*ast.GenericParam{{Name: "T"}, {Name: "U"}}, ast.Path("T"))
	clause := infer(r, &attr.RecordConfig{})

	if len(clause.Params[1].Bounds) != 0 {
		t.Errorf("unused U should stay unbounded, got %v", clause.Params[1].Bounds)
	}
}

func TestInfer_NeverDuplicatesBound(t *testing.T) {
	// Declared Show bound plus an inferred one must not stack.
	r := fixture([]*ast.GenericParam{{Name: "T", Bounds: []string{Capability}}}, ast.Path("T"))
	clause := infer(r, &attr.RecordConfig{})

	if !reflect.DeepEqual(clause.Params[0].Bounds, []string{Capability}) {
		t.Errorf("bounds for T = %v, want single [%s]", clause.Params[0].Bounds, Capability)
	}
}

func TestInfer_AppendsToDeclaredBounds(t *testing.T) {
	r := fixture([]*ast.GenericParam{{Name: "T", Bounds: []string{"Clone"}}}, ast.Path("T"))
	clause := infer(r, &attr.RecordConfig{})

	want := []string{"Clone", Capability}
	if !reflect.DeepEqual(clause.Params[0].Bounds, want) {
		t.Errorf("bounds for T = %v, want %v", clause.Params[0].Bounds, want)
	}
	// Inference mutates the record's parameter in place.
	if !reflect.DeepEqual(r.Params[0].Bounds, want) {
		t.Errorf("record param bounds = %v, want %v", r.Params[0].Bounds, want)
	}
}

func TestInfer_EscapeHatchReplacesInference(t *testing.T) {
	// T would get a Show bound from its direct use; the escape hatch must
	// suppress that entirely and apply only the literal clauses.
	r := fixture([]*ast.GenericParam{{Name: "T"}}, ast.Path("T"), ast.Path("T", "Value"))
	cfg := &attr.RecordConfig{Bounds: []string{"T: SomeOtherConstraint"}}
	clause := Infer(r, usage.Analyze(r), cfg)

	if len(clause.Params[0].Bounds) != 0 {
		t.Errorf("escape hatch must suppress inferred bounds, got %v", clause.Params[0].Bounds)
	}
	want := []string{"T: SomeOtherConstraint"}
	if !reflect.DeepEqual(clause.Where, want) {
		t.Errorf("where-clause = %v, want exactly the escape hatch %v", clause.Where, want)
	}
}

func TestInfer_EscapeHatchKeepsOrderAndDuplicates(t *testing.T) {
	r := fixture([]*ast.GenericParam{{Name: "T"}}, ast.Path("T"))
	cfg := &attr.RecordConfig{Bounds: []string{"T: A", "T: B", "T: A"}}
	clause := Infer(r, usage.Analyze(r), cfg)

	want := []string{"T: A", "T: B", "T: A"}
	if !reflect.DeepEqual(clause.Where, want) {
		t.Errorf("where-clause = %v, want %v", clause.Where, want)
	}
}

func TestInfer_Deterministic(t *testing.T) {
	build := func() *Clause {
		r := fixture(
			[]*ast.GenericParam{{Name: "T"}, {Name: "U"}},
			ast.Path("T", "Value"),
			ast.Path("U", "Item"),
			ast.Path("T", "Key"),
		)
		return infer(r, &attr.RecordConfig{})
	}

	first := build()
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(build(), first) {
			t.Fatal("inference output must be deterministic for identical input")
		}
	}

	want := []string{"T.Value: Show", "T.Key: Show", "U.Item: Show"}
	if !reflect.DeepEqual(first.Where, want) {
		t.Errorf("where-clause = %v, want param-then-first-seen order %v", first.Where, want)
	}
}

func TestPassthrough_KeepsDeclaredClause(t *testing.T) {
	r := fixture([]*ast.GenericParam{{Name: "T", Bounds: []string{"Clone"}}, {Name: "U"}}, ast.Path("T"))
	clause := Passthrough(r)

	if !reflect.DeepEqual(clause.Params[0].Bounds, []string{"Clone"}) {
		t.Errorf("passthrough must not add bounds, got %v", clause.Params[0].Bounds)
	}
	if len(clause.Where) != 0 {
		t.Errorf("passthrough must not add where-clauses, got %v", clause.Where)
	}
}
