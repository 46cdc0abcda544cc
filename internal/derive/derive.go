// Package derive is the attribute-driven synthesis engine of the Quill
// compiler. Given the parsed structural description of one record
// declaration, it emits Quill source implementing a derive target: a fluent
// builder companion or a structured Show (debug) impl, with capability
// bounds inferred from how each generic parameter is used in field types.
//
// A synthesis run is a pure function from one record to one artifact or
// error: no I/O, no shared state, safe to run concurrently across records.
package derive

import (
	"github.com/quill-lang/quill/internal/derive/ast"
	"github.com/quill-lang/quill/internal/derive/attr"
	"github.com/quill-lang/quill/internal/derive/bounds"
	"github.com/quill-lang/quill/internal/derive/codegen"
	"github.com/quill-lang/quill/internal/derive/errors"
	"github.com/quill-lang/quill/internal/derive/meta"
	"github.com/quill-lang/quill/internal/derive/usage"
)

// Target selects which implementation a derive run synthesizes.
type Target string

const (
	// TargetBuilder derives the fluent builder companion
	TargetBuilder Target = "builder"
	// TargetDebug derives the structured Show impl
	TargetDebug Target = "debug"
)

// Artifact is the complete result of one synthesis run: the generated Quill
// source and its introspection metadata. There is no partial success; an
// artifact is only produced when every stage succeeded.
type Artifact struct {
	Code string
	Meta *meta.Synthesis
}

// Expand synthesizes the implementation for one record and target. Errors
// are *errors.DeriveError values pointing at the originating syntax.
func Expand(record *ast.Record, target Target) (*Artifact, error) {
	var clause *bounds.Clause
	var out *codegen.Output
	var derr *errors.DeriveError

	switch target {
	case TargetBuilder:
		// The builder adds no capability of its own; the record's declared
		// clause passes through unchanged.
		clause = bounds.Passthrough(record)
		out, derr = codegen.GenerateBuilder(record, clause)

	case TargetDebug:
		cfg, err := attr.ParseRecordConfig(record)
		if err != nil {
			return nil, err
		}
		facts := usage.Analyze(record)
		clause = bounds.Infer(record, facts, cfg)
		out, derr = codegen.GenerateDebug(record, clause)

	default:
		return nil, errors.NewUnknownTarget(record.Loc, string(target))
	}

	if derr != nil {
		return nil, derr
	}

	methods := make([]meta.MethodMetadata, 0, len(out.Methods))
	for _, m := range out.Methods {
		methods = append(methods, meta.MethodMetadata{Name: m.Name, Kind: m.Kind})
	}

	return &Artifact{
		Code: out.Code,
		Meta: meta.Extract(record, string(target), clause, methods),
	}, nil
}
