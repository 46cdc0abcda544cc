// Package meta produces machine-readable metadata about one synthesis run:
// which record was expanded, which operations were emitted, and which bounds
// were inferred. Hosts use it for introspection and change detection.
package meta

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/quill-lang/quill/internal/derive/ast"
	"github.com/quill-lang/quill/internal/derive/bounds"
)

// Synthesis describes one completed synthesis invocation
type Synthesis struct {
	// ArtifactID uniquely identifies this artifact for host correlation
	ArtifactID string `json:"artifact_id"`
	// Record is the name of the expanded record
	Record string `json:"record"`
	// Target is the derive target ("builder" or "debug")
	Target string `json:"target"`
	// SourceHash is a hash of the record's structural signature for
	// change detection
	SourceHash string `json:"source_hash"`
	// Params holds the generic parameters with their final bound lists
	Params []ParamMetadata `json:"params,omitempty"`
	// Where holds the where-clause predicates attached to the impl
	Where []string `json:"where,omitempty"`
	// Methods lists the operations emitted into the artifact
	Methods []MethodMetadata `json:"methods"`
}

// ParamMetadata describes one generic parameter after inference
type ParamMetadata struct {
	Name   string   `json:"name"`
	Bounds []string `json:"bounds,omitempty"`
}

// MethodMetadata describes one emitted operation
type MethodMetadata struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // builder, setter, each, build, show
}

// Extract assembles synthesis metadata from the expanded record, the final
// clause, and the emitted operations.
func Extract(record *ast.Record, target string, clause *bounds.Clause, methods []MethodMetadata) *Synthesis {
	s := &Synthesis{
		ArtifactID: uuid.NewString(),
		Record:     record.Name,
		Target:     target,
		SourceHash: sourceHash(record),
		Where:      clause.Where,
		Methods:    methods,
	}
	for _, p := range clause.Params {
		s.Params = append(s.Params, ParamMetadata{Name: p.Name, Bounds: p.Bounds})
	}
	return s
}

// sourceHash computes a hash of the record's structural signature. Fields,
// parameters, and attributes are hashed in declaration order, so the hash
// is deterministic for a given declaration.
func sourceHash(record *ast.Record) string {
	h := sha256.New()
	h.Write([]byte(record.Name))
	h.Write([]byte(fmt.Sprintf("%d", record.Kind)))

	for _, p := range record.Params {
		h.Write([]byte(p.Name))
	}
	for _, f := range record.Fields {
		h.Write([]byte(f.Name))
		if f.Type != nil {
			h.Write([]byte(f.Type.String()))
		}
		for _, a := range f.Attrs {
			h.Write([]byte(a.Name))
			h.Write([]byte(a.Args))
		}
	}
	for _, a := range record.Attrs {
		h.Write([]byte(a.Name))
		h.Write([]byte(a.Args))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Serialize converts synthesis metadata to indented JSON. Apart from the
// artifact ID, the output is deterministic for the same input.
func Serialize(s *Synthesis) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("synthesis metadata cannot be nil")
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize synthesis metadata: %w", err)
	}
	return data, nil
}
