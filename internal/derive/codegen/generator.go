// Package codegen emits Quill source implementing derive targets: a fluent
// builder companion or a structured Show (debug) impl. Generators consume
// the attribute configuration and inferred generic clause; they never
// type-check what they emit.
package codegen

import (
	"bytes"
	"fmt"
)

// Generator accumulates generated Quill source with indentation tracking
type Generator struct {
	buf    *bytes.Buffer
	indent int
}

// NewGenerator creates a new code generator
func NewGenerator() *Generator {
	return &Generator{buf: &bytes.Buffer{}}
}

// writeLine writes a formatted line with proper indentation
func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}

	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("    ")
	}

	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

// String returns the accumulated source
func (g *Generator) String() string {
	return g.buf.String()
}

// Method describes one operation emitted into the artifact, for synthesis
// metadata.
type Method struct {
	Name string
	Kind string // "builder", "setter", "each", "build", "show"
}
