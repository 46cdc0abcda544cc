package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-lang/quill/internal/derive/ast"
	"github.com/quill-lang/quill/internal/derive/errors"
)

func TestFormatDeriveError(t *testing.T) {
	derr := errors.NewUnsupportedAttributeTarget(
		ast.SourceLocation{Line: 4, Column: 12}, "args", "String",
	).WithFile("descriptor.json")

	out := FormatDeriveError(derr, true)

	assert.Contains(t, out, "DRV603")
	assert.Contains(t, out, "Field 'args'")
	assert.Contains(t, out, "at descriptor.json:4:12")
	assert.Contains(t, out, "→ Apply `each` only to List-typed fields")
}

func TestFormatDeriveError_NoSuggestion(t *testing.T) {
	derr := &errors.DeriveError{
		Code:     errors.ErrUnsupportedShape,
		Message:  "no good",
		Location: ast.SourceLocation{Line: 1, Column: 1},
	}

	out := FormatDeriveError(derr, true)

	assert.Contains(t, out, "at 1:1")
	assert.NotContains(t, out, "→")
}
