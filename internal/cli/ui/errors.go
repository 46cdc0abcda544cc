// Package ui renders derive errors for terminal users.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/quill-lang/quill/internal/derive/errors"
)

// FormatDeriveError renders a structured derive error for the terminal,
// with the code, location, message, and fix suggestion.
//
// Example output:
//
//	❌ DRV603: Field 'args' has type String, but `each` requires a List[...] field
//	   at descriptor.json:4:12
//
//	   → Apply `each` only to List-typed fields, or drop the attribute
func FormatDeriveError(err *errors.DeriveError, noColor bool) string {
	headerColor := color.New(color.FgRed, color.Bold)
	bodyColor := color.New(color.FgRed)
	hintColor := color.New(color.FgCyan)
	if noColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
		hintColor.DisableColor()
	}

	var b strings.Builder
	headerColor.Fprintf(&b, "❌ %s: %s\n", err.Code, err.Message)

	where := fmt.Sprintf("%d:%d", err.Location.Line, err.Location.Column)
	if err.File != "" {
		where = err.File + ":" + where
	}
	bodyColor.Fprintf(&b, "   at %s\n", where)

	if err.Suggestion != "" {
		b.WriteString("\n")
		hintColor.Fprintf(&b, "   → %s\n", err.Suggestion)
	}

	return b.String()
}
