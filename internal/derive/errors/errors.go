// Package errors provides structured error handling for the Quill derive
// engine. It defines error codes, categories, and formatting for both
// human-readable terminal output and machine-parseable JSON for the host.
package errors

import (
	"encoding/json"
	"fmt"

	"github.com/quill-lang/quill/internal/derive/ast"
)

// ErrorCode represents a unique error code in the derive engine
type ErrorCode string

// ErrorCategory represents the category of derive error
type ErrorCategory string

const (
	// CategoryDerive represents derive synthesis errors (DRV600-699)
	CategoryDerive ErrorCategory = "derive"
)

// ErrorSeverity indicates the severity level of an error
type ErrorSeverity string

const (
	// SeverityError indicates an error that prevents synthesis
	SeverityError ErrorSeverity = "error"
	// SeverityWarning indicates a warning that suggests potential issues
	SeverityWarning ErrorSeverity = "warning"
)

// DeriveError represents a structured synthesis error with enough
// information for the host to report it at the originating source location.
// Synthesis is deterministic and pure, so none of these are retryable:
// either a complete artifact is produced, or one of these is returned and
// no artifact is emitted.
type DeriveError struct {
	// Code is the unique error code (e.g., "DRV601")
	Code ErrorCode `json:"code"`
	// Type is a machine-readable error type identifier
	Type string `json:"type"`
	// Category is the error category
	Category ErrorCategory `json:"category"`
	// Severity is the error severity level
	Severity ErrorSeverity `json:"severity"`
	// Message is the primary error message
	Message string `json:"message"`
	// Location is the source location of the offending syntax
	Location ast.SourceLocation `json:"location"`
	// File is the source file name (optional, set by the host adapter)
	File string `json:"file,omitempty"`
	// Suggestion provides a hint for fixing the error (optional)
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (e *DeriveError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s [%s]", e.File, e.Location.Line, e.Location.Column, e.Message, e.Code)
	}
	return fmt.Sprintf("%d:%d: %s [%s]", e.Location.Line, e.Location.Column, e.Message, e.Code)
}

// ToJSON returns the error as a JSON string for host consumption
func (e *DeriveError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithFile sets the source file name for the error
func (e *DeriveError) WithFile(file string) *DeriveError {
	e.File = file
	return e
}

// WithSuggestion sets a fix suggestion for the error
func (e *DeriveError) WithSuggestion(suggestion string) *DeriveError {
	e.Suggestion = suggestion
	return e
}

func newError(
	code ErrorCode,
	typ string,
	message string,
	loc ast.SourceLocation,
) *DeriveError {
	return &DeriveError{
		Code:     code,
		Type:     typ,
		Category: CategoryDerive,
		Severity: SeverityError,
		Message:  message,
		Location: loc,
	}
}
