package errors

import (
	"fmt"

	"github.com/quill-lang/quill/internal/derive/ast"
)

// Derive synthesis error codes (DRV600-699)
const (
	// ErrMalformedMetadata indicates an attribute entry with invalid shape
	ErrMalformedMetadata ErrorCode = "DRV601"
	// ErrUnsupportedShape indicates a declaration that is not a named-field record
	ErrUnsupportedShape ErrorCode = "DRV602"
	// ErrUnsupportedAttributeTarget indicates an attribute applied to an
	// incompatible field type
	ErrUnsupportedAttributeTarget ErrorCode = "DRV603"
	// ErrUnknownTarget indicates a derive target the engine does not implement
	ErrUnknownTarget ErrorCode = "DRV604"
)

// NewMalformedMetadata creates a DRV601 error for an attribute entry whose
// shape does not match the metadata grammar (flag | key = "string").
func NewMalformedMetadata(loc ast.SourceLocation, attr, detail string) *DeriveError {
	return newError(
		ErrMalformedMetadata,
		"malformed_metadata",
		fmt.Sprintf("Malformed @%s attribute: %s", attr, detail),
		loc,
	).WithSuggestion(fmt.Sprintf("Attribute entries must be `flag` or `key = \"value\"`, e.g. @%s(each = \"arg\")", attr))
}

// NewUnsupportedShape creates a DRV602 error for a declaration that is not a
// plain record with named fields.
func NewUnsupportedShape(loc ast.SourceLocation, name string) *DeriveError {
	return newError(
		ErrUnsupportedShape,
		"unsupported_shape",
		fmt.Sprintf("Cannot derive for '%s': only records with named fields are supported", name),
		loc,
	).WithSuggestion("Declare the type as a record with named fields, or remove the derive attribute")
}

// NewUnsupportedAttributeTarget creates a DRV603 error for an `each`
// attribute on a field whose type is not a single-element List.
func NewUnsupportedAttributeTarget(loc ast.SourceLocation, field, typ string) *DeriveError {
	return newError(
		ErrUnsupportedAttributeTarget,
		"unsupported_attribute_target",
		fmt.Sprintf("Field '%s' has type %s, but `each` requires a List[...] field", field, typ),
		loc,
	).WithSuggestion("Apply `each` only to List-typed fields, or drop the attribute")
}

// NewUnknownTarget creates a DRV604 error for a derive target the engine
// does not implement.
func NewUnknownTarget(loc ast.SourceLocation, target string) *DeriveError {
	return newError(
		ErrUnknownTarget,
		"unknown_target",
		fmt.Sprintf("Unknown derive target '%s'", target),
		loc,
	).WithSuggestion("Supported targets are `builder` and `debug`")
}
