// Package attr parses inert derive attributes into structured configuration.
// The grammar is a small closed one: a comma-separated list of entries where
// each entry is either a bare flag or `identifier = "string-literal"`.
// Recognized keys are extracted into typed configs; unrecognized keys pass
// through untouched for forward compatibility.
package attr

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/quill-lang/quill/internal/derive/ast"
	"github.com/quill-lang/quill/internal/derive/errors"
)

// Recognized attribute tags and keys.
const (
	TagBuilder = "builder"
	TagDebug   = "debug"

	KeyEach   = "each"
	KeyFormat = "format"
	KeyBound  = "bound"
)

// Entry is one parsed attribute entry: a bare flag or a key/value pair.
type Entry struct {
	Key      string
	Value    string
	HasValue bool
	Loc      ast.SourceLocation
}

// FieldConfig holds the per-field configuration extracted from a field's
// attributes.
type FieldConfig struct {
	// Each is the element-at-a-time builder method name from
	// @builder(each = "name"); empty when absent.
	Each    string
	EachLoc ast.SourceLocation

	// Format is the custom format template from @debug(format = "...");
	// empty when absent.
	Format    string
	FormatLoc ast.SourceLocation
}

// HasEach reports whether the field carries an `each` annotation.
func (c *FieldConfig) HasEach() bool { return c.Each != "" }

// HasFormat reports whether the field carries a `format` annotation.
func (c *FieldConfig) HasFormat() bool { return c.Format != "" }

// RecordConfig holds the record-level configuration extracted from the
// record's attributes.
type RecordConfig struct {
	// Bounds is the ordered list of escape-hatch clauses from repeated
	// @debug(bound = "...") entries. Duplicates are kept; their presence
	// disables automatic bound inference entirely.
	Bounds []string
}

// HasEscapeHatch reports whether any bound escape hatch was supplied.
func (c *RecordConfig) HasEscapeHatch() bool { return len(c.Bounds) > 0 }

// ParseFieldConfig extracts the recognized keys from a field's attributes.
func ParseFieldConfig(field *ast.Field) (*FieldConfig, *errors.DeriveError) {
	cfg := &FieldConfig{}
	for _, attr := range field.Attrs {
		if attr.Name != TagBuilder && attr.Name != TagDebug {
			continue
		}
		entries, err := ParseEntries(attr)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			switch {
			case attr.Name == TagBuilder && entry.Key == KeyEach:
				if !entry.HasValue {
					return nil, errors.NewMalformedMetadata(entry.Loc, attr.Name, "`each` requires a string value")
				}
				cfg.Each = entry.Value
				cfg.EachLoc = entry.Loc
			case attr.Name == TagDebug && entry.Key == KeyFormat:
				if !entry.HasValue {
					return nil, errors.NewMalformedMetadata(entry.Loc, attr.Name, "`format` requires a string value")
				}
				if n := countSlots(entry.Value); n != 1 {
					return nil, errors.NewMalformedMetadata(entry.Loc, attr.Name,
						fmt.Sprintf("format template must contain exactly one substitution slot, found %d", n))
				}
				cfg.Format = entry.Value
				cfg.FormatLoc = entry.Loc
			}
			// Unrecognized keys are deliberately ignored.
		}
	}
	return cfg, nil
}

// ParseRecordConfig extracts the recognized record-level keys from a
// record's attributes. Multiple `bound` entries accumulate in source order.
func ParseRecordConfig(record *ast.Record) (*RecordConfig, *errors.DeriveError) {
	cfg := &RecordConfig{}
	for _, attr := range record.Attrs {
		if attr.Name != TagDebug {
			continue
		}
		entries, err := ParseEntries(attr)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Key != KeyBound {
				continue
			}
			if !entry.HasValue {
				return nil, errors.NewMalformedMetadata(entry.Loc, attr.Name, "`bound` requires a string value")
			}
			cfg.Bounds = append(cfg.Bounds, entry.Value)
		}
	}
	return cfg, nil
}

// countSlots counts substitution slots in a format template. A slot is a
// `{...}` group; doubled braces escape a literal brace.
func countSlots(template string) int {
	count := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '{' {
			continue
		}
		if i+1 < len(template) && template[i+1] == '{' {
			i++ // literal brace
			continue
		}
		if end := strings.IndexByte(template[i:], '}'); end >= 0 {
			count++
			i += end
		}
	}
	return count
}

// scanner walks an attribute's raw argument text. Locations are reported
// relative to the attribute's own location so the host can point at the
// offending entry.
//
// Thread Safety: scanner instances are NOT thread-safe; one is created per
// attribute inside ParseEntries.
type scanner struct {
	attr    *ast.Attribute
	source  string
	current int
}

// ParseEntries parses the raw argument text of one attribute into entries.
// Structurally invalid entries (wrong literal kind, missing `=` value) are
// reported as malformed metadata; the key vocabulary is not validated here.
func ParseEntries(attr *ast.Attribute) ([]Entry, *errors.DeriveError) {
	s := &scanner{attr: attr, source: attr.Args}
	entries := make([]Entry, 0, 2)

	s.skipSpaces()
	for !s.isAtEnd() {
		entry, err := s.scanEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)

		s.skipSpaces()
		if s.isAtEnd() {
			break
		}
		if s.peek() != ',' {
			return nil, s.malformed("expected ',' between entries, found %q", s.peek())
		}
		s.advance()
		s.skipSpaces()
		if s.isAtEnd() {
			return nil, s.malformed("trailing ',' without an entry")
		}
	}

	return entries, nil
}

// scanEntry parses one `flag` or `key = "value"` entry.
func (s *scanner) scanEntry() (Entry, *errors.DeriveError) {
	loc := s.location()

	if !isIdentStart(s.peek()) {
		return Entry{}, s.malformed("expected identifier, found %q", s.peek())
	}
	key := s.scanIdent()

	s.skipSpaces()
	if s.isAtEnd() || s.peek() == ',' {
		// Bare flag entry.
		return Entry{Key: key, Loc: loc}, nil
	}

	if s.peek() != '=' {
		return Entry{}, s.malformed("expected '=' or ',' after %q, found %q", key, s.peek())
	}
	s.advance()
	s.skipSpaces()

	if s.isAtEnd() {
		return Entry{}, s.malformed("missing value after %q =", key)
	}
	if s.peek() != '"' {
		// Wrong literal kind: numbers, bare identifiers, and anything else
		// are structural errors, not extension points.
		return Entry{}, s.malformed("value for %q must be a string literal", key)
	}

	value, err := s.scanString()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Key: key, Value: value, HasValue: true, Loc: loc}, nil
}

// scanString consumes a double-quoted string literal with backslash escapes.
func (s *scanner) scanString() (string, *errors.DeriveError) {
	s.advance() // opening quote
	var b strings.Builder
	for !s.isAtEnd() {
		c := s.advance()
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if s.isAtEnd() {
				return "", s.malformed("unterminated escape in string literal")
			}
			esc := s.advance()
			switch esc {
			case '"', '\\':
				b.WriteByte(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return "", s.malformed("unknown escape '\\%c' in string literal", esc)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", s.malformed("unterminated string literal")
}

func (s *scanner) scanIdent() string {
	start := s.current
	for !s.isAtEnd() && isIdentPart(s.peek()) {
		s.advance()
	}
	return s.source[start:s.current]
}

func (s *scanner) skipSpaces() {
	for !s.isAtEnd() && (s.peek() == ' ' || s.peek() == '\t') {
		s.advance()
	}
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

// location reports the current scan position relative to the attribute's
// source location. Attribute argument text never spans lines.
func (s *scanner) location() ast.SourceLocation {
	return ast.SourceLocation{
		Line:   s.attr.Loc.Line,
		Column: s.attr.Loc.Column + s.current,
	}
}

func (s *scanner) malformed(format string, args ...interface{}) *errors.DeriveError {
	return errors.NewMalformedMetadata(s.location(), s.attr.Name, fmt.Sprintf(format, args...))
}

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || unicode.IsDigit(rune(c))
}
