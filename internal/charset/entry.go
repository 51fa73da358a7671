// Package charset holds character set entries and the store that loads them.
package charset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// codePointPrefix starts every code point reference.
const codePointPrefix = "U+"

// CodePoint is a textual code point reference such as "U+2669".
type CodePoint string

// Value parses the hex digits after the prefix into a rune.
func (c CodePoint) Value() (rune, error) {
	s := string(c)
	if !strings.HasPrefix(s, codePointPrefix) {
		return 0, fmt.Errorf("code point %q: missing %s prefix", s, codePointPrefix)
	}
	digits := s[len(codePointPrefix):]
	if digits == "" {
		return 0, fmt.Errorf("code point %q: no hex digits", s)
	}
	for _, r := range digits {
		// Lowercase hex is rejected; the resource format is uppercase only.
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			return 0, fmt.Errorf("code point %q: invalid hex digit %q", s, r)
		}
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("code point %q: %w", s, err)
	}
	r := rune(n)
	if n > utf8.MaxRune || !utf8.ValidRune(r) {
		return 0, fmt.Errorf("code point %q: not a Unicode scalar value", s)
	}
	return r, nil
}

// Entry represents one insertable character (or sequence) in a set.
type Entry struct {
	ID         string      `json:"id"`               // Stable identifier, never regenerated
	CodePoints []CodePoint `json:"codePoints"`       // Inserted in this order
	Name       string      `json:"name,omitempty"`   // Display name; empty means placeholder
	Labels     []string    `json:"labels,omitempty"` // Facet names
}

// Selectable reports whether the entry can be picked. Entries without a
// name are decorative placeholders in the grid.
func (e Entry) Selectable() bool {
	return e.Name != ""
}

// HasLabel reports whether the entry carries the given label.
func (e Entry) HasLabel(name string) bool {
	for _, label := range e.Labels {
		if label == name {
			return true
		}
	}
	return false
}

// Values returns the parsed code points, skipping any that do not parse.
func (e Entry) Values() []rune {
	values := make([]rune, 0, len(e.CodePoints))
	for _, cp := range e.CodePoints {
		if r, err := cp.Value(); err == nil {
			values = append(values, r)
		}
	}
	return values
}

// Text returns the string inserted into the document for this entry.
func (e Entry) Text() string {
	var b strings.Builder
	for _, r := range e.Values() {
		b.WriteRune(r)
	}
	return b.String()
}

// Validate checks the entry against the resource schema.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return &MalformedEntryError{Index: -1, ID: e.ID, Reason: "missing id"}
	}
	if len(e.CodePoints) == 0 {
		return &MalformedEntryError{Index: -1, ID: e.ID, Reason: "no code points"}
	}
	for _, cp := range e.CodePoints {
		if _, err := cp.Value(); err != nil {
			return &MalformedEntryError{Index: -1, ID: e.ID, Reason: err.Error()}
		}
	}
	return nil
}

// FormatCodePoints joins the code point references for display.
func (e Entry) FormatCodePoints() string {
	parts := make([]string, len(e.CodePoints))
	for i, cp := range e.CodePoints {
		parts[i] = string(cp)
	}
	return strings.Join(parts, ", ")
}
