// Package search narrows entry lists by free text and by facet.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/facet"
)

// ByText keeps entries whose name, any label, or any code point reference
// contains query, ignoring case. An empty query keeps every entry.
func ByText(entries []charset.Entry, query string) []charset.Entry {
	if query == "" {
		return entries
	}
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]charset.Entry, 0)
	for _, e := range entries {
		if matches(fold, e, needle) {
			out = append(out, e)
		}
	}
	return out
}

func matches(fold cases.Caser, e charset.Entry, needle string) bool {
	if strings.Contains(fold.String(e.Name), needle) {
		return true
	}
	for _, label := range e.Labels {
		if strings.Contains(fold.String(label), needle) {
			return true
		}
	}
	for _, cp := range e.CodePoints {
		if strings.Contains(fold.String(string(cp)), needle) {
			return true
		}
	}
	return false
}

// ByFacet keeps entries labelled with f's name. A nil facet keeps every entry.
func ByFacet(entries []charset.Entry, f *facet.Facet) []charset.Entry {
	if f == nil {
		return entries
	}
	out := make([]charset.Entry, 0)
	for _, e := range entries {
		if e.HasLabel(f.Name) {
			out = append(out, e)
		}
	}
	return out
}
