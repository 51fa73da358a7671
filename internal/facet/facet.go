// Package facet derives label facets from a flat list of character entries.
package facet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/f3rmion/symbols/internal/charset"
)

// Facet summarizes one label: how many entries carry it and the range of
// code points those entries span.
type Facet struct {
	Name       string
	Count      int
	RangeStart rune
	RangeEnd   rune
}

// FormatRange renders the range as "U+XXXX-U+YYYY", or a single code point
// when start and end are equal.
func (f Facet) FormatRange() string {
	if f.RangeStart == f.RangeEnd {
		return fmt.Sprintf("U+%04X", f.RangeStart)
	}
	return fmt.Sprintf("U+%04X-U+%04X", f.RangeStart, f.RangeEnd)
}

// SortOrder selects how Index orders facets.
type SortOrder int

const (
	// ByName sorts facets lexicographically by label.
	ByName SortOrder = iota
	// ByRange sorts facets by ascending RangeStart; ties keep first-seen order.
	ByRange
)

func (o SortOrder) String() string {
	switch o {
	case ByRange:
		return "range"
	default:
		return "name"
	}
}

// ParseSortOrder accepts "name" or "range" (case-insensitive).
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return ByName, nil
	case "range":
		return ByRange, nil
	default:
		return ByName, fmt.Errorf("unknown sort order %q (want name or range)", s)
	}
}

// Index builds one facet per distinct label in entries. Entries without
// labels contribute nothing; code points that do not parse are ignored for
// the ranges.
func Index(entries []charset.Entry, order SortOrder) []Facet {
	facets := make([]Facet, 0)
	byName := make(map[string]int)

	for _, entry := range entries {
		if len(entry.Labels) == 0 {
			continue
		}
		values := entry.Values()
		for _, label := range entry.Labels {
			i, ok := byName[label]
			if !ok {
				i = len(facets)
				byName[label] = i
				facets = append(facets, Facet{Name: label, RangeStart: -1, RangeEnd: -1})
			}
			f := &facets[i]
			f.Count++
			for _, v := range values {
				if f.RangeStart < 0 || v < f.RangeStart {
					f.RangeStart = v
				}
				if f.RangeEnd < 0 || v > f.RangeEnd {
					f.RangeEnd = v
				}
			}
		}
	}

	// A label seen only on entries with unparseable code points has no range.
	for i := range facets {
		if facets[i].RangeStart < 0 {
			facets[i].RangeStart, facets[i].RangeEnd = 0, 0
		}
	}

	Sort(facets, order)
	return facets
}

// Sort orders facets in place.
func Sort(facets []Facet, order SortOrder) {
	switch order {
	case ByRange:
		sort.SliceStable(facets, func(i, j int) bool {
			return facets[i].RangeStart < facets[j].RangeStart
		})
	default:
		sort.SliceStable(facets, func(i, j int) bool {
			return facets[i].Name < facets[j].Name
		})
	}
}

// Restrict keeps the facets whose label occurs on at least one of entries,
// preserving their order.
func Restrict(facets []Facet, entries []charset.Entry) []Facet {
	present := make(map[string]struct{})
	for _, e := range entries {
		for _, label := range e.Labels {
			present[label] = struct{}{}
		}
	}
	out := make([]Facet, 0, len(facets))
	for _, f := range facets {
		if _, ok := present[f.Name]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Find returns the facet called name.
func Find(facets []Facet, name string) (Facet, bool) {
	for _, f := range facets {
		if f.Name == name {
			return f, true
		}
	}
	return Facet{}, false
}
