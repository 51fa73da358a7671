// Package picker holds the state of the symbol picker modal independently of
// how it is drawn.
package picker

import (
	"fmt"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/facet"
	"github.com/f3rmion/symbols/internal/search"
)

// recentShown caps how many recent entries the modal lists.
const recentShown = 50

// Tab is one of the modal's entry populations.
type Tab int

const (
	TabAll Tab = iota
	TabRecent
	TabSearch
)

func (t Tab) String() string {
	switch t {
	case TabRecent:
		return "Recently used"
	case TabSearch:
		return "Search results"
	default:
		return "All symbols"
	}
}

// RecentSource is the part of the recent-use tracker the session needs.
type RecentSource interface {
	Recent() []charset.Entry
	MarkUsed(entry charset.Entry)
}

// Session is the picker's state: which tab is active, the search query, the
// active facet and the selected entry.
type Session struct {
	all       []charset.Entry
	allFacets []facet.Facet

	tracker      RecentSource
	recent       []charset.Entry
	recentFacets []facet.Facet

	order    facet.SortOrder
	tab      Tab
	query    string
	active   string // facet name, empty when none
	selected *charset.Entry
}

// New creates a session over set. It opens on the recent tab when anything
// has been used before, otherwise on the full set.
func New(set []charset.Entry, tracker RecentSource, order facet.SortOrder) *Session {
	s := &Session{
		all:       set,
		allFacets: facet.Index(set, order),
		tracker:   tracker,
		order:     order,
		tab:       TabAll,
	}
	s.RefreshRecent()
	if len(s.recent) > 0 {
		s.tab = TabRecent
	}
	return s
}

// RefreshRecent reloads the recent list from the tracker.
func (s *Session) RefreshRecent() {
	var recent []charset.Entry
	if s.tracker != nil {
		recent = s.tracker.Recent()
	}
	if len(recent) > recentShown {
		recent = recent[:recentShown]
	}
	s.recent = recent
	s.recentFacets = facet.Index(recent, s.order)
	if s.tab == TabRecent && s.active != "" {
		if _, ok := facet.Find(s.recentFacets, s.active); !ok {
			s.active = ""
		}
	}
}

// Tab returns the active tab.
func (s *Session) Tab() Tab { return s.tab }

// Query returns the current search text.
func (s *Session) Query() string { return s.query }

// Order returns the facet sort order.
func (s *Session) Order() facet.SortOrder { return s.order }

// SetTab switches population and clears the active facet.
func (s *Session) SetTab(tab Tab) {
	s.tab = tab
	s.active = ""
}

// SetQuery updates the search text. A non-empty query shows search results,
// an empty one returns to the full set. The active facet is cleared.
func (s *Session) SetQuery(q string) {
	s.query = q
	if q != "" {
		s.tab = TabSearch
	} else {
		s.tab = TabAll
	}
	s.active = ""
}

// SetSortOrder re-sorts the facet lists.
func (s *Session) SetSortOrder(order facet.SortOrder) {
	s.order = order
	facet.Sort(s.allFacets, order)
	facet.Sort(s.recentFacets, order)
}

// SelectFacet narrows the displayed entries to one facet of the current tab.
// It reports false, leaving the filter unchanged, for an unknown facet.
func (s *Session) SelectFacet(name string) bool {
	if _, ok := facet.Find(s.Facets(), name); !ok {
		return false
	}
	s.active = name
	return true
}

// ClearFacet removes the facet filter.
func (s *Session) ClearFacet() {
	s.active = ""
}

// ActiveFacet returns the facet currently filtering the list.
func (s *Session) ActiveFacet() (facet.Facet, bool) {
	if s.active == "" {
		return facet.Facet{}, false
	}
	return facet.Find(s.Facets(), s.active)
}

func (s *Session) base() []charset.Entry {
	switch s.tab {
	case TabRecent:
		return s.recent
	case TabSearch:
		return search.ByText(s.all, s.query)
	default:
		return s.all
	}
}

// Displayed returns the entries of the current tab after facet filtering.
func (s *Session) Displayed() []charset.Entry {
	entries := s.base()
	if f, ok := s.ActiveFacet(); ok {
		return search.ByFacet(entries, &f)
	}
	return entries
}

// Facets returns the facets offered on the current tab. Search results offer
// the full set's facets that occur among the results.
func (s *Session) Facets() []facet.Facet {
	switch s.tab {
	case TabRecent:
		return s.recentFacets
	case TabSearch:
		return facet.Restrict(s.allFacets, search.ByText(s.all, s.query))
	default:
		return s.allFacets
	}
}

// Select marks entry as the current choice. Placeholders cannot be selected.
func (s *Session) Select(entry charset.Entry) bool {
	if !entry.Selectable() {
		return false
	}
	s.selected = &entry
	return true
}

// Selected returns the current choice.
func (s *Session) Selected() (charset.Entry, bool) {
	if s.selected == nil {
		return charset.Entry{}, false
	}
	return *s.selected, true
}

// Confirm records the selected entry as recently used and returns the text
// to insert.
func (s *Session) Confirm() (string, bool) {
	entry, ok := s.Selected()
	if !ok {
		return "", false
	}
	if s.tracker != nil {
		s.tracker.MarkUsed(entry)
	}
	return entry.Text(), true
}

// Counter describes the number of displayed entries.
func (s *Session) Counter() string {
	n := len(s.Displayed())
	if s.tab == TabSearch {
		return fmt.Sprintf("%d results for %q", n, s.query)
	}
	return fmt.Sprintf("%d symbols", n)
}

// EmptyTitle is the heading shown when nothing is displayed.
func (s *Session) EmptyTitle() string {
	if s.tab == TabRecent {
		return "Nothing here yet..."
	}
	return "No symbols found"
}

// EmptyMessage explains why nothing is displayed.
func (s *Session) EmptyMessage() string {
	if s.tab == TabRecent {
		return `We can't find any recently used symbols. Click on the "All" tab or search for a symbol.`
	}
	return fmt.Sprintf("We can't find any symbols with %q in their name or codepoint. Please try something else.", s.query)
}
