package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/facet"
	"github.com/f3rmion/symbols/internal/recent"
	"github.com/f3rmion/symbols/internal/storage"
)

var set = []charset.Entry{
	{ID: "U+2669", Name: "Quarter note", CodePoints: []charset.CodePoint{"U+2669"}, Labels: []string{"Music"}},
	{ID: "U+266F", Name: "Music sharp sign", CodePoints: []charset.CodePoint{"U+266F"}, Labels: []string{"Music"}},
	{ID: "U+20AC", Name: "Euro sign", CodePoints: []charset.CodePoint{"U+20AC"}, Labels: []string{"Currency"}},
	{ID: "U+00A3", Name: "Pound sign", CodePoints: []charset.CodePoint{"U+00A3"}, Labels: []string{"Currency", "Latin-1"}},
	{ID: "gap", CodePoints: []charset.CodePoint{"U+2003"}},
}

func ids(entries []charset.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func facetNames(facets []facet.Facet) []string {
	out := make([]string, len(facets))
	for i, f := range facets {
		out[i] = f.Name
	}
	return out
}

func newTracker() *recent.Tracker {
	return recent.New(storage.NewMemory(), recent.Key("test"))
}

func TestNew_StartTab(t *testing.T) {
	tr := newTracker()
	s := New(set, tr, facet.ByName)
	assert.Equal(t, TabAll, s.Tab())
	assert.Len(t, s.Displayed(), len(set))

	tr.MarkUsed(set[2])
	s = New(set, tr, facet.ByName)
	assert.Equal(t, TabRecent, s.Tab())
	assert.Equal(t, []string{"U+20AC"}, ids(s.Displayed()))
	assert.Equal(t, []string{"Currency"}, facetNames(s.Facets()))
}

func TestSession_NilTracker(t *testing.T) {
	s := New(set, nil, facet.ByName)
	assert.Equal(t, TabAll, s.Tab())

	require.True(t, s.Select(set[0]))
	text, ok := s.Confirm()
	assert.True(t, ok)
	assert.Equal(t, "♩", text)
}

func TestSession_QuerySwitchesTabs(t *testing.T) {
	s := New(set, newTracker(), facet.ByName)

	require.True(t, s.SelectFacet("Music"))
	s.SetQuery("sign")
	assert.Equal(t, TabSearch, s.Tab())
	_, active := s.ActiveFacet()
	assert.False(t, active)
	assert.Equal(t, []string{"U+266F", "U+20AC", "U+00A3"}, ids(s.Displayed()))
	assert.Equal(t, `3 results for "sign"`, s.Counter())

	s.SetQuery("")
	assert.Equal(t, TabAll, s.Tab())
	assert.Equal(t, "5 symbols", s.Counter())
}

func TestSession_SearchFacetsRestricted(t *testing.T) {
	s := New(set, newTracker(), facet.ByName)
	assert.Equal(t, []string{"Currency", "Latin-1", "Music"}, facetNames(s.Facets()))

	s.SetQuery("euro")
	facets := s.Facets()
	assert.Equal(t, []string{"Currency"}, facetNames(facets))
	// Counts come from the full set.
	assert.Equal(t, 2, facets[0].Count)

	assert.False(t, s.SelectFacet("Music"))
	require.True(t, s.SelectFacet("Currency"))
	assert.Equal(t, []string{"U+20AC"}, ids(s.Displayed()))
}

func TestSession_TabSwitchResetsFacet(t *testing.T) {
	tr := newTracker()
	tr.MarkUsed(set[0])
	s := New(set, tr, facet.ByName)

	s.SetTab(TabAll)
	require.True(t, s.SelectFacet("Currency"))
	assert.Equal(t, []string{"U+20AC", "U+00A3"}, ids(s.Displayed()))

	s.SetTab(TabRecent)
	_, active := s.ActiveFacet()
	assert.False(t, active)
	assert.Equal(t, []string{"U+2669"}, ids(s.Displayed()))

	s.SetTab(TabAll)
	require.True(t, s.SelectFacet("Latin-1"))
	s.ClearFacet()
	assert.Len(t, s.Displayed(), len(set))
}

func TestSession_SortOrder(t *testing.T) {
	s := New(set, newTracker(), facet.ByRange)
	assert.Equal(t, []string{"Currency", "Latin-1", "Music"}, facetNames(s.Facets()))

	s.SetSortOrder(facet.ByName)
	assert.Equal(t, facet.ByName, s.Order())
	assert.Equal(t, []string{"Currency", "Latin-1", "Music"}, facetNames(s.Facets()))
}

func TestSession_ConfirmMarksUsed(t *testing.T) {
	tr := newTracker()
	s := New(set, tr, facet.ByName)

	_, ok := s.Confirm()
	assert.False(t, ok)

	assert.False(t, s.Select(set[4]))
	_, ok = s.Selected()
	assert.False(t, ok)

	require.True(t, s.Select(set[3]))
	text, ok := s.Confirm()
	require.True(t, ok)
	assert.Equal(t, "£", text)
	assert.Equal(t, []string{"U+00A3"}, ids(tr.Recent()))

	s.RefreshRecent()
	s.SetTab(TabRecent)
	assert.Equal(t, []string{"U+00A3"}, ids(s.Displayed()))
}

func TestSession_EmptyMessages(t *testing.T) {
	s := New(set, newTracker(), facet.ByName)

	s.SetTab(TabRecent)
	assert.Empty(t, s.Displayed())
	assert.Equal(t, "0 symbols", s.Counter())
	assert.Equal(t, "Nothing here yet...", s.EmptyTitle())
	assert.Contains(t, s.EmptyMessage(), "recently used symbols")

	s.SetQuery("zzz")
	assert.Empty(t, s.Displayed())
	assert.Equal(t, "No symbols found", s.EmptyTitle())
	assert.Contains(t, s.EmptyMessage(), `"zzz"`)
}

func TestTab_String(t *testing.T) {
	assert.Equal(t, "All symbols", TabAll.String())
	assert.Equal(t, "Recently used", TabRecent.String())
	assert.Equal(t, "Search results", TabSearch.String())
}
