package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/symbols/internal/charset"
)

func e(id string, labels []string, cps ...charset.CodePoint) charset.Entry {
	return charset.Entry{ID: id, Name: id, CodePoints: cps, Labels: labels}
}

var sample = []charset.Entry{
	e("quarter", []string{"Music"}, "U+2669"),
	e("euro", []string{"Currency"}, "U+20AC"),
	e("sharp", []string{"Music"}, "U+266F"),
	e("dollar", []string{"Currency", "Basic Latin"}, "U+24"),
	e("plain", nil, "U+41"),
	e("flag", []string{"Flags"}, "U+1F1F3", "U+1F1F1"),
}

func names(facets []Facet) []string {
	out := make([]string, len(facets))
	for i, f := range facets {
		out[i] = f.Name
	}
	return out
}

func TestIndex_ByName(t *testing.T) {
	facets := Index(sample, ByName)

	assert.Equal(t, []Facet{
		{Name: "Basic Latin", Count: 1, RangeStart: 0x24, RangeEnd: 0x24},
		{Name: "Currency", Count: 2, RangeStart: 0x24, RangeEnd: 0x20AC},
		{Name: "Flags", Count: 1, RangeStart: 0x1F1F1, RangeEnd: 0x1F1F3},
		{Name: "Music", Count: 2, RangeStart: 0x2669, RangeEnd: 0x266F},
	}, facets)
}

func TestIndex_ByRangeStable(t *testing.T) {
	facets := Index(sample, ByRange)
	// Currency and Basic Latin both start at U+24; Currency was seen first.
	assert.Equal(t, []string{"Currency", "Basic Latin", "Music", "Flags"}, names(facets))
}

func TestIndex_CountsMatchEntries(t *testing.T) {
	for _, f := range Index(sample, ByName) {
		n := 0
		for _, entry := range sample {
			if entry.HasLabel(f.Name) {
				n++
			}
		}
		assert.Equal(t, n, f.Count, f.Name)
		assert.LessOrEqual(t, f.RangeStart, f.RangeEnd, f.Name)
	}
}

func TestIndex_Empty(t *testing.T) {
	assert.Empty(t, Index(nil, ByName))
	assert.Empty(t, Index([]charset.Entry{e("x", nil, "U+41")}, ByRange))
}

func TestIndex_SkipsUnparseable(t *testing.T) {
	facets := Index([]charset.Entry{
		e("good", []string{"Mixed"}, "U+100"),
		e("bad", []string{"Mixed"}, "garbage", "U+50"),
		e("worse", []string{"Broken"}, "garbage"),
	}, ByName)

	require.Len(t, facets, 2)
	assert.Equal(t, Facet{Name: "Broken", Count: 1}, facets[0])
	assert.Equal(t, Facet{Name: "Mixed", Count: 2, RangeStart: 0x50, RangeEnd: 0x100}, facets[1])
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"name", ByName, false},
		{"", ByName, false},
		{"Range", ByRange, false},
		{" range ", ByRange, false},
		{"size", ByName, true},
	}
	for _, tt := range tests {
		got, err := ParseSortOrder(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) SortOrder {
	t.Helper()
	o, err := ParseSortOrder(s)
	require.NoError(t, err)
	return o
}

func TestRestrict(t *testing.T) {
	all := Index(sample, ByRange)
	results := []charset.Entry{sample[1], sample[5]} // euro, flag

	assert.Equal(t, []string{"Currency", "Flags"}, names(Restrict(all, results)))
	assert.Empty(t, Restrict(all, nil))
}

func TestFind(t *testing.T) {
	facets := Index(sample, ByName)
	f, ok := Find(facets, "Music")
	require.True(t, ok)
	assert.Equal(t, 2, f.Count)

	_, ok = Find(facets, "music")
	assert.False(t, ok)
}

func TestFacet_FormatRange(t *testing.T) {
	assert.Equal(t, "U+0024", Facet{RangeStart: 0x24, RangeEnd: 0x24}.FormatRange())
	assert.Equal(t, "U+2669-U+266F", Facet{RangeStart: 0x2669, RangeEnd: 0x266F}.FormatRange())
}
