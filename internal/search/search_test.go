package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/facet"
)

var entries = []charset.Entry{
	{ID: "U+2669", Name: "Quarter note", CodePoints: []charset.CodePoint{"U+2669"}, Labels: []string{"Unicode miscellaneous symbols"}},
	{ID: "U+20AC", Name: "Euro sign", CodePoints: []charset.CodePoint{"U+20AC"}, Labels: []string{"Currency"}},
	{ID: "U+00DF", Name: "Latin small letter sharp S", CodePoints: []charset.CodePoint{"U+00DF"}, Labels: []string{"Latin-1 Supplement"}},
	{ID: "U+03A3", Name: "GREEK CAPITAL LETTER SIGMA", CodePoints: []charset.CodePoint{"U+03A3"}, Labels: []string{"Greek"}},
	{ID: "spacer", CodePoints: []charset.CodePoint{"U+2003"}},
}

func ids(list []charset.Entry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}

func TestByText(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name", "note", []string{"U+2669"}},
		{"case_insensitive", "EURO", []string{"U+20AC"}},
		{"label", "currency", []string{"U+20AC"}},
		{"code_point", "u+2669", []string{"U+2669"}},
		{"code_point_partial", "20a", []string{"U+20AC"}},
		{"shared_word", "letter", []string{"U+00DF", "U+03A3"}},
		{"folded", "sigma", []string{"U+03A3"}},
		{"no_match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ByText(entries, tt.query)))
		})
	}
}

func TestByText_EmptyQueryIsIdentity(t *testing.T) {
	assert.Equal(t, entries, ByText(entries, ""))
}

func TestByText_Subset(t *testing.T) {
	got := ByText(entries, "s")
	for _, e := range got {
		assert.Contains(t, entries, e)
	}
}

func TestByFacet(t *testing.T) {
	assert.Equal(t, entries, ByFacet(entries, nil))

	f := facet.Facet{Name: "Greek"}
	assert.Equal(t, []string{"U+03A3"}, ids(ByFacet(entries, &f)))

	none := facet.Facet{Name: "Arrows"}
	assert.Empty(t, ByFacet(entries, &none))
}
