package bigchar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/f3rmion/symbols/internal/charset"
)

func goFaceRenderer(t *testing.T) *Renderer {
	t.Helper()
	face, err := ParseFace(goregular.TTF)
	require.NoError(t, err)
	return NewRenderer(face)
}

func TestRenderer_RenderShape(t *testing.T) {
	r := goFaceRenderer(t)
	out := r.Render("A", 10, 5)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 10, len([]rune(line)))
	}
	assert.True(t, strings.ContainsAny(out, "█▀▄"), "glyph should cover some cells:\n%s", out)
}

func TestRenderer_PreviewMemoizedByID(t *testing.T) {
	r := goFaceRenderer(t)
	entry := charset.Entry{ID: "U+41", Name: "Latin capital A", CodePoints: []charset.CodePoint{"U+41"}}
	before := entry

	first := r.Preview(entry, 8, 4)
	assert.NotEmpty(t, first)
	assert.Equal(t, 1, r.Memoized())

	assert.Equal(t, first, r.Preview(entry, 8, 4))
	assert.Equal(t, 1, r.Memoized())

	r.Preview(entry, 6, 3)
	assert.Equal(t, 2, r.Memoized())
	assert.Equal(t, before, entry)

	r.Forget()
	assert.Equal(t, 0, r.Memoized())
}

func TestRenderer_Unavailable(t *testing.T) {
	r := NewRenderer(nil)
	assert.False(t, r.Available())
	assert.Empty(t, r.Preview(charset.Entry{ID: "x", CodePoints: []charset.CodePoint{"U+78"}}, 4, 2))
	assert.Empty(t, r.Render("x", 4, 2))
}

func TestLoadFace_NoCandidates(t *testing.T) {
	_, err := LoadFace([]string{"/nonexistent/font.ttf"})
	assert.Error(t, err)
}
