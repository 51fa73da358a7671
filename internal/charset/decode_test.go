package charset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quarterNoteSet = `[
  { "id": "U+2669", "name": "Quarter note", "codePoints": ["U+2669"], "labels": ["Unicode miscellaneous symbols"] },
  { "id": "U+20AC", "name": "Euro sign", "codePoints": ["U+20AC"], "labels": ["Currency"] },
  { "id": "spacer", "codePoints": ["U+2003"] }
]`

func TestDecodeEntries(t *testing.T) {
	entries, err := DecodeEntries([]byte(quarterNoteSet))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{
		ID:         "U+2669",
		Name:       "Quarter note",
		CodePoints: []CodePoint{"U+2669"},
		Labels:     []string{"Unicode miscellaneous symbols"},
	}, entries[0])
	assert.Empty(t, entries[2].Name)
	assert.Nil(t, entries[2].Labels)
}

func TestDecodeEntries_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		index int
	}{
		{"missing_code_points", `[{"id":"a","codePoints":["U+41"]},{"id":"b","name":"B"}]`, 1},
		{"empty_code_points", `[{"id":"a","codePoints":[]}]`, 0},
		{"bad_code_point", `[{"id":"a","codePoints":["U+41"]},{"id":"b","codePoints":["U+42"]},{"id":"c","codePoints":["0043"]}]`, 2},
		{"duplicate_id", `[{"id":"a","codePoints":["U+41"]},{"id":"a","codePoints":["U+42"]}]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEntries([]byte(tt.data))
			require.Error(t, err)

			var malformed *MalformedEntryError
			require.True(t, errors.As(err, &malformed), "want MalformedEntryError, got %v", err)
			assert.Equal(t, tt.index, malformed.Index)
		})
	}
}

func TestDecodeEntries_InvalidJSON(t *testing.T) {
	_, err := DecodeEntries([]byte(`{"id":"not-an-array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing character set")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.json")
	require.NoError(t, os.WriteFile(path, []byte(quarterNoteSet), 0o644))

	entries, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading character set file")
}
