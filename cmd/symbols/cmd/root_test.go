package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/symbols/internal/charset"
)

// resetFlags restores every flag to its default between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfgFile = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", dir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitAndSets(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created symbols.yaml")
	assert.FileExists(t, filepath.Join(dir, "sets", "default.json"))

	out, err = execute(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already present")

	out, err = execute(t, dir, "sets")
	require.NoError(t, err)
	assert.Contains(t, out, "* default")
	assert.Contains(t, out, "inline")
}

func TestInsertAndRecent(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "recent", "--fallback=")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing here yet")

	out, err = execute(t, dir, "insert", "--print", "U+20AC")
	require.NoError(t, err)
	assert.Equal(t, "€\n", out)

	out, err = execute(t, dir, "recent", "--fallback=")
	require.NoError(t, err)
	assert.Contains(t, out, "1 recently used on localhost (keeping 50)")
	assert.Contains(t, out, "U+20AC")

	out, err = execute(t, dir, "recent", "--fallback", "default", "--max", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "3 recently used")

	_, err = execute(t, dir, "recent", "--clear")
	require.NoError(t, err)
	out, err = execute(t, dir, "recent", "--fallback=")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing here yet")
}

func TestRecent_PadsFromConfiguredFallbackSet(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "init")
	require.NoError(t, err)

	out, err := execute(t, dir, "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "24 recently used on localhost")
	assert.Contains(t, out, "U+20AC")

	_, err = execute(t, dir, "insert", "--print", "U+2192")
	require.NoError(t, err)
	out, err = execute(t, dir, "recent", "--max", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2 recently used on localhost")
	assert.Regexp(t, `(?s)U\+2192.*U\+20AC`, out)
}

func TestInsert_UnknownID(t *testing.T) {
	_, err := execute(t, t.TempDir(), "insert", "--print", "U+0000")
	assert.ErrorContains(t, err, `has no symbol "U+0000"`)
}

func TestSearchAndFacets(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "search", "20ac")
	require.NoError(t, err)
	assert.Contains(t, out, `1 results for "20ac" in default`)
	assert.Contains(t, out, "U+20AC")

	_, err = execute(t, dir, "search", "--label", "NoSuchLabel", "sign")
	assert.ErrorContains(t, err, "has no label")

	out, err = execute(t, dir, "facets", "--sort", "range")
	require.NoError(t, err)
	assert.Contains(t, out, "sorted by range")

	_, err = execute(t, dir, "facets", "--sort", "size")
	assert.Error(t, err)
}

func TestUnknownSet(t *testing.T) {
	_, err := execute(t, t.TempDir(), "search", "--set", "missing", "x")
	assert.ErrorContains(t, err, `resolving set "missing"`)
	assert.ErrorContains(t, err, "available: default")

	var unknown *charset.UnknownSetError
	assert.ErrorAs(t, err, &unknown)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`[
		{"id": "a", "codePoints": ["U+2190"], "name": "Leftwards arrow", "labels": ["Arrows"]},
		{"id": "gap", "codePoints": ["U+2003"]}
	]`), 0o644))

	out, err := execute(t, dir, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2 entries, 1 placeholders, 1 labels")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id": "a", "codePoints": ["2190"]}]`), 0o644))
	_, err = execute(t, dir, "validate", bad)
	assert.ErrorContains(t, err, "missing U+ prefix")
}
