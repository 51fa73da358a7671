package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/symbols/internal/charset"
)

// printEntries writes one line per entry: glyph, id, name and labels.
func printEntries(w io.Writer, entries []charset.Entry) {
	for _, e := range entries {
		glyph := runewidth.FillRight(runewidth.Truncate(e.Text(), 4, ""), 4)
		name := e.Name
		if !e.Selectable() {
			name = "(placeholder)"
		}
		line := fmt.Sprintf("%s  %-12s %s", glyph, e.ID, name)
		if len(e.Labels) > 0 {
			line += "  [" + strings.Join(e.Labels, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
}
