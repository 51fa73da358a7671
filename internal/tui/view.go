package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/picker"
)

// cellWidth is the number of terminal columns a glyph occupies in the grid.
const cellWidth = 2

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	contentWidth := m.width - sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(m.renderContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), mainContent)
}

func (m Model) renderSidebar() string {
	var items []string
	items = append(items, SidebarTitleStyle.Render("Filter by subset"))

	if m.focus == focusFacets {
		items = append(items, m.facetFilter.View(), "")
	}

	if m.session != nil {
		active, hasActive := m.session.ActiveFacet()
		facets := m.visibleFacets()
		limit := max(m.height-12, 3)
		for i, f := range facets {
			if i >= limit {
				items = append(items, SidebarItemStyle.Render(fmt.Sprintf("… %d more", len(facets)-limit)))
				break
			}
			label := fmt.Sprintf("%s (%d)", f.Name, f.Count)
			style := SidebarItemStyle
			switch {
			case m.focus == focusFacets && i == m.facetCursor:
				style = SidebarItemActiveStyle
			case hasActive && f.Name == active.Name:
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
			items = append(items, style.Render(runewidth.Truncate(label, sidebarWidth-6, "…")))
			items = append(items, SidebarRangeStyle.Render("  "+f.FormatRange()))
		}
		if len(facets) == 0 {
			items = append(items, SidebarItemStyle.Render("(no results)"))
		}
	}

	order := "name"
	if m.session != nil {
		order = m.session.Order().String()
	}
	items = append(items, SidebarHelpStyle.Render("f filter  x clear\ns sort: "+order))

	return SidebarStyle.
		Width(sidebarWidth).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (m Model) renderContent() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Insert symbol"))
	b.WriteString(" ")
	b.WriteString(HelpStyle.Render(m.setName))
	b.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		b.WriteString(m.spinner.View() + LoadingStyle.Render(" Loading symbols..."))
		return b.String()
	case stateError:
		b.WriteString(ErrorStyle.Render("Could not retrieve symbols"))
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("r: retry • esc: close"))
		return b.String()
	}

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	boxStyle := SearchBoxIdleStyle
	if m.focus == focusSearch {
		boxStyle = SearchBoxStyle
	}
	b.WriteString(boxStyle.Render(m.search.View()))
	b.WriteString("\n")

	entries := m.session.Displayed()
	b.WriteString(CounterStyle.Render(m.session.Counter()))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(EmptyTitleStyle.Render(m.session.EmptyTitle()))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render(wordWrap(m.session.EmptyMessage(), max(m.width-sidebarWidth-10, 20))))
		b.WriteString("\n")
	} else {
		grid := m.renderGrid(entries)
		if preview := m.renderPreview(); preview != "" {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", preview))
		} else {
			b.WriteString(grid)
		}
		b.WriteString("\n")
	}

	if m.insertErr != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Insert failed: " + m.insertErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("←↑↓→: move • enter: insert • /: search • tab: switch tab • ?: help"))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []picker.Tab{picker.TabAll, picker.TabRecent}
	if m.session.Query() != "" || m.session.Tab() == picker.TabSearch {
		tabs = append(tabs, picker.TabSearch)
	}

	rendered := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if tab == m.session.Tab() {
			rendered = append(rendered, TabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderGrid(entries []charset.Entry) string {
	visibleRows := max(m.height-18, 3)
	cursorRow := m.cursor / m.columns
	firstRow := 0
	if cursorRow >= visibleRows {
		firstRow = cursorRow - visibleRows + 1
	}

	var rows []string
	for row := firstRow; row < firstRow+visibleRows; row++ {
		start := row * m.columns
		if start >= len(entries) {
			break
		}
		end := min(start+m.columns, len(entries))

		cells := make([]string, 0, m.columns)
		for i := start; i < end; i++ {
			style := CellStyle
			switch {
			case i == m.cursor && m.focus == focusGrid:
				style = CellCursorStyle
			case !entries[i].Selectable():
				style = CellPlaceholderStyle
			}
			cells = append(cells, style.Render(cellText(entries[i])))
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}

// cellText fits an entry's text into one grid cell.
func cellText(e charset.Entry) string {
	text := e.Text()
	if runewidth.StringWidth(text) > cellWidth {
		text = runewidth.Truncate(text, cellWidth, "")
	}
	return runewidth.FillRight(text, cellWidth)
}

func (m Model) renderPreview() string {
	entry, ok := m.session.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	if block := m.renderer.Preview(entry, previewCols, previewRows); block != "" {
		b.WriteString(PreviewGlyphStyle.Render(block))
	} else {
		b.WriteString(PreviewGlyphStyle.Render(entry.Text()))
	}
	b.WriteString("\n\n")
	b.WriteString(PreviewNameStyle.Render(entry.Name))
	b.WriteString("\n")
	b.WriteString(PreviewCodeStyle.Render(entry.FormatCodePoints()))
	if len(entry.Labels) > 0 {
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render(strings.Join(entry.Labels, ", ")))
	}
	return PreviewBoxStyle.Width(previewCols + 8).Render(b.String())
}

// renderHelp renders the help overlay
func (m Model) renderHelp() string {
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	row := func(key, desc string) string {
		return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
	}

	helpText := TitleStyle.Render("Insert symbol") + "\n\n"

	helpText += sectionStyle.Render("Grid") + "\n"
	helpText += row("←↑↓→ hjkl", "Move")
	helpText += row("enter", "Insert symbol")
	helpText += row("1 2 3", "All / Recent / Search")
	helpText += row("tab", "Next tab")
	helpText += row("q esc", "Close without inserting")

	helpText += sectionStyle.Render("Search") + "\n"
	helpText += row("/", "Search by name, label, code point")
	helpText += row("enter esc", "Back to grid")

	helpText += sectionStyle.Render("Subsets") + "\n"
	helpText += row("f", "Filter and pick a subset")
	helpText += row("x", "Clear subset")
	helpText += row("s", "Sort by name or range")

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(56)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(helpText))
}

// wordWrap wraps s at word boundaries to at most width cells per line.
func wordWrap(s string, width int) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(s) {
		if line.Len() > 0 && runewidth.StringWidth(line.String())+1+runewidth.StringWidth(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
