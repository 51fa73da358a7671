package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/clipboard"
	"github.com/f3rmion/symbols/internal/facet"
	"github.com/f3rmion/symbols/internal/picker"
	"github.com/f3rmion/symbols/internal/prefs"
	"github.com/f3rmion/symbols/internal/recent"
	"github.com/f3rmion/symbols/internal/tui/bigchar"
)

// focusArea is the part of the modal receiving keys.
type focusArea int

const (
	focusGrid focusArea = iota
	focusSearch
	focusFacets
)

type loadState int

const (
	stateLoading loadState = iota
	stateReady
	stateError
)

const (
	sidebarWidth = 30
	previewCols  = 16
	previewRows  = 8
)

// Resolver resolves character sets by name.
type Resolver interface {
	Resolve(ctx context.Context, name string) ([]charset.Entry, error)
}

// Options wires the picker to its collaborators.
type Options struct {
	SetName  string
	Resolver Resolver
	Tracker  *recent.Tracker    // nil disables the recent tab's history
	Inserter clipboard.Inserter // receives the confirmed text
	Renderer *bigchar.Renderer  // nil disables block previews
	Prefs    prefs.Prefs
	Columns  int
	Logger   zerolog.Logger
}

// setLoadedMsg carries the outcome of resolving a set.
type setLoadedMsg struct {
	request int
	name    string
	entries []charset.Entry
	err     error
}

// RecentChangedMsg tells the picker the recent list changed.
type RecentChangedMsg struct{}

// Model is the Bubble Tea model of the picker modal.
type Model struct {
	// Core dependencies
	resolver Resolver
	tracker  *recent.Tracker
	inserter clipboard.Inserter
	renderer *bigchar.Renderer
	logger   zerolog.Logger

	// Set loading
	setName string
	request int
	state   loadState
	loadErr error
	session *picker.Session
	prefs   prefs.Prefs

	// Layout state
	width   int
	height  int
	columns int
	ready   bool

	// Navigation
	focus       focusArea
	cursor      int
	facetCursor int

	// Inputs
	search      textinput.Model
	facetFilter textinput.Model
	spinner     spinner.Model

	showHelp  bool
	inserted  string
	insertErr error
}

// New creates the picker. The set is resolved when the program starts.
func New(opts Options) Model {
	search := textinput.New()
	search.Placeholder = "Search by name, label or U+ code"
	search.Prompt = "/ "
	search.CharLimit = 64

	facetFilter := textinput.New()
	facetFilter.Placeholder = "filter subsets"
	facetFilter.Prompt = "› "
	facetFilter.CharLimit = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = LoadingStyle

	columns := opts.Columns
	if columns < 1 {
		columns = 8
	}

	return Model{
		resolver:    opts.Resolver,
		tracker:     opts.Tracker,
		inserter:    opts.Inserter,
		renderer:    opts.Renderer,
		logger:      opts.Logger,
		setName:     opts.SetName,
		request:     1,
		state:       stateLoading,
		prefs:       opts.Prefs,
		columns:     columns,
		search:      search,
		facetFilter: facetFilter,
		spinner:     sp,
	}
}

// Init starts resolving the set.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSet())
}

func (m Model) loadSet() tea.Cmd {
	resolver, name, request := m.resolver, m.setName, m.request
	return func() tea.Msg {
		entries, err := resolver.Resolve(context.Background(), name)
		return setLoadedMsg{request: request, name: name, entries: entries, err: err}
	}
}

// Result returns the inserted text, if the user confirmed a symbol.
func (m Model) Result() (string, bool) {
	return m.inserted, m.inserted != ""
}

// Prefs returns the preferences to persist for the next launch.
func (m Model) Prefs() prefs.Prefs {
	p := m.prefs
	p.LastSet = m.setName
	if m.session == nil {
		return p
	}
	p.Sort = m.session.Order().String()
	p.LastQuery = m.session.Query()
	p.LastLabel = ""
	if f, ok := m.session.ActiveFacet(); ok {
		p.LastLabel = f.Name
	}
	return p
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(m.width-sidebarWidth-12, 10)
		m.facetFilter.Width = sidebarWidth - 8
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case setLoadedMsg:
		return m.handleLoaded(msg), nil

	case RecentChangedMsg:
		if m.session != nil {
			m.session.RefreshRecent()
			m.clampCursor()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch m.state {
		case stateLoading:
			if msg.String() == "esc" || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		case stateError:
			return m.updateError(msg)
		}
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusFacets:
			return m.updateFacets(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m Model) handleLoaded(msg setLoadedMsg) Model {
	if msg.request != m.request {
		m.logger.Debug().Str("set", msg.name).Msg("dropping stale character set result")
		return m
	}
	if msg.err != nil {
		m.state = stateError
		m.loadErr = msg.err
		var unknown *charset.UnknownSetError
		if errors.As(msg.err, &unknown) {
			m.logger.Error().Str("set", msg.name).Msg("character set is not registered")
		} else {
			m.logger.Error().Err(msg.err).Str("set", msg.name).Bool("retryable", charset.IsRetryable(msg.err)).Msg("character set could not be loaded")
		}
		return m
	}

	var source picker.RecentSource
	if m.tracker != nil {
		source = m.tracker
	}
	m.session = picker.New(msg.entries, source, m.prefs.SortOrder())
	m.state = stateReady
	m.loadErr = nil

	if m.prefs.LastSet == m.setName {
		if m.prefs.LastQuery != "" {
			m.search.SetValue(m.prefs.LastQuery)
			m.session.SetQuery(m.prefs.LastQuery)
		}
		if m.prefs.LastLabel != "" {
			m.session.SelectFacet(m.prefs.LastLabel)
		}
	}
	m.cursor = 0
	m.syncSelection()
	m.logger.Debug().Str("set", msg.name).Int("entries", len(msg.entries)).Msg("picker ready")
	return m
}

func (m Model) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		// The set may come back with different glyphs under the same ids.
		m.renderer.Forget()
		m.request++
		m.state = stateLoading
		m.loadErr = nil
		return m, tea.Batch(m.spinner.Tick, m.loadSet())
	case "esc", "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "down", "tab":
		m.focus = focusGrid
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.session.SetQuery(m.search.Value())
		m.cursor = 0
		m.syncSelection()
	}
	return m, cmd
}

func (m Model) updateFacets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.focus = focusGrid
		m.facetFilter.Blur()
		return m, nil
	case "up", "ctrl+p":
		if m.facetCursor > 0 {
			m.facetCursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.facetCursor < len(m.visibleFacets())-1 {
			m.facetCursor++
		}
		return m, nil
	case "enter":
		facets := m.visibleFacets()
		if m.facetCursor < len(facets) {
			m.session.SelectFacet(facets[m.facetCursor].Name)
			m.cursor = 0
			m.syncSelection()
		}
		m.focus = focusGrid
		m.facetFilter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.facetFilter.Value()
	m.facetFilter, cmd = m.facetFilter.Update(msg)
	if m.facetFilter.Value() != before {
		m.facetCursor = 0
	}
	return m, cmd
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.session.Displayed())

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "/":
		m.focus = focusSearch
		m.search.Focus()
		return m, textinput.Blink
	case "f":
		m.focus = focusFacets
		m.facetFilter.SetValue("")
		m.facetCursor = 0
		m.facetFilter.Focus()
		return m, textinput.Blink
	case "x":
		m.session.ClearFacet()
		m.cursor = 0
	case "s":
		next := facet.ByRange
		if m.session.Order() == facet.ByRange {
			next = facet.ByName
		}
		m.session.SetSortOrder(next)
	case "1":
		m.switchTab(picker.TabAll)
	case "2":
		m.switchTab(picker.TabRecent)
	case "3":
		m.switchTab(picker.TabSearch)
		m.focus = focusSearch
		m.search.Focus()
		return m, textinput.Blink
	case "tab":
		m.switchTab(m.nextTab())
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor-m.columns >= 0 {
			m.cursor -= m.columns
		}
	case "down", "j":
		if m.cursor+m.columns < n {
			m.cursor += m.columns
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(n-1, 0)
	case "enter", " ":
		return m.confirm()
	}

	m.syncSelection()
	return m, nil
}

func (m *Model) switchTab(tab picker.Tab) {
	if tab == picker.TabRecent {
		m.session.RefreshRecent()
	}
	m.session.SetTab(tab)
	m.cursor = 0
}

func (m Model) nextTab() picker.Tab {
	switch m.session.Tab() {
	case picker.TabAll:
		return picker.TabRecent
	case picker.TabRecent:
		if m.session.Query() != "" {
			return picker.TabSearch
		}
		return picker.TabAll
	default:
		return picker.TabAll
	}
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	entries := m.session.Displayed()
	if m.cursor >= len(entries) || !m.session.Select(entries[m.cursor]) {
		return m, nil
	}
	entry, ok := m.session.Selected()
	if !ok {
		return m, nil
	}
	// Only a symbol that reached the document counts as used.
	if m.inserter != nil {
		if err := m.inserter.Insert(entry.Text()); err != nil {
			m.insertErr = err
			m.logger.Error().Err(err).Msg("inserting symbol failed")
			return m, nil
		}
	}
	text, _ := m.session.Confirm()
	m.inserted = text
	m.insertErr = nil
	m.logger.Info().Str("id", entry.ID).Str("set", m.setName).Msg("symbol inserted")
	return m, tea.Quit
}

// syncSelection keeps the session's selection on the entry under the cursor.
func (m *Model) syncSelection() {
	m.clampCursor()
	if m.session == nil {
		return
	}
	entries := m.session.Displayed()
	if m.cursor < len(entries) {
		m.session.Select(entries[m.cursor])
	}
}

func (m *Model) clampCursor() {
	if m.session == nil {
		m.cursor = 0
		return
	}
	n := len(m.session.Displayed())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// visibleFacets applies the fuzzy subset filter to the current tab's facets.
func (m Model) visibleFacets() []facet.Facet {
	if m.session == nil {
		return nil
	}
	facets := m.session.Facets()
	query := m.facetFilter.Value()
	if query == "" {
		return facets
	}

	names := make([]string, len(facets))
	for i, f := range facets {
		names[i] = f.Name
	}
	matches := fuzzy.Find(query, names)
	out := make([]facet.Facet, 0, len(matches))
	for _, match := range matches {
		out = append(out, facets[match.Index])
	}
	return out
}
