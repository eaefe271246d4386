package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spotcli/spot/internal/index"
	"github.com/spotcli/spot/internal/opener"
	"github.com/spotcli/spot/internal/search"
)

// mode is the session state. Typing is the live-search default;
// Selecting suspends live search while a numeric selection is read.
// Exiting is tea.Quit plus the caller's index teardown.
type mode int

const (
	modeTyping mode = iota
	modeSelecting
)

// Options configures the interactive session.
type Options struct {
	// ViewportHeight is the number of result rows rendered.
	ViewportHeight int

	// ResultLimit caps each search.
	ResultLimit int

	// MaxQueryLen bounds the query buffer.
	MaxQueryLen int

	// ClearQueryOnOpen clears the query after a successful open. An
	// invalid or cancelled selection always retains the query.
	ClearQueryOnOpen bool

	// NoColor disables styling.
	NoColor bool
}

// Session is the bubbletea model driving the keystroke-search-render
// cycle. Every mutating keystroke re-runs the search synchronously;
// searches are bounded by the result limit, so there is nothing to
// cancel.
type Session struct {
	store  *index.Store
	engine *search.Engine
	opener opener.Opener
	opts   Options
	styles Styles

	input     textinput.Model
	selection textinput.Model

	mode    mode
	results []*index.Record
	elapsed time.Duration
	notice  string

	width    int
	quitting bool
}

// NewSession creates the interactive session over a populated index.
func NewSession(store *index.Store, engine *search.Engine, op opener.Opener, opts Options) *Session {
	if opts.ViewportHeight < 1 {
		opts.ViewportHeight = 12
	}
	if opts.ResultLimit < 1 {
		opts.ResultLimit = opts.ViewportHeight
	}
	if opts.MaxQueryLen < 1 {
		opts.MaxQueryLen = 255
	}

	styles := GetStyles(opts.NoColor || DetectNoColor())

	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = styles.Prompt
	input.TextStyle = styles.Query
	input.CharLimit = opts.MaxQueryLen
	input.Focus()

	selection := textinput.New()
	selection.CharLimit = 5

	return &Session{
		store:     store,
		engine:    engine,
		opener:    op,
		opts:      opts,
		styles:    styles,
		input:     input,
		selection: selection,
	}
}

// Init implements tea.Model.
func (m *Session) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == modeSelecting {
			return m.updateSelecting(msg)
		}
		return m.updateTyping(msg)
	}

	var cmd tea.Cmd
	if m.mode == modeSelecting {
		m.selection, cmd = m.selection.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// updateTyping handles keys in the live-search state.
func (m *Session) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		// Commit only makes sense with at least one result.
		if len(m.results) == 0 {
			return m, nil
		}
		m.mode = modeSelecting
		m.notice = ""
		m.selection.SetValue("")
		m.selection.Prompt = fmt.Sprintf("Open file ID (1-%d): ", len(m.results))
		m.selection.PromptStyle = m.styles.Prompt
		m.input.Blur()
		m.selection.Focus()
		return m, textinput.Blink
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.notice = ""
		m.runSearch()
	}
	return m, cmd
}

// updateSelecting handles keys while a numeric selection is read.
func (m *Session) updateSelecting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancelled: back to typing with the query retained.
		return m, m.backToTyping("")

	case "enter":
		raw := strings.TrimSpace(m.selection.Value())
		choice, err := strconv.Atoi(raw)
		if err != nil || choice < 1 || choice > len(m.results) {
			return m, m.backToTyping("Invalid selection.")
		}

		rec := m.results[choice-1]
		if err := m.opener.Open(rec.Path); err != nil {
			slog.Warn("failed to open file", slog.String("path", rec.Path), slog.String("error", err.Error()))
			return m, m.backToTyping("Could not open " + rec.Name + ".")
		}

		if m.opts.ClearQueryOnOpen {
			m.input.SetValue("")
			m.runSearch()
		}
		return m, m.backToTyping("")
	}

	var cmd tea.Cmd
	m.selection, cmd = m.selection.Update(msg)
	return m, cmd
}

// backToTyping returns to the live-search state, leaving the query
// buffer as it stands.
func (m *Session) backToTyping(notice string) tea.Cmd {
	m.mode = modeTyping
	m.notice = notice
	m.selection.Blur()
	m.input.Focus()
	return textinput.Blink
}

// runSearch re-runs the engine against the current buffer.
func (m *Session) runSearch() {
	res := m.engine.Search(m.input.Value(), m.opts.ResultLimit)
	m.results = res.Records
	m.elapsed = res.Elapsed
}

// View implements tea.Model.
func (m *Session) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n  " + m.styles.Header.Render("SPOT SEARCH") + "\n")
	b.WriteString("  " + m.styles.Hint.Render("Type to search. Enter to open. Esc to quit.") + "\n\n")
	b.WriteString("  " + m.input.View() + "\n\n")

	query := m.input.Value()
	for i := 0; i < m.opts.ViewportHeight; i++ {
		switch {
		case i < len(m.results):
			b.WriteString(m.renderRow(i))
		case i == 0 && query != "" && len(m.results) == 0:
			b.WriteString("       " + m.styles.Notice.Render("No matches found."))
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + m.styles.Hint.Render(strings.Repeat("_", 54)) + "\n")
	b.WriteString("  " + m.styles.Status.Render(m.statusLine()) + "\n")

	if m.mode == modeSelecting {
		b.WriteString("\n  " + m.selection.View() + "\n")
	} else if m.notice != "" {
		b.WriteString("\n  " + m.styles.Notice.Render(m.notice) + "\n")
	}

	return b.String()
}

// renderRow renders one result line: [ID] filename path.
func (m *Session) renderRow(i int) string {
	rec := m.results[i]
	name := truncateName(rec.Name, filenameWidth)
	path := shortenPath(rec.Path, pathWidth)

	return fmt.Sprintf("  %s  %s  %s",
		m.styles.Number.Render(fmt.Sprintf("[%2d]", i+1)),
		m.styles.Filename.Render(fmt.Sprintf("%-*s", filenameWidth, name)),
		m.styles.Path.Render(path))
}

// statusLine reflects the index when idle and the last search when a
// query is live.
func (m *Session) statusLine() string {
	if m.input.Value() == "" {
		return fmt.Sprintf("%d files indexed. Ready.", m.store.Size())
	}
	return fmt.Sprintf("Found %d matches in %.4fs", len(m.results), m.elapsed.Seconds())
}

// Ensure Session implements tea.Model.
var _ tea.Model = (*Session)(nil)
