package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotcli/spot/internal/index"
	"github.com/spotcli/spot/internal/search"
)

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(path string) error {
	if f.err != nil {
		return f.err
	}
	f.opened = append(f.opened, path)
	return nil
}

func newTestSession(t *testing.T, opts Options) (*Session, *fakeOpener) {
	t.Helper()

	store := index.New()
	store.Insert("Report.PDF", "/docs/Report.PDF")
	store.Insert("report_final.txt", "/docs/report_final.txt")
	store.Insert("image.png", "/docs/image.png")

	op := &fakeOpener{}
	opts.NoColor = true
	return NewSession(store, search.New(store), op, opts), op
}

func press(t *testing.T, m *Session, msg tea.Msg) *Session {
	t.Helper()
	next, _ := m.Update(msg)
	s, ok := next.(*Session)
	require.True(t, ok)
	return s
}

func typeString(t *testing.T, m *Session, s string) *Session {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSession_TypingRunsSearch(t *testing.T) {
	m, _ := newTestSession(t, Options{ClearQueryOnOpen: true})

	m = typeString(t, m, "report")

	require.Len(t, m.results, 2)
	view := m.View()
	assert.Contains(t, view, "Report.PDF")
	assert.Contains(t, view, "report_final.txt")
	assert.NotContains(t, view, "image.png")
}

func TestSession_BackspaceReruns(t *testing.T) {
	m, _ := newTestSession(t, Options{ClearQueryOnOpen: true})

	m = typeString(t, m, "reportx")
	require.Empty(t, m.results)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "report", m.input.Value())
	assert.Len(t, m.results, 2)
}

func TestSession_EmptyQueryShowsReadyStatus(t *testing.T) {
	m, _ := newTestSession(t, Options{ClearQueryOnOpen: true})

	view := m.View()
	assert.Contains(t, view, "3 files indexed. Ready.")
	assert.NotContains(t, view, "Found")
}

func TestSession_NonEmptyQueryShowsMatchStatus(t *testing.T) {
	m, _ := newTestSession(t, Options{ClearQueryOnOpen: true})

	m = typeString(t, m, "png")
	view := m.View()
	assert.Contains(t, view, "Found 1 matches in")
}

func TestSession_NoMatchesNotice(t *testing.T) {
	m, _ := newTestSession(t, Options{ClearQueryOnOpen: true})

	m = typeString(t, m, "zzz")
	assert.Contains(t, m.View(), "No matches found.")
}

func TestSession_EnterWithoutResultsIsNoop(t *testing.T) {
	m, _ := newTestSession(t, Options{ClearQueryOnOpen: true})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeTyping, m.mode)
}

func TestSession_CommitAndValidSelectionOpensFile(t *testing.T) {
	m, op := newTestSession(t, Options{ClearQueryOnOpen: true})

	m = typeString(t, m, "report")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeSelecting, m.mode)
	assert.Contains(t, m.View(), "Open file ID (1-2)")

	m = typeString(t, m, "1")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Scan order is table order: Report.PDF's bucket precedes
	// report_final.txt's, so it is result [1].
	require.Len(t, op.opened, 1)
	assert.Equal(t, "/docs/Report.PDF", op.opened[0])

	// Back to typing with the query cleared.
	assert.Equal(t, modeTyping, m.mode)
	assert.Equal(t, "", m.input.Value())
	assert.Empty(t, m.results)
}

func TestSession_OpenRetainsQueryWhenConfigured(t *testing.T) {
	m, op := newTestSession(t, Options{ClearQueryOnOpen: false})

	m = typeString(t, m, "report")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(t, m, "2")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, op.opened, 1)
	assert.Equal(t, "/docs/report_final.txt", op.opened[0])
	assert.Equal(t, "report", m.input.Value())
	assert.Len(t, m.results, 2)
}

func TestSession_InvalidSelectionLeavesStateUntouched(t *testing.T) {
	// Zero, out-of-range and non-numeric selections never open a file
	// and leave the query and results as they were.
	for _, bad := range []string{"0", "99", "abc", ""} {
		t.Run("selection "+bad, func(t *testing.T) {
			m, op := newTestSession(t, Options{ClearQueryOnOpen: true})

			m = typeString(t, m, "report")
			m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			m = typeString(t, m, bad)
			m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			assert.Empty(t, op.opened)
			assert.Equal(t, modeTyping, m.mode)
			assert.Equal(t, "report", m.input.Value())
			assert.Len(t, m.results, 2)
			assert.Equal(t, 3, m.store.Size())
			assert.Contains(t, m.View(), "Invalid selection.")
		})
	}
}

func TestSession_EscCancelsSelection(t *testing.T) {
	m, op := newTestSession(t, Options{ClearQueryOnOpen: true})

	m = typeString(t, m, "report")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Empty(t, op.opened)
	assert.Equal(t, modeTyping, m.mode)
	assert.Equal(t, "report", m.input.Value())
	assert.Len(t, m.results, 2)
}

func TestSession_OpenFailureShowsNotice(t *testing.T) {
	m, op := newTestSession(t, Options{ClearQueryOnOpen: true})
	op.err = errors.New("no handler")

	m = typeString(t, m, "png")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(t, m, "1")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, op.opened)
	assert.Contains(t, m.View(), "Could not open image.png.")
	// The query survives a failed open.
	assert.Equal(t, "png", m.input.Value())
}

func TestSession_EscQuits(t *testing.T) {
	m, _ := newTestSession(t, Options{ClearQueryOnOpen: true})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s := next.(*Session)

	assert.True(t, s.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "", s.View())
}

func TestSession_ViewportCapsRows(t *testing.T) {
	store := index.New()
	for i := 0; i < 30; i++ {
		store.Insert("match.txt", "/files/match.txt")
	}
	m := NewSession(store, search.New(store), &fakeOpener{}, Options{
		ViewportHeight: 5, ResultLimit: 5, NoColor: true, ClearQueryOnOpen: true,
	})

	m = typeString(t, m, "match")

	assert.Len(t, m.results, 5)
	assert.Contains(t, m.View(), "[ 5]")
	assert.NotContains(t, m.View(), "[ 6]")
}

func TestSession_QueryBufferBounded(t *testing.T) {
	store := index.New()
	m := NewSession(store, search.New(store), &fakeOpener{}, Options{
		MaxQueryLen: 4, NoColor: true, ClearQueryOnOpen: true,
	})

	m = typeString(t, m, "abcdefgh")
	assert.Equal(t, "abcd", m.input.Value())
}
