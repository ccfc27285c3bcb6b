package tui

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/recall/internal/model"
	"github.com/manav03panchal/recall/internal/notes"
	"github.com/manav03panchal/recall/internal/storage"
)

type fakeOpener struct {
	opened []*model.Record
	err    error
}

func (f *fakeOpener) OpenRecord(r *model.Record) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if r.Kind == model.KindLink || r.Kind == model.KindPath {
		f.opened = append(f.opened, r)
		return true, nil
	}
	return false, nil
}

func setupBrowse(t *testing.T) (*BrowseModel, *notes.Store, *fakeOpener) {
	p, err := storage.OpenPersister(storage.PersisterOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })

	clock := func() time.Time { return time.Date(2026, 5, 5, 10, 0, 0, 0, time.Local) }
	s, err := notes.Open(p, notes.WithClock(clock))
	require.NoError(t, err)

	_, err = s.Create("", model.KindNone, "Take the dog for a walk")
	require.NoError(t, err)
	_, err = s.Create("Cool thing on stack overflow", model.KindLink, "https://stackoverflow.com/")
	require.NoError(t, err)
	_, err = s.Create("Groceries", model.KindText, "eggs")
	require.NoError(t, err)

	o := &fakeOpener{}
	return NewBrowseModel(BrowseConfig{Store: s, Opener: o}), s, o
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *BrowseModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestBrowseNavigation(t *testing.T) {
	m, _, _ := setupBrowse(t)
	assert.Len(t, m.records, 3)
	assert.Equal(t, 0, m.cursor)

	press(m, "down", "j")
	assert.Equal(t, 2, m.cursor)

	press(m, "down")
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")

	press(m, "k", "up", "up")
	assert.Equal(t, 0, m.cursor)

	press(m, "G")
	assert.Equal(t, 2, m.cursor)
	press(m, "g")
	assert.Equal(t, 0, m.cursor)
}

func TestBrowseOpen(t *testing.T) {
	m, _, o := setupBrowse(t)

	press(m, "enter")
	assert.Empty(t, o.opened)
	assert.Equal(t, "Nothing to open for this note", m.message)

	press(m, "down", "enter")
	require.Len(t, o.opened, 1)
	assert.Equal(t, "https://stackoverflow.com/", o.opened[0].Body)
	assert.Contains(t, m.message, "Opened")
}

func TestBrowseOpenError(t *testing.T) {
	m, _, o := setupBrowse(t)
	o.err = stderrors.New("no browser")

	press(m, "down", "o")
	assert.EqualError(t, m.Err(), "no browser")
	assert.Contains(t, m.View(), "Error: no browser")
}

func TestBrowseArchive(t *testing.T) {
	m, s, _ := setupBrowse(t)

	press(m, "down", "a")
	assert.Equal(t, "Note titled 'Cool thing on stack overflow' archived", m.message)
	assert.Len(t, m.records, 2)
	assert.Len(t, s.ListActive(), 2)

	r, err := s.Get(1)
	require.NoError(t, err)
	assert.False(t, r.Active)

	// Archiving the last row moves the cursor up.
	press(m, "G", "a")
	assert.Len(t, m.records, 1)
	assert.Equal(t, 0, m.cursor)

	press(m, "a")
	assert.Empty(t, m.records)
	assert.Nil(t, m.Selected())

	// Nothing left to archive.
	press(m, "a")
	assert.NoError(t, m.Err())
}

func TestBrowseQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m, _, _ := setupBrowse(t)
		cmd := press(m, k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestBrowseWindowSize(t *testing.T) {
	m, _, _ := setupBrowse(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestBrowseWindowScrolls(t *testing.T) {
	m, s, _ := setupBrowse(t)
	for i := 0; i < 20; i++ {
		_, err := s.Create("", model.KindNone, "filler")
		require.NoError(t, err)
	}
	press(m, "r")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 13})

	start, end := m.window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	press(m, "G")
	start, end = m.window()
	assert.Equal(t, 23, end)
	assert.Equal(t, 18, start)
}

func TestBrowseView(t *testing.T) {
	m, _, _ := setupBrowse(t)
	press(m, "down")

	view := m.View()
	assert.Contains(t, view, "Recall")
	assert.Contains(t, view, "3 notes")
	assert.Contains(t, view, "Take the dog for a walk")
	assert.Contains(t, view, "Cool thing on stack overflow")
	assert.Contains(t, view, "https://stackoverflow.com/")
	assert.Contains(t, view, "quit")

	lines := strings.Split(view, "\n")
	var selected string
	for _, l := range lines {
		if strings.Contains(l, "> ") {
			selected = l
		}
	}
	assert.Contains(t, selected, "Cool thing")
}

func TestBrowseEmptyView(t *testing.T) {
	p, err := storage.OpenPersister(storage.PersisterOptions{InMemory: true})
	require.NoError(t, err)
	defer p.Close()
	s, err := notes.Open(p)
	require.NoError(t, err)

	m := NewBrowseModel(BrowseConfig{Store: s})
	assert.Contains(t, m.View(), "No notes.")
	assert.Nil(t, m.Init())
}

func TestHelpBar(t *testing.T) {
	help := HelpBar()
	for _, want := range []string{"enter", "archive", "quit"} {
		assert.Contains(t, help, want)
	}
}
