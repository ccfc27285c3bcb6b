package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/recall/internal/model"
	"github.com/manav03panchal/recall/internal/notes"
	"github.com/manav03panchal/recall/internal/output"
)

// Opener opens what a record points at.
type Opener interface {
	OpenRecord(r *model.Record) (bool, error)
}

// BrowseModel is the bubbletea model behind 'recall browse'.
type BrowseModel struct {
	store  *notes.Store
	opener Opener

	records []*model.Record
	cursor  int

	width   int
	height  int
	message string
	err     error
}

// BrowseConfig holds what the browser needs.
type BrowseConfig struct {
	Store  *notes.Store
	Opener Opener
}

// NewBrowseModel creates a browser over the store's active notes.
func NewBrowseModel(config BrowseConfig) *BrowseModel {
	m := &BrowseModel{store: config.Store, opener: config.Opener}
	m.reload()
	return m
}

// Init initializes the model.
func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *BrowseModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}

	case "home", "g":
		m.cursor = 0

	case "end", "G":
		if len(m.records) > 0 {
			m.cursor = len(m.records) - 1
		}

	case "enter", "o":
		m.openSelected()

	case "a":
		m.archiveSelected()

	case "r":
		m.reload()
		m.setMessage("Reloaded")
	}

	return m, nil
}

// Selected returns the record under the cursor, or nil when there are none.
func (m *BrowseModel) Selected() *model.Record {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return nil
	}
	return m.records[m.cursor]
}

// Err returns the last error.
func (m *BrowseModel) Err() error {
	return m.err
}

func (m *BrowseModel) openSelected() {
	r := m.Selected()
	if r == nil {
		return
	}
	if m.opener == nil {
		m.setMessage(output.Content(r))
		return
	}
	opened, err := m.opener.OpenRecord(r)
	switch {
	case err != nil:
		m.err = err
	case opened:
		m.setMessage("Opened " + r.Body)
	default:
		m.setMessage("Nothing to open for this note")
	}
}

func (m *BrowseModel) archiveSelected() {
	r := m.Selected()
	if r == nil {
		return
	}
	archived, err := m.store.Archive(r.ID)
	if err != nil {
		m.err = err
		return
	}
	m.reload()
	m.setMessage(fmt.Sprintf("Note titled '%s' archived", archived.DisplayTitle()))
}

func (m *BrowseModel) reload() {
	m.records = m.store.ListActive()
	if m.cursor >= len(m.records) {
		m.cursor = len(m.records) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BrowseModel) setMessage(msg string) {
	m.message = msg
	m.err = nil
}

// View renders the browser.
func (m *BrowseModel) View() string {
	var sections []string

	header := StyleTitle.Render("Recall") + "  " +
		StyleSubtitle.Render(fmt.Sprintf("%d notes", len(m.records)))
	sections = append(sections, header+"\n")

	if len(m.records) == 0 {
		sections = append(sections, StyleSubtitle.Render("No notes. Add one with recall \"<text>\"."))
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	start, end := m.window()
	for i := start; i < end; i++ {
		sections = append(sections, m.renderRow(i, m.records[i], width))
	}

	if r := m.Selected(); r != nil {
		if content := output.Content(r); content != "" {
			sections = append(sections, StyleDetailBox.Render(content))
		}
	}

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.message != "" {
		sections = append(sections, StyleMessage.Render(m.message))
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// window returns the range of rows that fits the terminal, keeping the
// cursor roughly centered.
func (m *BrowseModel) window() (int, int) {
	rows := m.height - 8
	if m.height <= 0 || rows <= 0 || rows >= len(m.records) {
		return 0, len(m.records)
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(m.records) {
		end = len(m.records)
		start = end - rows
	}
	return start, end
}

func (m *BrowseModel) renderRow(i int, r *model.Record, width int) string {
	marker := "  "
	if i == m.cursor {
		marker = "> "
	}
	prefix := fmt.Sprintf("%s%-3d %s  ", marker, i, output.FormatTime(r.CreatedAt))
	kind := fmt.Sprintf("%-4s", r.Kind.Label())
	title := output.Truncate(r.DisplayTitle(), width-len([]rune(prefix))-len(kind)-2)
	if i == m.cursor {
		return StyleSelected.Render(prefix + kind + "  " + title)
	}
	return prefix + StyleKind.Render(kind) + "  " + title
}

// RunBrowse starts the browser TUI.
func RunBrowse(config BrowseConfig) error {
	p := tea.NewProgram(NewBrowseModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
