package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/recall/internal/model"
)

// Styles for CLI output.
var (
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorTitle   = lipgloss.Color("#F59E0B") // Yellow
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleIndex = lipgloss.NewStyle().
			Bold(true)

	styleKind = lipgloss.NewStyle().
			Italic(true)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorTitle)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(s lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return s.Render(text)
	}
	return text
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// RecordLine renders one listing line: timestamp, kind label and title.
func (c *CLIFormatter) RecordLine(r *model.Record) string {
	ts := FormatTime(r.CreatedAt)
	title := c.render(styleTitle, r.DisplayTitle())
	if r.Kind.Label() == "" {
		return fmt.Sprintf("%s\t\t%s", ts, title)
	}
	return fmt.Sprintf("%s\t%s\t%s", ts, c.render(styleKind, r.Kind.Label()), title)
}

// Content returns what a record points at: the URL, path or text.
// Plain notes have no content beyond their title.
func Content(r *model.Record) string {
	switch r.Kind {
	case model.KindLink, model.KindPath, model.KindText:
		return r.Body
	case model.KindNone:
	}
	return ""
}

// Entry pairs a record with its display index, -1 when archived.
type Entry struct {
	Index  int
	Record *model.Record
}

// IndexRecords gives active records consecutive display indexes.
// records must be in id order.
func IndexRecords(records []*model.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	index := 0
	for _, r := range records {
		e := Entry{Index: -1, Record: r}
		if r.Active {
			e.Index = index
			index++
		}
		entries = append(entries, e)
	}
	return entries
}

// PrintEntries prints one line per entry, prefixed by its display index.
// With showIDs the persistent id follows the index and archived
// entries are marked.
func (c *CLIFormatter) PrintEntries(entries []Entry, showIDs bool) {
	if len(entries) == 0 {
		c.Muted("No notes.")
		c.Muted(`Use 'recall "<text>"' to add one.`)
		return
	}
	for _, e := range entries {
		label := "-"
		if e.Index >= 0 {
			label = fmt.Sprint(e.Index)
		}
		line := c.render(styleIndex, label) + " "
		if showIDs {
			line += c.render(styleMuted, fmt.Sprintf("#%d", e.Record.ID)) + " "
		}
		line += c.RecordLine(e.Record)
		if e.Record.IsArchived() {
			line += " " + c.render(styleMuted, "(archived)")
		}
		c.Println(line)
	}
}

// PrintRecord prints a record's line followed by its content.
func (c *CLIFormatter) PrintRecord(r *model.Record) {
	c.Println(c.RecordLine(r))
	if content := Content(r); content != "" {
		c.Println(content)
	}
}

// PrintCreated confirms a new note.
func (c *CLIFormatter) PrintCreated(index int, r *model.Record) {
	c.Success(fmt.Sprintf("Added note %d: %s", index, r.DisplayTitle()))
}

// PrintArchived confirms an archive.
func (c *CLIFormatter) PrintArchived(r *model.Record) {
	c.Printf("Note titled '%s' archived\n", r.DisplayTitle())
}

// PrintKeyValues prints aligned key/value pairs.
func (c *CLIFormatter) PrintKeyValues(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		c.Printf("%s  %s\n", c.render(styleMuted, fmt.Sprintf("%-*s", width, p[0])), p[1])
	}
}

// Truncate shortens s to at most n runes, ending in an ellipsis.
func Truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
