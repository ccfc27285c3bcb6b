package validate

import (
	"strings"
	"unicode"
)

// SanitizeNote cleans note text for storage.
func SanitizeNote(note string) string {
	// Trim whitespace
	note = strings.TrimSpace(note)

	// Remove null bytes
	note = strings.ReplaceAll(note, "\x00", "")

	// Normalize line endings
	note = strings.ReplaceAll(note, "\r\n", "\n")
	note = strings.ReplaceAll(note, "\r", "\n")

	return note
}

// StripControlChars removes all control characters except newlines and tabs.
func StripControlChars(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SingleLine collapses s onto one line for use as a title.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(StripControlChars(s)), " ")
}
