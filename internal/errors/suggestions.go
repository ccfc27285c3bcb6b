package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrNotFound:         "Run 'recall' to see the current note indexes.",
	ErrInvalidIndex:     "Indexes are the numbers shown by 'recall', starting at 0.",
	ErrEmptyNote:        "Quote the note text, e.g. recall \"Take the dog for a walk\".",
	ErrInvalidURL:       "Provide a full URL such as https://example.com/page.",
	ErrInvalidPath:      "Provide an existing file or directory, '~' is expanded.",
	ErrInvalidTimestamp: "Try expressions like 'yesterday', '3 days ago', 'this week' or '2026-01-15'.",
	ErrConflictingFlags: "Use only one of --link, --path, --text or --edit.",
	ErrUnknownBackend:   "Set backend to one of: badger, sqlite, json.",
	ErrNotTerminal:      "Run 'recall browse' from an interactive terminal.",

	// System errors
	ErrEditor:           "Set editor_command in .recall.toml or export $EDITOR.",
	ErrOpen:             "Set open_command in .recall.toml, or use --no-open to print only.",
	ErrDiskFull:         "Free up disk space and try again. Your notes were not modified.",
	ErrPermissionDenied: "Check file permissions in your data directory (~/.local/share/recall/).",
	ErrStorage:          "Check db_path in your configuration and the permissions of the data directory.",
}

// suggestionOrder lists the sentinels GetSuggestion tries, most specific
// first. A disk-full storage failure should say so.
var suggestionOrder = []error{
	ErrDiskFull,
	ErrPermissionDenied,
	ErrNotFound,
	ErrInvalidIndex,
	ErrEmptyNote,
	ErrInvalidURL,
	ErrInvalidPath,
	ErrInvalidTimestamp,
	ErrConflictingFlags,
	ErrUnknownBackend,
	ErrNotTerminal,
	ErrEditor,
	ErrOpen,
	ErrStorage,
}

// GetSuggestion returns a suggestion for an error, if available.
// A UserError's own suggestion wins over the generic one for its sentinel.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for _, knownErr := range suggestionOrder {
		if errors.Is(err, knownErr) {
			return Suggestions[knownErr]
		}
	}

	return ""
}

// FormatError formats an error with optional suggestion.
func FormatError(err error) string {
	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}
