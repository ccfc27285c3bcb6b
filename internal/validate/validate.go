// Package validate provides input validation helpers for the Recall CLI.
package validate

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/recall/internal/errors"
)

const (
	// MaxTitleLength is the maximum length for a note title.
	MaxTitleLength = 1024
	// MaxTextLength is the maximum length for a text note body.
	MaxTextLength = 64 * 1024
	// MaxURLLength is the maximum length for a URL.
	MaxURLLength = 2048
)

// linkSchemes are the schemes a link note may use. Schemes in hostSchemes need a host.
var (
	linkSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "file": true, "mailto": true}
	hostSchemes = map[string]bool{"http": true, "https": true, "ftp": true}
)

// Title validates the positional note text.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewUsageError(errors.ErrEmptyNote,
			"Note text cannot be empty", errors.Suggestions[errors.ErrEmptyNote])
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserError(
			"Note text too long",
			"Note text must be 1024 characters or fewer; use --text or --edit for longer notes")
	}
	return nil
}

// Text validates the body of a text note.
func Text(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.NewUsageError(errors.ErrEmptyNote,
			"Text note cannot be empty", "Write something in the editor or pass --text \"...\"")
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return errors.NewUserError(
			"Text note too long",
			"Text notes must be 65536 characters or fewer")
	}
	return nil
}

// Link validates a URL for a link note.
func Link(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return errors.NewUsageError(errors.ErrInvalidURL, "URL cannot be empty", "")
	}
	if len(rawURL) > MaxURLLength {
		return errors.NewUsageError(errors.ErrInvalidURL, "URL too long", "URLs must be 2048 characters or fewer")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return invalidURL(rawURL, "Invalid URL format")
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !linkSchemes[scheme] {
		return invalidURL(rawURL, "Invalid URL scheme")
	}
	if hostSchemes[scheme] && parsed.Hostname() == "" {
		return invalidURL(rawURL, "Invalid URL: missing hostname")
	}
	if scheme == "file" && parsed.Path == "" {
		return invalidURL(rawURL, "Invalid URL: missing path")
	}
	if scheme == "mailto" && parsed.Opaque == "" {
		return invalidURL(rawURL, "Invalid URL: missing address")
	}
	return nil
}

func invalidURL(rawURL, message string) error {
	ue := errors.NewUserErrorWithField("link", rawURL, message, errors.Suggestions[errors.ErrInvalidURL])
	ue.Cause = errors.ErrInvalidURL
	return ue
}

// ExpandPath expands a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.NewUsageError(errors.ErrInvalidPath, "Path cannot be empty", "")
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.NewSystemError("cannot expand ~: no home directory", err)
		}
		path = filepath.Join(home, path[1:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		ue := errors.NewUserErrorWithField("path", path, "Invalid path", errors.Suggestions[errors.ErrInvalidPath])
		ue.Cause = errors.ErrInvalidPath
		return "", ue
	}
	return abs, nil
}
