// Package parser turns command-line text into note indexes and times.
package parser

import (
	"strconv"
	"strings"

	"github.com/manav03panchal/recall/internal/errors"
)

// IsIndex reports whether s is written as a display index: ASCII digits only.
func IsIndex(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseIndex parses a display index.
func ParseIndex(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if !IsIndex(trimmed) {
		return 0, errors.NewUsageError(errors.ErrInvalidIndex,
			"Note index must be a non-negative number", "Run 'recall' to list notes with their index")
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errors.NewUsageError(errors.ErrInvalidIndex,
			"Note index is too large", "Run 'recall' to list notes with their index")
	}
	return n, nil
}
