package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/recall/internal/errors"
)

// TimeParseError represents a time parsing error with helpful suggestions.
type TimeParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidTimestamp.
func (e *TimeParseError) Unwrap() error {
	return errors.ErrInvalidTimestamp
}

// SinceExamples provides example --since expressions.
var SinceExamples = []string{
	"today",
	"yesterday",
	"this week",
	"3d",
	"2 hours ago",
	"2026-01-31",
}

// NewSinceError creates a --since parse error with standard examples.
func NewSinceError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "since",
		Message:    "could not parse time",
		Examples:   SinceExamples,
		Suggestion: "Try 'today', 'this week', '3d' or '2 hours ago'.",
	}
}

// ToUserError converts a TimeParseError to a UserError for consistent handling.
func (e *TimeParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	ue := errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
	ue.Cause = e
	return ue
}
