// Package errors provides consistent error types for the Recall CLI.
// It defines two main categories: UserError (fixable by the user) and
// SystemError (storage or environment problems), plus the two failures a
// record store can report: NotFoundError and StorageError.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrNotFound         = errors.New("note not found")
	ErrStorage          = errors.New("storage failure")
	ErrInvalidIndex     = errors.New("invalid note index")
	ErrEmptyNote        = errors.New("note text is required")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrInvalidPath      = errors.New("invalid path")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrConflictingFlags = errors.New("conflicting flags")
	ErrEditor           = errors.New("editor failed")
	ErrOpen             = errors.New("could not open note")
	ErrUnknownBackend   = errors.New("unknown storage backend")
	ErrDiskFull         = errors.New("disk full")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotTerminal      = errors.New("not a terminal")
)

// UserError represents an error that the user can fix.
// Examples: invalid input, missing required arguments, incorrect format.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
	Cause      error  // Sentinel or underlying error (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// NewUsageError creates a UserError that matches the given sentinel.
func NewUsageError(cause error, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
		Cause:      cause,
	}
}

// SystemError represents a system-level error that the user cannot directly fix.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	return e.Message
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
	}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// StorageError reports that the persisted notes could not be read or written.
// It matches ErrStorage and the underlying cause.
type StorageError struct {
	Op   string // "load", "save", "open", "close"
	Path string // Where the notes live, if known
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("could not %s notes at %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("could not %s notes: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// NewStorageError wraps err as a StorageError. A nil err stays nil.
func NewStorageError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Path: path, Err: err}
}

// NotFoundError reports a note lookup that matched nothing.
// ByIndex distinguishes display indexes from persistent ids.
type NotFoundError struct {
	ID      int
	ByIndex bool
}

func (e *NotFoundError) Error() string {
	if e.ByIndex {
		return fmt.Sprintf("no note at index %d", e.ID)
	}
	return fmt.Sprintf("no note with id %d", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a NotFoundError for a persistent id.
func NewNotFoundError(id int) *NotFoundError {
	return &NotFoundError{ID: id}
}

// NewIndexNotFoundError creates a NotFoundError for a display index.
func NewIndexNotFoundError(index int) *NotFoundError {
	return &NotFoundError{ID: index, ByIndex: true}
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// IsNotFound checks if an error is a failed note lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStorageError checks if an error is a storage failure.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// Is is re-exported from the standard errors package for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is re-exported from the standard errors package for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New is re-exported from the standard errors package for convenience.
func New(text string) error {
	return errors.New(text)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
