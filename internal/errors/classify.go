package errors

import (
	"errors"
	"syscall"
)

// Category represents the type of error for display and handling purposes.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryUser indicates an error the user can fix (bad input, missing args).
	CategoryUser
	// CategoryNotFound indicates a lookup of a note that does not exist.
	CategoryNotFound
	// CategoryStorage indicates the notes could not be read or written.
	CategoryStorage
	// CategorySystem indicates any other environment problem (editor, opener).
	CategorySystem
)

// Exit codes returned by the CLI.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitStorage  = 4
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategoryNotFound:
		return "not_found"
	case CategoryStorage:
		return "storage"
	case CategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Classify determines the category of an error.
// Not-found and storage failures win over the wrapper type that carries them.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	if IsNotFound(err) {
		return CategoryNotFound
	}
	if IsStorageError(err) {
		return CategoryStorage
	}
	if IsUserError(err) {
		return CategoryUser
	}
	if IsSystemError(err) || isSystemLevel(err) {
		return CategorySystem
	}

	return CategoryUnknown
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch Classify(err) {
	case CategoryUser:
		return ExitUsage
	case CategoryNotFound:
		return ExitNotFound
	case CategoryStorage:
		return ExitStorage
	default:
		return ExitFailure
	}
}

// isSystemLevel checks if an error is a system-level error.
func isSystemLevel(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOSPC, syscall.EACCES, syscall.EPERM, syscall.EIO, syscall.EROFS:
			return true
		}
	}

	return errors.Is(err, ErrDiskFull) || errors.Is(err, ErrPermissionDenied)
}
