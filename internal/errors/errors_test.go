package errors

import (
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Type Tests
// =============================================================================

func TestUserError(t *testing.T) {
	t.Run("message_only", func(t *testing.T) {
		err := NewUserError("Note text is required", "Quote the text")
		assert.Equal(t, "Note text is required", err.Error())
		assert.Equal(t, "Quote the text", err.Suggestion)
	})

	t.Run("with_field", func(t *testing.T) {
		err := NewUserErrorWithField("link", "ftp:/x", "Invalid URL", "Use https://")
		assert.Equal(t, "Invalid URL: 'ftp:/x'", err.Error())
	})

	t.Run("usage_error_matches_sentinel", func(t *testing.T) {
		err := NewUsageError(ErrInvalidIndex, "Invalid note index", "")
		assert.ErrorIs(t, err, ErrInvalidIndex)
		assert.True(t, IsUserError(err))
	})
}

func TestStorageError(t *testing.T) {
	cause := &os.PathError{Op: "open", Path: "/nope", Err: syscall.EACCES}
	err := NewStorageError("load", "/nope", cause)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, syscall.EACCES)
	assert.Contains(t, err.Error(), "could not load notes at /nope")

	var se *StorageError
	require.True(t, As(err, &se))
	assert.Equal(t, "load", se.Op)

	t.Run("nil_stays_nil", func(t *testing.T) {
		assert.NoError(t, NewStorageError("save", "", nil))
	})

	t.Run("not_double_wrapped", func(t *testing.T) {
		again := NewStorageError("save", "/other", err)
		assert.Same(t, err, again)
	})
}

func TestNotFoundError(t *testing.T) {
	byID := NewNotFoundError(7)
	assert.Equal(t, "no note with id 7", byID.Error())
	assert.ErrorIs(t, byID, ErrNotFound)

	byIndex := NewIndexNotFoundError(2)
	assert.Equal(t, "no note at index 2", byIndex.Error())
	assert.True(t, IsNotFound(fmt.Errorf("archive: %w", byIndex)))
}

// =============================================================================
// Classification Tests
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category Category
		exit     int
	}{
		{"nil", nil, CategoryUnknown, ExitOK},
		{"user", NewUserError("bad", ""), CategoryUser, ExitUsage},
		{"not_found", NewIndexNotFoundError(3), CategoryNotFound, ExitNotFound},
		{"wrapped_not_found", Wrap(NewNotFoundError(3), "get"), CategoryNotFound, ExitNotFound},
		{"storage", NewStorageError("save", "", syscall.EIO), CategoryStorage, ExitStorage},
		{"system", NewSystemError("editor crashed", ErrEditor), CategorySystem, ExitFailure},
		{"errno", syscall.EROFS, CategorySystem, ExitFailure},
		{"plain", New("boom"), CategoryUnknown, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, Classify(tt.err))
			assert.Equal(t, tt.exit, ExitCode(tt.err))
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "user", CategoryUser.String())
	assert.Equal(t, "not_found", CategoryNotFound.String())
	assert.Equal(t, "storage", CategoryStorage.String())
	assert.Equal(t, "system", CategorySystem.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

// =============================================================================
// Suggestion Tests
// =============================================================================

func TestGetSuggestion(t *testing.T) {
	t.Run("sentinel", func(t *testing.T) {
		assert.Equal(t, Suggestions[ErrNotFound], GetSuggestion(NewIndexNotFoundError(1)))
	})

	t.Run("user_error_own_suggestion_wins", func(t *testing.T) {
		err := NewUsageError(ErrInvalidIndex, "bad index", "use a number")
		assert.Equal(t, "use a number", GetSuggestion(err))
	})

	t.Run("disk_full_beats_storage", func(t *testing.T) {
		err := NewStorageError("save", "", NewSystemErrorWithOp("write", "disk full", ErrDiskFull))
		assert.Equal(t, Suggestions[ErrDiskFull], GetSuggestion(err))
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, GetSuggestion(New("boom")))
		assert.Empty(t, GetSuggestion(nil))
	})
}

func TestFormatError(t *testing.T) {
	err := NewIndexNotFoundError(4)
	assert.Equal(t, "no note at index 4\n"+Suggestions[ErrNotFound], FormatError(err))
	assert.Equal(t, "boom", FormatError(New("boom")))
}

func TestGetSuggestionIsStable(t *testing.T) {
	// Both sentinels are in the chain; the earlier one in suggestionOrder wins every time.
	err := NewUsageError(ErrInvalidIndex, "bad index", "")
	err.Cause = fmt.Errorf("%w: %w", ErrInvalidIndex, ErrStorage)
	for i := 0; i < 50; i++ {
		assert.Equal(t, Suggestions[ErrInvalidIndex], GetSuggestion(err))
	}

	joined := fmt.Errorf("%w; %w", ErrOpen, ErrNotFound)
	for i := 0; i < 50; i++ {
		assert.Equal(t, Suggestions[ErrNotFound], GetSuggestion(joined))
	}
}

func TestEverySuggestionIsReachable(t *testing.T) {
	for sentinel := range Suggestions {
		assert.Contains(t, suggestionOrder, sentinel)
	}
	assert.Len(t, suggestionOrder, len(Suggestions))
}

func TestWrap(t *testing.T) {
	base := New("base")
	err := Wrap(base, "archive")
	assert.Equal(t, "archive: base", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Nil(t, Wrap(nil, "ignored"))
}
