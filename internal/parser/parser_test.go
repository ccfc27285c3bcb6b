package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/recall/internal/errors"
)

// Wednesday
var now = time.Date(2026, 10, 14, 15, 45, 30, 0, time.Local)

func TestIsIndex(t *testing.T) {
	tests := map[string]bool{
		"0":        true,
		"12":       true,
		" 3 ":      true,
		"":         false,
		"-1":       false,
		"1.5":      false,
		"+2":       false,
		"Take":     false,
		"2 things": false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsIndex(in), "%q", in)
	}
}

func TestParseIndex(t *testing.T) {
	n, err := ParseIndex("7")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	for _, bad := range []string{"", "-1", "x", "99999999999999999999999"} {
		_, err := ParseIndex(bad)
		require.Error(t, err, bad)
		assert.ErrorIs(t, err, errors.ErrInvalidIndex, bad)
		assert.True(t, errors.IsUserError(err))
	}
}

func TestParseSinceKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"now", now},
		{"today", time.Date(2026, 10, 14, 0, 0, 0, 0, time.Local)},
		{"Yesterday", time.Date(2026, 10, 13, 0, 0, 0, 0, time.Local)},
		{"this week", time.Date(2026, 10, 12, 0, 0, 0, 0, time.Local)},
		{"last week", time.Date(2026, 10, 5, 0, 0, 0, 0, time.Local)},
		{"this month", time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)},
		{"last month", time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)},
		{"this quarter", time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)},
		{"previous year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)},
		{"this hour", time.Date(2026, 10, 14, 15, 0, 0, 0, time.Local)},
		{"last day", time.Date(2026, 10, 13, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSince(tt.input, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestParseSinceShorthand(t *testing.T) {
	tests := map[string]time.Time{
		"30m": now.Add(-30 * time.Minute),
		"12h": now.Add(-12 * time.Hour),
		"3d":  now.AddDate(0, 0, -3),
		"2W":  now.AddDate(0, 0, -14),
	}
	for in, want := range tests {
		got, err := ParseSince(in, now)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: want %v, got %v", in, want, got)
	}
}

func TestParseSinceNaturalLanguage(t *testing.T) {
	got, err := ParseSince("2 hours ago", now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(-2*time.Hour), got, time.Minute)
}

func TestParseSinceInvalid(t *testing.T) {
	for _, bad := range []string{"", "   ", "not a time at all xyzzy"} {
		_, err := ParseSince(bad, now)
		require.Error(t, err, bad)
		assert.ErrorIs(t, err, errors.ErrInvalidTimestamp)

		var tpe *TimeParseError
		require.ErrorAs(t, err, &tpe)
		assert.Equal(t, "since", tpe.Field)
	}
}

func TestTimeParseErrorToUserError(t *testing.T) {
	ue := NewSinceError("soonish").ToUserError()
	assert.Equal(t, "since", ue.Field)
	assert.Equal(t, "soonish", ue.Value)
	assert.NotEmpty(t, ue.Suggestion)
	assert.ErrorIs(t, ue, errors.ErrInvalidTimestamp)
}
