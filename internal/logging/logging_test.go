package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.False(t, cfg.JSON)
	assert.NotNil(t, cfg.Output)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.AddSource)
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	t.Run("text_handler_filters_below_level", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelWarn, Output: &buf})

		DebugLog("hidden")
		Warn("shown", KeyID, 3)

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
		assert.Contains(t, out, "id=3")
		assert.False(t, Debug)
	})

	t.Run("json_handler", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})

		DebugLog("note created", KeyID, 0, KeyKind, "link")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "note created", entry["msg"])
		assert.Equal(t, "link", entry["kind"])
		assert.True(t, Debug)
	})
}

func TestLogOperation(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: slog.LevelDebug, Output: &buf})

	LogOperation("archive", KeyID, 2)
	assert.Contains(t, buf.String(), "op=archive")
	assert.Contains(t, buf.String(), "id=2")
}

func TestLoggerDefaultsToWarn(t *testing.T) {
	Init(DefaultConfig())
	assert.NotNil(t, Logger())
	assert.False(t, Debug)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, Logger().Enabled(context.Background(), slog.LevelWarn))
}
