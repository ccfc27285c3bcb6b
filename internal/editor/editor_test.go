package editor

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/recall/internal/errors"
)

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("editor tests use sh")
	}
}

func newTestEditor(command ...string) *Editor {
	var out bytes.Buffer
	return &Editor{Command: command, Stdin: &bytes.Buffer{}, Stdout: &out, Stderr: &out}
}

func TestResolve(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	assert.Equal(t, []string{DefaultEditor}, newTestEditor().Resolve())

	t.Setenv("EDITOR", "nano -w")
	assert.Equal(t, []string{"nano", "-w"}, newTestEditor().Resolve())

	t.Setenv("VISUAL", "code --wait")
	assert.Equal(t, []string{"code", "--wait"}, newTestEditor().Resolve())

	assert.Equal(t, []string{"hx"}, newTestEditor("hx").Resolve())
}

func TestEditWritesResult(t *testing.T) {
	skipOnWindows(t)

	e := newTestEditor("sh", "-c", `printf '  eggs\r\nmilk\n\n' > "$1"`, "sh")
	got, err := e.Edit("")
	require.NoError(t, err)
	assert.Equal(t, "eggs\nmilk", got)
}

func TestEditSeesInitialText(t *testing.T) {
	skipOnWindows(t)

	e := newTestEditor("sh", "-c", `printf ' more' >> "$1"`, "sh")
	got, err := e.Edit("draft")
	require.NoError(t, err)
	assert.Equal(t, "draft more", got)
}

func TestEditFailures(t *testing.T) {
	skipOnWindows(t)

	t.Run("non_zero_exit", func(t *testing.T) {
		_, err := newTestEditor("sh", "-c", "exit 3").Edit("")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrEditor)
		assert.Contains(t, err.Error(), "code 3")
	})

	t.Run("missing_program", func(t *testing.T) {
		_, err := newTestEditor("recall-test-no-such-editor").Edit("")
		assert.ErrorIs(t, err, errors.ErrEditor)
		assert.True(t, errors.IsSystemError(err))
	})

	t.Run("blank_program", func(t *testing.T) {
		_, err := newTestEditor(" ").Edit("")
		assert.ErrorIs(t, err, errors.ErrEditor)
	})
}
