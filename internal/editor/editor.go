// Package editor composes note text in the user's text editor.
package editor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/logging"
)

// DefaultEditor is used when nothing is configured.
const DefaultEditor = "vi"

// Editor runs an editor program on a temporary file.
type Editor struct {
	// Command is the configured editor_command; the file path is appended.
	Command []string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// New returns an Editor attached to the process's terminal.
func New(command []string) *Editor {
	return &Editor{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Resolve returns the editor command line: the configured command, else
// $VISUAL, else $EDITOR, else vi.
func (e *Editor) Resolve() []string {
	if len(e.Command) > 0 {
		return e.Command
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}
	return []string{DefaultEditor}
}

// Edit opens initial in the editor and returns the saved text, trimmed.
func (e *Editor) Edit(initial string) (string, error) {
	command := e.Resolve()
	if strings.TrimSpace(command[0]) == "" {
		return "", editorError("the first entry in editor_command must be the path to a text editor program", nil)
	}

	file, err := os.CreateTemp("", "recall-*.txt")
	if err != nil {
		return "", editorError("could not create temp file", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.WriteString(initial); err != nil {
		file.Close()
		return "", editorError("could not write temp file", err)
	}
	if err := file.Close(); err != nil {
		return "", editorError("could not write temp file", err)
	}

	args := append(append([]string{}, command[1:]...), path)
	cmd := exec.Command(command[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	logging.DebugLog("starting editor", "command", command[0], logging.KeyPath, path)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", editorError(fmt.Sprintf("editor exited with code %d", exitErr.ExitCode()), err)
		}
		return "", editorError(fmt.Sprintf("could not run %s", command[0]), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", editorError("could not read temp file", err)
	}
	return strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n")), nil
}

func editorError(message string, cause error) error {
	if cause == nil {
		return errors.NewSystemError(message, errors.ErrEditor)
	}
	return errors.NewSystemError(fmt.Sprintf("%s: %v", message, cause),
		fmt.Errorf("%w: %w", errors.ErrEditor, cause))
}
