// Package opener hands links and paths to the operating system.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/logging"
	"github.com/manav03panchal/recall/internal/model"
)

// Placeholder in a configured command is replaced by the target.
// Without it the target is appended.
const Placeholder = "{}"

// Runner starts a program without waiting for it to exit.
type Runner func(name string, args ...string) error

// Opener launches the program that opens a target.
type Opener struct {
	// Command overrides the platform default, e.g. ["firefox", "--new-tab"].
	Command []string
	goos    string
	start   Runner
}

// New returns an Opener for the current platform.
func New(command []string) *Opener {
	return NewWithRunner(command, runtime.GOOS, Start)
}

// NewWithRunner returns an Opener for goos that launches through run.
func NewWithRunner(command []string, goos string, run Runner) *Opener {
	return &Opener{Command: command, goos: goos, start: run}
}

// CommandFor returns the program and arguments that open target.
func (o *Opener) CommandFor(target string) (string, []string, error) {
	if len(o.Command) > 0 {
		args := make([]string, 0, len(o.Command))
		replaced := false
		for _, a := range o.Command[1:] {
			if strings.Contains(a, Placeholder) {
				a = strings.ReplaceAll(a, Placeholder, target)
				replaced = true
			}
			args = append(args, a)
		}
		if !replaced {
			args = append(args, target)
		}
		return o.Command[0], args, nil
	}

	switch o.goos {
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		return "xdg-open", []string{target}, nil
	default:
		return "", nil, errors.NewSystemError(fmt.Sprintf("unsupported operating system: %s", o.goos), errors.ErrOpen)
	}
}

// Open launches the opener for target and returns once it has started.
func (o *Opener) Open(target string) error {
	name, args, err := o.CommandFor(target)
	if err != nil {
		return err
	}

	logging.DebugLog("opening", logging.KeyPath, target, "command", name)
	if err := o.start(name, args...); err != nil {
		return errors.NewSystemError(fmt.Sprintf("could not run %s: %v", name, err),
			fmt.Errorf("%w: %w", errors.ErrOpen, err))
	}
	return nil
}

// OpenRecord opens what a record points at. Plain and text notes have
// nothing to open and report false.
func (o *Opener) OpenRecord(r *model.Record) (bool, error) {
	switch r.Kind {
	case model.KindLink, model.KindPath:
		return true, o.Open(r.Body)
	case model.KindNone, model.KindText:
		return false, nil
	default:
		return false, fmt.Errorf("unknown note kind %q", r.Kind)
	}
}

// Start runs name detached from the current process.
func Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
