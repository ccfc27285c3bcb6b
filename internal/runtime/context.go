// Package runtime provides application runtime context for Recall.
package runtime

import (
	"io"
	"os"

	"github.com/manav03panchal/recall/internal/config"
	"github.com/manav03panchal/recall/internal/editor"
	"github.com/manav03panchal/recall/internal/notes"
	"github.com/manav03panchal/recall/internal/opener"
	"github.com/manav03panchal/recall/internal/output"
	"github.com/manav03panchal/recall/internal/storage"
)

// DatabaseEnv overrides the configured storage location.
// The value ":memory:" keeps badger data in memory.
const DatabaseEnv = "RECALL_DATABASE"

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	Store     *notes.Store
	Formatter *output.Formatter
	Opener    *opener.Opener
	Editor    *editor.Editor

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	Config    *config.Config
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// Clock stamps new notes. Nil uses time.Now.
	Clock notes.Clock
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Config:    config.Default(),
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	backend, err := storage.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	path := cfg.DBPath
	inMemory := opts.InMemory
	// Check for environment variable override
	if envPath := os.Getenv(DatabaseEnv); envPath != "" {
		if envPath == ":memory:" {
			inMemory = true
		} else {
			path = envPath
		}
	}
	// Only badger has an in-memory mode.
	if inMemory {
		backend = storage.BackendBadger
		path = ""
	}

	p, err := storage.OpenPersister(storage.PersisterOptions{
		Backend:  backend,
		Path:     path,
		InMemory: inMemory,
	})
	if err != nil {
		return nil, err
	}

	var storeOpts []notes.Option
	if opts.Clock != nil {
		storeOpts = append(storeOpts, notes.WithClock(opts.Clock))
	}
	store, err := notes.Open(p, storeOpts...)
	if err != nil {
		p.Close()
		return nil, err
	}

	// Create formatter
	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}
	if opts.Stdout != nil {
		formatter.Writer = opts.Stdout
	}
	if opts.Stderr != nil {
		formatter.ErrWriter = opts.Stderr
	}

	ed := editor.New(cfg.EditorCommand)
	ed.Stderr = formatter.ErrWriter

	return &Context{
		Config:    cfg,
		Store:     store,
		Formatter: formatter,
		Opener:    opener.New(cfg.OpenCommand),
		Editor:    ed,
		Debug:     opts.Debug,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.IsJSON()
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Errorf("[DEBUG] "+format+"\n", args...)
	}
}
