package storage

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/logging"
	"github.com/manav03panchal/recall/internal/model"
)

// Backend names a persistence implementation.
type Backend string

const (
	BackendBadger Backend = "badger"
	BackendSQLite Backend = "sqlite"
	BackendJSON   Backend = "json"
)

// Backends returns the supported backends.
func Backends() []Backend {
	return []Backend{BackendBadger, BackendSQLite, BackendJSON}
}

// ParseBackend parses a backend name. Empty selects badger.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendBadger:
		return BackendBadger, nil
	case BackendSQLite, "sqlite3":
		return BackendSQLite, nil
	case BackendJSON:
		return BackendJSON, nil
	default:
		names := make([]string, 0, len(Backends()))
		for _, b := range Backends() {
			names = append(names, string(b))
		}
		err := errors.NewUserErrorWithField("backend", s,
			"Unknown storage backend", "Use one of: "+strings.Join(names, ", "))
		err.Cause = errors.ErrUnknownBackend
		return "", err
	}
}

// Persister loads and saves the complete, ordered list of records.
// Save replaces everything that was stored before, all or nothing.
type Persister interface {
	Load() ([]*model.Record, error)
	Save(records []*model.Record) error
	Backend() Backend
	Path() string
	Close() error
}

// PersisterOptions selects and configures a Persister.
type PersisterOptions struct {
	Backend Backend
	// Path is the badger directory, sqlite file or json file. Empty uses DefaultPathFor.
	Path string
	// InMemory keeps badger data in memory. Only badger supports it.
	InMemory bool
}

// DefaultPathFor returns the default location of a backend's data.
func DefaultPathFor(b Backend) string {
	switch b {
	case BackendSQLite:
		return filepath.Join(DataDir(), "notes.db")
	case BackendJSON:
		return filepath.Join(DataDir(), "notes.json")
	default:
		return DefaultPath()
	}
}

// OpenPersister opens the configured backend.
// Failures are reported as StorageErrors with op "open".
func OpenPersister(opts PersisterOptions) (Persister, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendBadger
	}
	path := opts.Path
	if path == "" && !opts.InMemory {
		path = DefaultPathFor(backend)
	}

	logging.DebugLog("opening notes", logging.KeyBackend, string(backend), logging.KeyPath, path)

	var (
		p   Persister
		err error
	)
	switch backend {
	case BackendBadger:
		p, err = OpenBadger(Options{Path: path, InMemory: opts.InMemory})
	case BackendSQLite:
		p, err = OpenSQLite(path)
	case BackendJSON:
		p, err = OpenJSONFile(path)
	default:
		_, err = ParseBackend(string(backend))
		return nil, err
	}
	if err != nil {
		return nil, errors.NewStorageError("open", path, err)
	}
	return p, nil
}

// sortByID orders records by ascending id.
func sortByID(records []*model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
}

// checkRecords rejects records that cannot be stored faithfully.
func checkRecords(records []*model.Record) error {
	seen := make(map[int]bool, len(records))
	for _, r := range records {
		if r == nil {
			return fmt.Errorf("nil record")
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate record id %d", r.ID)
		}
		if !r.Kind.IsValid() {
			return fmt.Errorf("record %d has unknown kind %q", r.ID, r.Kind)
		}
		seen[r.ID] = true
	}
	return nil
}
