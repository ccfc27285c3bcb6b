// Package notes implements the record store behind every recall command.
//
// A Store is opened over a storage.Persister, loads every record once and
// writes the complete list back after each mutation. A mutation whose save
// fails is undone in memory so the store never disagrees with what is on disk.
package notes

import (
	"fmt"
	"time"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/logging"
	"github.com/manav03panchal/recall/internal/model"
	"github.com/manav03panchal/recall/internal/storage"
)

// Clock returns the current time.
type Clock func() time.Time

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp new records.
func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.now = c
		}
	}
}

// Store holds the ordered list of records; a record's id equals its position.
type Store struct {
	p       storage.Persister
	records []*model.Record
	now     Clock
}

// Open loads every record from p.
func Open(p storage.Persister, opts ...Option) (*Store, error) {
	s := &Store{p: p, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	records, err := p.Load()
	if err != nil {
		return nil, errors.NewStorageError("load", p.Path(), err)
	}
	for i, r := range records {
		if r.ID != i {
			return nil, errors.NewStorageError("load", p.Path(),
				fmt.Errorf("record ids are not contiguous: expected %d, found %d", i, r.ID))
		}
		r.CreatedAt = r.CreatedAt.Local()
	}
	s.records = records

	logging.LogOperation("open",
		logging.KeyBackend, string(p.Backend()),
		logging.KeyCount, len(records))
	return s, nil
}

// Close closes the underlying persister.
func (s *Store) Close() error {
	return s.p.Close()
}

// Backend returns the backend the store is persisted with.
func (s *Store) Backend() storage.Backend {
	return s.p.Backend()
}

// Path returns where the store is persisted.
func (s *Store) Path() string {
	return s.p.Path()
}

// Len returns the number of records, archived ones included.
func (s *Store) Len() int {
	return len(s.records)
}

// Create appends a new active record and saves the store.
func (s *Store) Create(title string, kind model.Kind, body string) (*model.Record, error) {
	r := model.NewRecord(len(s.records), kind, title, body, s.now())
	s.records = append(s.records, r)

	if err := s.save(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return nil, err
	}

	logging.LogOperation("create", logging.KeyID, r.ID, logging.KeyKind, string(kind))
	return r.Clone(), nil
}

// List returns every record in id order.
func (s *Store) List() []*model.Record {
	out := make([]*model.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Clone())
	}
	return out
}

// ListActive returns the records that have not been archived, in id order.
func (s *Store) ListActive() []*model.Record {
	var out []*model.Record
	for _, r := range s.records {
		if r.Active {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Get returns the record with the given id, archived or not.
func (s *Store) Get(id int) (*model.Record, error) {
	r, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return r.Clone(), nil
}

// Resolve returns the record at a display index, a position in ListActive.
func (s *Store) Resolve(index int) (*model.Record, error) {
	if index >= 0 {
		pos := 0
		for _, r := range s.records {
			if !r.Active {
				continue
			}
			if pos == index {
				return r.Clone(), nil
			}
			pos++
		}
	}
	return nil, errors.NewIndexNotFoundError(index)
}

// Archive marks the record inactive and saves the store.
// Archiving an archived record saves again and succeeds.
func (s *Store) Archive(id int) (*model.Record, error) {
	r, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	was := r.Active
	r.Active = false
	if err := s.save(); err != nil {
		r.Active = was
		return nil, err
	}

	logging.LogOperation("archive", logging.KeyID, id)
	return r.Clone(), nil
}

// Import appends copies of records under fresh ids and saves once.
// Creation time, kind, title, body and active state are kept.
func (s *Store) Import(records []*model.Record) ([]*model.Record, error) {
	start := len(s.records)
	added := make([]*model.Record, 0, len(records))
	for _, in := range records {
		if in == nil {
			continue
		}
		kind := in.Kind
		if kind == "" {
			kind = model.KindNone
		}
		if !kind.IsValid() {
			return nil, errors.NewUserErrorWithField("kind", string(in.Kind),
				fmt.Sprintf("Cannot import note %d", in.ID), "Use a file written by 'recall export'")
		}
		created := in.CreatedAt
		if created.IsZero() {
			created = s.now()
		}
		r := model.NewRecord(start+len(added), kind, in.Title, in.Body, created.Local())
		r.Active = in.Active
		added = append(added, r)
	}
	if len(added) == 0 {
		return nil, nil
	}

	s.records = append(s.records, added...)
	if err := s.save(); err != nil {
		s.records = s.records[:start]
		return nil, err
	}

	logging.LogOperation("import", logging.KeyCount, len(added))
	out := make([]*model.Record, len(added))
	for i, r := range added {
		out[i] = r.Clone()
	}
	return out, nil
}

func (s *Store) lookup(id int) (*model.Record, error) {
	if id < 0 || id >= len(s.records) {
		return nil, errors.NewNotFoundError(id)
	}
	return s.records[id], nil
}

func (s *Store) save() error {
	if err := s.p.Save(s.records); err != nil {
		logging.Warn("saving notes failed", logging.KeyBackend, string(s.p.Backend()), logging.KeyError, err)
		return errors.NewStorageError("save", s.p.Path(), err)
	}
	return nil
}
