package storage

import (
	"strconv"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/model"
)

// schemaVersion is written next to the records so future layouts can migrate.
const schemaVersion = 1

// BadgerPersister stores one JSON value per record in a Badger database.
type BadgerPersister struct {
	db *DB
}

// OpenBadger opens a Badger-backed persister.
func OpenBadger(opts Options) (*BadgerPersister, error) {
	db, err := Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerPersister{db: db}, nil
}

// Load reads every record, in id order.
func (p *BadgerPersister) Load() ([]*model.Record, error) {
	records, err := GetAllByPrefix(p.db, model.PrefixRecord+":", func() *model.Record {
		return &model.Record{}
	})
	if err != nil {
		return nil, errors.NewStorageError("load", p.Path(), err)
	}
	if err := checkRecords(records); err != nil {
		return nil, errors.NewStorageError("load", p.Path(), err)
	}
	sortByID(records)
	return records, nil
}

// Save replaces the stored records in a single transaction.
func (p *BadgerPersister) Save(records []*model.Record) error {
	if err := checkRecords(records); err != nil {
		return errors.NewStorageError("save", p.Path(), err)
	}

	models := make([]model.Model, 0, len(records))
	for _, r := range records {
		c := r.Clone()
		c.Key = model.GenerateRecordKey(r.ID)
		models = append(models, c)
	}
	extra := map[string][]byte{
		model.KeyVersion: []byte(strconv.Itoa(schemaVersion)),
	}

	if err := p.db.ReplacePrefix(model.PrefixRecord+":", models, extra); err != nil {
		return errors.NewStorageError("save", p.Path(), err)
	}
	return nil
}

// Backend returns BackendBadger.
func (p *BadgerPersister) Backend() Backend {
	return BackendBadger
}

// Path returns the database directory.
func (p *BadgerPersister) Path() string {
	return p.db.Path()
}

// Close closes the database.
func (p *BadgerPersister) Close() error {
	return p.db.Close()
}
