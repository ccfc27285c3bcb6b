package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/model"
)

// Document is the on-disk layout of the json backend and of exports.
type Document struct {
	Version int             `json:"version"`
	Notes   []*model.Record `json:"notes"`
}

// EncodeDocument renders records as an indented JSON document.
func EncodeDocument(records []*model.Record) ([]byte, error) {
	doc := Document{Version: schemaVersion, Notes: records}
	if doc.Notes == nil {
		doc.Notes = []*model.Record{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeDocument parses a JSON document. Empty input, a bare array of
// records and the versioned document are all accepted.
func DecodeDocument(data []byte) ([]*model.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var records []*model.Record
	if data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	} else {
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		if doc.Version > schemaVersion {
			return nil, fmt.Errorf("document version %d is newer than supported version %d", doc.Version, schemaVersion)
		}
		records = doc.Notes
	}

	for _, r := range records {
		if r != nil {
			r.Key = model.GenerateRecordKey(r.ID)
		}
	}
	return records, nil
}

// JSONFilePersister keeps all records in one JSON file, rewritten atomically.
type JSONFilePersister struct {
	path string
}

// OpenJSONFile returns a persister for the file at path, creating its directory.
// The file itself is created on the first save.
func OpenJSONFile(path string) (*JSONFilePersister, error) {
	if path == "" {
		return nil, fmt.Errorf("json backend needs a file path")
	}
	if err := EnsureDirectory(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &JSONFilePersister{path: path}, nil
}

// Load reads the file. A missing or empty file is an empty store.
func (p *JSONFilePersister) Load() ([]*model.Record, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorageError("load", p.path, err)
	}

	records, err := DecodeDocument(data)
	if err != nil {
		return nil, errors.NewStorageError("load", p.path, err)
	}
	if err := checkRecords(records); err != nil {
		return nil, errors.NewStorageError("load", p.path, err)
	}
	sortByID(records)
	return records, nil
}

// Save rewrites the file through a temp file and rename.
func (p *JSONFilePersister) Save(records []*model.Record) error {
	if err := checkRecords(records); err != nil {
		return errors.NewStorageError("save", p.path, err)
	}
	data, err := EncodeDocument(records)
	if err != nil {
		return errors.NewStorageError("save", p.path, err)
	}
	if err := SafeWrite(p.path, data, 0600); err != nil {
		return errors.NewStorageError("save", p.path, err)
	}
	return nil
}

// Backend returns BackendJSON.
func (p *JSONFilePersister) Backend() Backend {
	return BackendJSON
}

// Path returns the file path.
func (p *JSONFilePersister) Path() string {
	return p.path
}

// Close is a no-op; the file is only open during Load and Save.
func (p *JSONFilePersister) Close() error {
	return nil
}
