package storage

import (
	"encoding/json"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/recall/internal/model"
)

// ReplacePrefix makes models the only values under prefix. Keys under prefix
// that no model claims are deleted, and extra is written alongside, all in
// one transaction.
func (d *DB) ReplacePrefix(prefix string, models []model.Model, extra map[string][]byte) error {
	values := make(map[string][]byte, len(models)+len(extra))
	for _, v := range models {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		values[v.GetKey()] = data
	}
	for key, data := range extra {
		values[key] = data
	}

	return d.db.Update(func(txn *badger.Txn) error {
		existing, err := keysWithPrefix(txn, prefix)
		if err != nil {
			return err
		}
		for _, key := range existing {
			if _, ok := values[key]; ok {
				continue
			}
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		for key, data := range values {
			if err := txn.Set([]byte(key), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func keysWithPrefix(txn *badger.Txn, prefix string) ([]string, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys []string
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, string(it.Item().KeyCopy(nil)))
	}
	return keys, nil
}

// GetAllByPrefix decodes every value under prefix, in key order.
func GetAllByPrefix[T model.Model](d *DB, prefix string, newFunc func() T) ([]T, error) {
	var results []T
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v := newFunc()
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, v)
			}); err != nil {
				return err
			}
			v.SetKey(string(item.KeyCopy(nil)))
			results = append(results, v)
		}
		return nil
	})
	return results, err
}
