package storage

import (
	"database/sql"
	"embed"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	// Registers the sqlite3 database driver for migrations.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/manav03panchal/recall/internal/errors"
	"github.com/manav03panchal/recall/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator is the part of migrate.Migrate the sqlite backend needs.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator for a database URL.
type MigrationEngine func(databaseURL string) (Migrator, error)

// DefaultMigrationEngine runs the embedded migrations.
func DefaultMigrationEngine(databaseURL string) (Migrator, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// MigrateUp applies all pending migrations. No pending migrations is not an error.
func MigrateUp(engine MigrationEngine, databaseURL string) (err error) {
	m, err := engine(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}

// SQLitePersister stores records in the notes table of a SQLite database.
type SQLitePersister struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (and migrates) the database file at path.
func OpenSQLite(path string) (*SQLitePersister, error) {
	return OpenSQLiteWithEngine(path, DefaultMigrationEngine)
}

// OpenSQLiteWithEngine opens the database file at path using engine for migrations.
func OpenSQLiteWithEngine(path string, engine MigrationEngine) (*SQLitePersister, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite backend needs a file path")
	}
	if err := EnsureDirectory(filepath.Dir(path)); err != nil {
		return nil, err
	}

	if err := MigrateUp(engine, "sqlite3://"+filepath.ToSlash(path)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLitePersister{db: db, path: path}, nil
}

// Load reads every row in id order.
func (p *SQLitePersister) Load() ([]*model.Record, error) {
	rows, err := p.db.Query(`SELECT id, created_at, archived, kind, title, body FROM notes ORDER BY id`)
	if err != nil {
		return nil, errors.NewStorageError("load", p.path, err)
	}
	defer rows.Close()

	var records []*model.Record
	for rows.Next() {
		var (
			r        model.Record
			created  int64
			archived bool
			kind     string
		)
		if err := rows.Scan(&r.ID, &created, &archived, &kind, &r.Title, &r.Body); err != nil {
			return nil, errors.NewStorageError("load", p.path, err)
		}
		if r.Kind, err = model.ParseKind(kind); err != nil {
			return nil, errors.NewStorageError("load", p.path, err)
		}
		r.Key = model.GenerateRecordKey(r.ID)
		r.CreatedAt = time.Unix(created, 0)
		r.Active = !archived
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("load", p.path, err)
	}
	if err := checkRecords(records); err != nil {
		return nil, errors.NewStorageError("load", p.path, err)
	}
	return records, nil
}

// Save replaces every row inside one transaction.
func (p *SQLitePersister) Save(records []*model.Record) (err error) {
	if err := checkRecords(records); err != nil {
		return errors.NewStorageError("save", p.path, err)
	}

	tx, err := p.db.Begin()
	if err != nil {
		return errors.NewStorageError("save", p.path, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM notes`); err != nil {
		return errors.NewStorageError("save", p.path, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO notes (id, created_at, archived, kind, title, body) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewStorageError("save", p.path, err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err = stmt.Exec(r.ID, r.CreatedAt.Unix(), !r.Active, string(r.Kind), r.Title, r.Body); err != nil {
			return errors.NewStorageError("save", p.path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.NewStorageError("save", p.path, err)
	}
	return nil
}

// Backend returns BackendSQLite.
func (p *SQLitePersister) Backend() Backend {
	return BackendSQLite
}

// Path returns the database file.
func (p *SQLitePersister) Path() string {
	return p.path
}

// Close closes the database.
func (p *SQLitePersister) Close() error {
	return p.db.Close()
}
