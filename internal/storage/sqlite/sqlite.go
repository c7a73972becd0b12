// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite keeps everything in a single file, just like the JSON backend,
// so "one list, one file" still holds — but the file can also be opened
// with any SQLite tool for ad-hoc queries.
//
// Each Load/Save opens the database, does its work and closes it again.
// Nothing stays open between menu actions.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aanand-mishra/enrollments/internal/storage"
	"github.com/aanand-mishra/enrollments/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// schema is idempotent — safe to run before every save.
//
//	id          — insertion order; Load sorts on it
//	first_name  — title-cased first name
//	last_name   — title-cased last name
//	course_name — free-form course name
const schema = `
	CREATE TABLE IF NOT EXISTS enrollments (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL,
		course_name TEXT NOT NULL
	)
`

// SQLite is the concrete implementation of storage.Storage.
type SQLite struct {
	path string
	log  *slog.Logger
}

// New returns a SQLite store for the database file at path.
// The file is not opened until the first Load or Save.
func New(path string, log *slog.Logger) *SQLite {
	return &SQLite{path: path, log: log}
}

func (s *SQLite) Path() string { return s.path }

// ─────────────────────────────────────────────────────────────────────────────
// Load appends every stored row to dst, ordered by id.
//
// sql.Open would happily create an empty database for a path that does
// not exist, so the file is checked with os.Stat first and the database
// is then opened read-only (mode=ro).
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Load(dst []types.StudentRecord) ([]types.StudentRecord, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return dst, fmt.Errorf("sqlite.Load: %w: %w", storage.ErrFileMissing, err)
	}

	db, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro")
	if err != nil {
		return dst, fmt.Errorf("sqlite.Load: open db: %w: %w", storage.ErrReadFailure, err)
	}
	defer db.Close()

	rows, err := db.Query(
		"SELECT first_name, last_name, course_name FROM enrollments ORDER BY id",
	)
	if err != nil {
		return dst, fmt.Errorf("sqlite.Load: query: %w: %w", storage.ErrReadFailure, err)
	}
	defer rows.Close() // must close rows to free the connection

	count := 0
	for rows.Next() {
		var first, last, course string
		if err := rows.Scan(&first, &last, &course); err != nil {
			return dst, fmt.Errorf("sqlite.Load: scan row: %w: %w", storage.ErrReadFailure, err)
		}

		rec, err := types.NewStudentRecord(first, last, course)
		if err != nil {
			return dst, fmt.Errorf("sqlite.Load: row %d: %w: %w", count, storage.ErrReadFailure, err)
		}
		dst = append(dst, rec)
		count++
	}

	// rows.Err() captures any error that occurred during iteration.
	if err := rows.Err(); err != nil {
		return dst, fmt.Errorf("sqlite.Load: rows iteration: %w: %w", storage.ErrReadFailure, err)
	}

	s.log.Debug("records loaded", slog.String("path", s.path), slog.Int("count", count))
	return dst, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save replaces the contents of the enrollments table with records.
//
// The DELETE and all INSERTs run inside one transaction: either the new
// list is stored completely or the old one is left untouched.
// Prepared statements keep course names like "'; DROP TABLE" harmless.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Save(records []types.StudentRecord) error {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("sqlite.Save: open db: %w: %w", storage.ErrWriteFailure, err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite.Save: create table: %w: %w", storage.ErrWriteFailure, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite.Save: begin: %w: %w", storage.ErrWriteFailure, err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM enrollments"); err != nil {
		return fmt.Errorf("sqlite.Save: clear: %w: %w", storage.ErrWriteFailure, err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO enrollments (first_name, last_name, course_name) VALUES (?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("sqlite.Save: prepare: %w: %w", storage.ErrWriteFailure, err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.FirstName(), r.LastName(), r.CourseName()); err != nil {
			return fmt.Errorf("sqlite.Save: insert: %w: %w", storage.ErrWriteFailure, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite.Save: commit: %w: %w", storage.ErrWriteFailure, err)
	}

	s.log.Debug("records saved", slog.String("path", s.path), slog.Int("count", len(records)))
	return nil
}
