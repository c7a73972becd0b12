// Package storage defines the Storage interface — the contract every
// persistence backend satisfies — and the error conditions backends
// report.
//
// The shell only knows about this interface. Choosing JSON, SQLite or a
// spreadsheet is a one-line decision in main.go.
package storage

import (
	"errors"

	"github.com/aanand-mishra/enrollments/internal/types"
)

// Error conditions. Backends wrap these with %w so callers can classify
// a failure with errors.Is while still seeing the underlying cause.
var (
	// ErrFileMissing — the load path does not exist.
	ErrFileMissing = errors.New("data file does not exist")

	// ErrReadFailure — the file exists but could not be read or parsed.
	ErrReadFailure = errors.New("data file could not be read")

	// ErrWriteFailure — the records could not be serialised or written.
	ErrWriteFailure = errors.New("data file could not be written")
)

// Storage persists the whole ordered list of records at once.
type Storage interface {
	// Load reads every stored record and appends it to dst in stored
	// order, returning the extended slice. dst is never replaced: on
	// error the returned slice holds dst plus whatever was read before
	// the failure.
	Load(dst []types.StudentRecord) ([]types.StudentRecord, error)

	// Save replaces the stored data with records. Nothing is merged and
	// no backup is kept.
	Save(records []types.StudentRecord) error

	// Path is the file the backend reads and writes.
	Path() string
}
