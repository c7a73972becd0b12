// Package jsonfile stores records as a JSON array in a single file:
//
//	[
//	  {
//	    "FirstName": "John",
//	    "LastName": "Doe",
//	    "CourseName": "Python 100"
//	  }
//	]
//
// Reads and writes are whole-file. The file handle is opened right
// before the operation and closed on every return path.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aanand-mishra/enrollments/internal/storage"
	"github.com/aanand-mishra/enrollments/internal/types"
)

// entry is the on-disk shape of one record. Pointers let Load tell a
// missing key apart from an empty string.
type entry struct {
	FirstName  *string `json:"FirstName"`
	LastName   *string `json:"LastName"`
	CourseName *string `json:"CourseName"`
}

// JSONFile implements storage.Storage on top of a JSON file.
type JSONFile struct {
	path string
	log  *slog.Logger
}

// New returns a JSONFile bound to path. Nothing is opened yet.
func New(path string, log *slog.Logger) *JSONFile {
	return &JSONFile{path: path, log: log}
}

func (j *JSONFile) Path() string { return j.path }

// Load decodes the array at j.path and appends one record per element,
// in array order.
func (j *JSONFile) Load(dst []types.StudentRecord) ([]types.StudentRecord, error) {
	f, err := os.Open(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return dst, fmt.Errorf("jsonfile.Load: %w: %w", storage.ErrFileMissing, err)
	}
	if err != nil {
		return dst, fmt.Errorf("jsonfile.Load: open: %w: %w", storage.ErrReadFailure, err)
	}
	defer f.Close()

	var entries []entry
	dec := json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil {
		return dst, fmt.Errorf("jsonfile.Load: decode: %w: %w", storage.ErrReadFailure, err)
	}
	// The array must be the whole document.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return dst, fmt.Errorf("jsonfile.Load: %w: extra data after array", storage.ErrReadFailure)
	}
	// A top-level null decodes without error into a nil slice.
	if entries == nil {
		return dst, fmt.Errorf("jsonfile.Load: %w: document is not an array", storage.ErrReadFailure)
	}

	for i, e := range entries {
		if e.FirstName == nil || e.LastName == nil || e.CourseName == nil {
			return dst, fmt.Errorf("jsonfile.Load: element %d: %w: missing FirstName, LastName or CourseName",
				i, storage.ErrReadFailure)
		}

		rec, err := types.NewStudentRecord(*e.FirstName, *e.LastName, *e.CourseName)
		if err != nil {
			return dst, fmt.Errorf("jsonfile.Load: element %d: %w: %w", i, storage.ErrReadFailure, err)
		}
		dst = append(dst, rec)
	}

	j.log.Debug("records loaded",
		slog.String("path", j.path),
		slog.Int("count", len(entries)))

	return dst, nil
}

// Save writes records as an indented JSON array, replacing the file.
// Names are written in their title-cased form.
func (j *JSONFile) Save(records []types.StudentRecord) error {
	entries := make([]entry, 0, len(records))
	for _, r := range records {
		first, last, course := r.FirstName(), r.LastName(), r.CourseName()
		entries = append(entries, entry{FirstName: &first, LastName: &last, CourseName: &course})
	}

	// Encode before touching the file so a serialisation error leaves
	// the previous contents intact.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("jsonfile.Save: encode: %w: %w", storage.ErrWriteFailure, err)
	}

	f, err := os.Create(j.path)
	if err != nil {
		return fmt.Errorf("jsonfile.Save: create: %w: %w", storage.ErrWriteFailure, err)
	}

	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("jsonfile.Save: write: %w: %w", storage.ErrWriteFailure, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("jsonfile.Save: close: %w: %w", storage.ErrWriteFailure, err)
	}

	j.log.Debug("records saved",
		slog.String("path", j.path),
		slog.Int("count", len(records)))

	return nil
}
