// Package xlsx stores records in a spreadsheet so the roster can be
// opened directly in Excel or LibreOffice.
//
// Layout: one sheet named "Enrollments", a header row
// FirstName | LastName | CourseName, then one row per record. The
// number of records is also kept in the workbook-level defined name
// RecordCount, because GetRows drops trailing rows whose cells are all
// empty.
package xlsx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aanand-mishra/enrollments/internal/storage"
	"github.com/aanand-mishra/enrollments/internal/types"
)

const (
	sheetName = "Enrollments"
	countName = "RecordCount"
)

var header = []string{"FirstName", "LastName", "CourseName"}

// Workbook implements storage.Storage on top of an .xlsx file.
type Workbook struct {
	path string
	log  *slog.Logger
}

func New(path string, log *slog.Logger) *Workbook {
	return &Workbook{path: path, log: log}
}

func (w *Workbook) Path() string { return w.path }

// Load reads the Enrollments sheet (or the first sheet when a workbook
// was renamed by hand) and appends one record per data row.
func (w *Workbook) Load(dst []types.StudentRecord) ([]types.StudentRecord, error) {
	if _, err := os.Stat(w.path); errors.Is(err, fs.ErrNotExist) {
		return dst, fmt.Errorf("xlsx.Load: %w: %w", storage.ErrFileMissing, err)
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return dst, fmt.Errorf("xlsx.Load: open: %w: %w", storage.ErrReadFailure, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			w.log.Warn("closing workbook", slog.String("path", w.path), slog.String("error", err.Error()))
		}
	}()

	sheet := sheetName
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return dst, fmt.Errorf("xlsx.Load: read rows: %w: %w", storage.ErrReadFailure, err)
	}
	if len(rows) == 0 {
		return dst, fmt.Errorf("xlsx.Load: %w: sheet %q has no header row", storage.ErrReadFailure, sheet)
	}
	if hdr := pad(rows[0]); hdr[0] != header[0] || hdr[1] != header[1] || hdr[2] != header[2] {
		return dst, fmt.Errorf("xlsx.Load: %w: unexpected header %v", storage.ErrReadFailure, rows[0])
	}

	data := rows[1:]
	// Restore the all-empty records GetRows trimmed off the end. A count
	// below the row count means rows were added by hand; the rows win.
	if n, ok := storedCount(f); ok {
		for len(data) < n {
			data = append(data, nil)
		}
	}

	for i, row := range data {
		// GetRows trims trailing empty cells, so a record with an empty
		// course name comes back with only two columns.
		cells := pad(row)
		rec, err := types.NewStudentRecord(cells[0], cells[1], cells[2])
		if err != nil {
			return dst, fmt.Errorf("xlsx.Load: row %d: %w: %w", i+2, storage.ErrReadFailure, err)
		}
		dst = append(dst, rec)
	}

	w.log.Debug("records loaded", slog.String("path", w.path), slog.Int("count", len(data)))
	return dst, nil
}

// Save builds a fresh workbook and writes it over w.path.
func (w *Workbook) Save(records []types.StudentRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("xlsx.Save: rename sheet: %w: %w", storage.ErrWriteFailure, err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx.Save: header: %w: %w", storage.ErrWriteFailure, err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx.Save: cell name: %w: %w", storage.ErrWriteFailure, err)
		}
		row := []string{r.FirstName(), r.LastName(), r.CourseName()}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsx.Save: row %d: %w: %w", i+2, storage.ErrWriteFailure, err)
		}
	}

	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     countName,
		RefersTo: strconv.Itoa(len(records)),
	}); err != nil {
		return fmt.Errorf("xlsx.Save: record count: %w: %w", storage.ErrWriteFailure, err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("xlsx.Save: write: %w: %w", storage.ErrWriteFailure, err)
	}

	w.log.Debug("records saved", slog.String("path", w.path), slog.Int("count", len(records)))
	return nil
}

// storedCount reads RecordCount. Workbooks edited by hand or written
// elsewhere may not have it; ok is false then.
func storedCount(f *excelize.File) (int, bool) {
	for _, dn := range f.GetDefinedName() {
		if dn.Name != countName {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(dn.RefersTo, "="))
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func pad(row []string) [3]string {
	var out [3]string
	copy(out[:], row)
	return out
}
