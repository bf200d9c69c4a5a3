// Package ledger owns the persistent applicant spreadsheet. It assumes a
// single writer process; appends are atomic at file level, a failed
// append leaves the store untouched.
package ledger

import (
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	apperrors "resume-ledger/internal/common/errors"
	"resume-ledger/internal/common/logger"
	"resume-ledger/internal/record"
)

// Writer appends validated applicant records to the xlsx store at a
// fixed path. It holds no file state between calls: row counts and
// applicant numbers are derived from the live file every time.
type Writer struct {
	path string
	log  logger.Logger
}

func NewWriter(path string, log logger.Logger) *Writer {
	return &Writer{
		path: path,
		log:  log.WithFields(map[string]interface{}{"component": "ledger", "path": path}),
	}
}

// Path returns the store location.
func (w *Writer) Path() string {
	return w.path
}

// EnsureStore creates the store with the header template if it does not
// exist. Calling it on an existing store changes nothing.
func (w *Writer) EnsureStore() error {
	if _, err := os.Stat(w.path); err == nil {
		f, openErr := w.open()
		if openErr != nil {
			return openErr
		}
		return f.Close()
	}

	f := newTemplate()
	defer f.Close()
	if err := w.save(f); err != nil {
		return err
	}
	w.log.Info("store created", nil)
	return nil
}

// Count returns the number of data rows currently in the store. A
// missing store counts as empty.
func (w *Writer) Count() (int, error) {
	if _, err := os.Stat(w.path); err != nil {
		return 0, nil
	}
	f, err := w.open()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return dataRowCount(f)
}

// NextApplicantNumber returns 1 + the current data row count, read fresh
// from the store. It is never cached, so external edits between calls
// are picked up as long as writes stay serialized.
func (w *Writer) NextApplicantNumber() (int, error) {
	count, err := w.Count()
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

// Append assigns the next applicant number, writes the record as one row
// in the fixed column layout and saves the store. On failure the file is
// left as it was.
func (w *Writer) Append(rec *record.Record) (int, error) {
	f, err := w.openOrCreate()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count, err := dataRowCount(f)
	if err != nil {
		return 0, err
	}
	number := count + 1

	if err := w.writeRow(f, number, rec); err != nil {
		return 0, err
	}
	if err := w.save(f); err != nil {
		return 0, err
	}

	w.log.Info("applicant appended", map[string]interface{}{
		"applicantNumber": number,
		"applicantName":   rec.ApplicantName,
	})
	return number, nil
}

// AppendAll writes records sequentially in one open/save cycle,
// numbering on from the live row count. Either every record lands or
// the store is unchanged.
func (w *Writer) AppendAll(recs []*record.Record) ([]int, error) {
	if len(recs) == 0 {
		return nil, nil
	}

	f, err := w.openOrCreate()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	count, err := dataRowCount(f)
	if err != nil {
		return nil, err
	}

	numbers := make([]int, 0, len(recs))
	for i, rec := range recs {
		number := count + i + 1
		if err := w.writeRow(f, number, rec); err != nil {
			return nil, err
		}
		numbers = append(numbers, number)
	}
	if err := w.save(f); err != nil {
		return nil, err
	}

	w.log.Info("batch appended", map[string]interface{}{
		"count":       len(recs),
		"firstNumber": numbers[0],
		"lastNumber":  numbers[len(numbers)-1],
	})
	return numbers, nil
}

// open loads the existing store file.
func (w *Writer) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(w.path, err)
	}
	return f, nil
}

// openOrCreate loads the store, building the header template in memory
// when the file does not exist yet.
func (w *Writer) openOrCreate() (*excelize.File, error) {
	if _, err := os.Stat(w.path); err != nil {
		if os.IsNotExist(err) {
			return newTemplate(), nil
		}
		return nil, apperrors.NewStoreUnavailable(w.path, err)
	}
	return w.open()
}

// save writes the workbook to a temp file in the store's directory and
// renames it over the store, so a failed save never leaves a partial or
// corrupt file behind.
func (w *Writer) save(f *excelize.File) error {
	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".ledger-*.xlsx")
	if err != nil {
		return apperrors.NewStoreUnavailable(w.path, err)
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStoreUnavailable(w.path, err)
	}

	if err := f.SaveAs(tmpName); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStoreUnavailable(w.path, err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStoreUnavailable(w.path, err)
	}
	return nil
}

// writeRow maps a record onto the fixed column layout at the row for the
// given applicant number. Unset optional fields stay blank.
func (w *Writer) writeRow(f *excelize.File, number int, rec *record.Record) error {
	row := strconv.Itoa(number + 1) // header occupies row 1

	cells := map[string]interface{}{
		"A": number,
		"B": rec.ApplicantName,
		"C": rec.ApplicationDate,
		"D": rec.Affiliation,
		"E": rec.ApplicationField,
	}

	if bi := rec.BasicInfo; bi != nil {
		putString(cells, "F", bi.BirthYear)
		putString(cells, "G", bi.Gender)
		putString(cells, "H", bi.FinalEducationSchool)
		putString(cells, "I", bi.FinalEducationDegree)
	}

	entries := rec.WorkExperience
	if len(entries) > record.MaxWorkEntries {
		entries = entries[:record.MaxWorkEntries]
	}
	for block, entry := range entries {
		putString(cells, workColumn(block, 0), entry.StartDate)
		if entry.EndDate != nil {
			putString(cells, workColumn(block, 1), *entry.EndDate)
		}
		putString(cells, workColumn(block, 2), entry.CompanyName)
		if entry.FinalDepartment != nil {
			putString(cells, workColumn(block, 3), *entry.FinalDepartment)
		}
		if entry.FinalPosition != nil {
			putString(cells, workColumn(block, 4), *entry.FinalPosition)
		}
		if entry.Salary != nil {
			cells[workColumn(block, 5)] = *entry.Salary
		}
	}

	for col, value := range cells {
		if err := f.SetCellValue(SheetName, col+row, value); err != nil {
			return apperrors.NewStoreUnavailable(w.path, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return apperrors.NewStoreUnavailable(w.path, err)
	}
	if err := f.SetCellStyle(SheetName, "A"+row, lastColumn()+row, style); err != nil {
		return apperrors.NewStoreUnavailable(w.path, err)
	}
	return nil
}

func putString(cells map[string]interface{}, col, value string) {
	if value != "" {
		cells[col] = value
	}
}

// newTemplate builds a fresh workbook with the header row styled and
// column widths sized to the labels.
func newTemplate() *excelize.File {
	f := excelize.NewFile()
	_ = f.SetSheetName("Sheet1", SheetName)

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		_ = f.SetCellStyle(SheetName, "A1", lastColumn()+"1", style)
	}

	for _, cell := range headerCells() {
		_ = f.SetCellValue(SheetName, cell.Col+"1", cell.Label)

		width := utf8.RuneCountInString(cell.Label) + columnPadding
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		_ = f.SetColWidth(SheetName, cell.Col, cell.Col, float64(width))
	}

	return f
}

// dataRowCount counts rows below the header that carry any value.
func dataRowCount(f *excelize.File) (int, error) {
	rows, err := f.GetRows(SheetName)
	if err != nil {
		return 0, apperrors.NewStoreUnavailable(f.Path, err)
	}
	if len(rows) <= 1 {
		return 0, nil
	}

	count := 0
	for _, row := range rows[1:] {
		for _, cell := range row {
			if cell != "" {
				count++
				break
			}
		}
	}
	return count, nil
}
