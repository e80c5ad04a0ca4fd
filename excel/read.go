package excel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellError reports a cell whose text can't be assigned to its field.
type CellError struct {
	Sheet  string
	Row    int // 1-based, 0 when unknown
	Col    int // 0-based
	Header string
	Value  string
	Err    error
}

func (e *CellError) Error() string {
	ref, _ := excelize.ColumnNumberToName(e.Col + 1)
	if e.Row > 0 {
		ref += strconv.Itoa(e.Row)
	}
	if e.Sheet != "" {
		ref = e.Sheet + "!" + ref
	}
	return fmt.Sprintf("%v: col=%s, %v @ %s", ErrConvert, e.Header, e.Err, ref)
}

func (e *CellError) Unwrap() []error { return []error{ErrConvert, e.Err} }

// Import reads every sheet of the workbook at path and returns the records of
// all sheets, sheet by sheet and row by row.
func (m *Mapper[T]) Import(path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("file opening failed. %s: %w", path, err)
	}
	defer file.Close()
	return m.importFrom(file, FormatOf(path))
}

// ImportReader is like Import for a workbook stream.
func (m *Mapper[T]) ImportReader(r io.Reader) ([]T, error) {
	return m.importFrom(r, FormatXLSX)
}

func (m *Mapper[T]) importFrom(r io.Reader, format Format) ([]T, error) {
	book, err := openWorkbook(r, format)
	if err != nil {
		return nil, err
	}
	defer func() {
		m.opts.logger.Tracef("the defer function fired, the %s workbook will be closed", format)
		if err := book.Close(); err != nil {
			m.opts.logger.Errorf("there is a mistake when file close. %v", err)
		}
	}()
	return m.importBook(book)
}

// ImportWorkbook reads the records of an opened workbook. The caller keeps
// the ownership of f.
func (m *Mapper[T]) ImportWorkbook(f *excelize.File) ([]T, error) {
	return m.importBook(ooxmlBook{f: f})
}

func (m *Mapper[T]) importBook(book workbook) ([]T, error) {
	sheets, err := m.selectSheets(book.sheetList())
	if err != nil {
		return nil, err
	}
	results := make([]T, 0)
	for _, sheet := range sheets {
		items, err := m.readSheet(book, sheet)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)
	}
	return results, nil
}

func (m *Mapper[T]) selectSheets(sheetList []string) ([]string, error) {
	if len(m.opts.sheets) == 0 {
		return sheetList, nil
	}
	sheets := make([]string, 0, len(m.opts.sheets))
	for _, selector := range m.opts.sheets {
		name, err := resolveSheetName(sheetList, selector)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, name)
	}
	return sheets, nil
}

// Read the records of one sheet. The first row is the header; a sheet
// without it gives no record. Every other row the sheet holds gives one
// record, even when its cells are all blank.
func (m *Mapper[T]) readSheet(book workbook, sheetName string) ([]T, error) {
	logger := m.opts.logger.WithField("sheet", sheetName)
	rows, err := book.sheetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].num != 1 || len(rows[0].cells) == 0 {
		logger.Debugf("the header row is absent, the sheet is skipped")
		return nil, nil
	}
	header := rows[0].cells
	if m.opts.trimSpace {
		header = trimCells(header)
	}
	index := BuildHeaderIndex(header)
	// print the header index for debug
	for _, h := range index.headers {
		logger.Debugf("\t%v => %v (field=%s)", h, index.columns[h], m.schema.FieldID(h))
	}

	results := make([]T, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := row.cells
		if m.opts.trimSpace {
			cells = trimCells(cells)
		}
		item, err := m.Reconstruct(index, cells)
		if err != nil {
			var cellErr *CellError
			if errors.As(err, &cellErr) {
				cellErr.Sheet, cellErr.Row = sheetName, row.num
			}
			return nil, err
		}
		if m.accept != nil && !m.accept(row.num, &item) {
			logger.Tracef("row %d is rejected by the row filter", row.num)
			continue
		}
		results = append(results, item)
	}
	logger.Debugf("%d records read", len(results))
	return results, nil
}

// Reconstruct builds one record from the cells of a data row. Headers unknown
// by the schema are ignored, a missing cell is blank, and fields without a
// header keep their zero value. When two columns feed the same field the left
// one wins.
func (m *Mapper[T]) Reconstruct(index *HeaderIndex, cells []string) (T, error) {
	var item T
	assigned := make([]bool, m.schema.Len())
	for _, header := range index.headers {
		field, ok := m.schema.indexOf(header)
		if !ok || assigned[field] {
			continue
		}
		assigned[field] = true
		colIndex := index.columns[header]
		value := ""
		if colIndex < len(cells) {
			value = cells[colIndex]
		}
		if err := m.schema.columns[field].Set(&item, value); err != nil {
			return item, &CellError{Col: colIndex, Header: header, Value: value, Err: err}
		}
	}
	return item, nil
}

func trimCells(cells []string) []string {
	trimmed := make([]string, len(cells))
	for i, c := range cells {
		trimmed[i] = strings.TrimSpace(c)
	}
	return trimmed
}
