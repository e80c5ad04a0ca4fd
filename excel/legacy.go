package excel

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// BIFF8 sheets are at most 256 columns wide.
const legacyMaxCols = 256

// legacyBook reads the BIFF workbooks (.xls) excelize can't open.
type legacyBook struct {
	sheets []*xls.WorkSheet
}

// open a BIFF workbook. The parser panics on some malformed streams, which
// is reported as an unsupported format.
func openLegacy(r io.ReadSeeker) (book workbook, err error) {
	defer func() {
		if p := recover(); p != nil {
			book, err = nil, fmt.Errorf("%w (%s): %v", ErrUnsupportedFormat, FormatXLS, p)
		}
	}()
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrUnsupportedFormat, FormatXLS, err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w (%s): no workbook stream", ErrUnsupportedFormat, FormatXLS)
	}
	// GetSheet parses the sheet on first use
	sheets := make([]*xls.WorkSheet, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		if sheet := wb.GetSheet(i); sheet != nil {
			sheets = append(sheets, sheet)
		}
	}
	return &legacyBook{sheets: sheets}, nil
}

func (b *legacyBook) sheetList() []string {
	names := make([]string, len(b.sheets))
	for i, sheet := range b.sheets {
		names[i] = sheet.Name
	}
	return names
}

func (b *legacyBook) sheetRows(sheetName string) (results []sheetRow, err error) {
	defer func() {
		if p := recover(); p != nil {
			results, err = nil, fmt.Errorf("%w (%s): sheet %s: %v", ErrUnsupportedFormat, FormatXLS, sheetName, p)
		}
	}()
	var sheet *xls.WorkSheet
	for _, s := range b.sheets {
		if s.Name == sheetName {
			sheet = s
			break
		}
	}
	if sheet == nil {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheetName)
	}
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := legacyRow(sheet, i)
		if row == nil {
			continue
		}
		results = append(results, sheetRow{num: i + 1, cells: legacyCells(row)})
	}
	return results, nil
}

// the workbook reads from the caller's stream, nothing to release.
func (b *legacyBook) Close() error { return nil }

// WorkSheet.Row panics on a row the sheet doesn't hold.
func legacyRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// the cell texts of a row, trailing blank cells dropped. A row written
// before its ROW record has no last column, all the columns are read then.
func legacyCells(row *xls.Row) []string {
	width := row.LastCol()
	if width <= 0 || width > legacyMaxCols {
		width = legacyMaxCols
	}
	cells := make([]string, width)
	last := 0
	for col := 0; col < width; col++ {
		cells[col] = row.Col(col)
		if cells[col] != "" {
			last = col + 1
		}
	}
	return cells[:last]
}
