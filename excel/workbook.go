package excel

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is the workbook container implied by a file extension.
type Format int

const (
	// FormatXLS is the legacy BIFF container (.xls).
	FormatXLS Format = iota
	// FormatXLSX is the zip-based OOXML container (.xlsx, .xlsm, .xltx, .xltm).
	FormatXLSX
)

func (f Format) String() string {
	if f == FormatXLSX {
		return "xlsx"
	}
	return "xls"
}

// FormatOf derives the format flag from the extension of path. Anything that
// is not an OOXML extension is treated as legacy.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX
	}
	return FormatXLS
}

// sheetRow is a row held by a sheet; num is 1-based.
type sheetRow struct {
	num   int
	cells []string
}

// workbook is the read side of an opened spreadsheet.
type workbook interface {
	sheetList() []string
	// sheetRows returns the rows the sheet holds in order. A row that exists
	// with blank cells only is returned with no cell.
	sheetRows(sheet string) ([]sheetRow, error)
	Close() error
}

// the compound document signature of the legacy container.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// open a workbook from a stream. The exports always produce OOXML content,
// so a legacy path is only read as BIFF when the content really is one.
func openWorkbook(r io.Reader, format Format) (workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read the workbook failed: %w", err)
	}
	if format == FormatXLS && bytes.HasPrefix(data, oleSignature) {
		return openLegacy(bytes.NewReader(data))
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err == nil {
		return ooxmlBook{f: f}, nil
	}
	if format == FormatXLS || errors.Is(err, excelize.ErrWorkbookFileFormat) || errors.Is(err, zip.ErrFormat) {
		return nil, fmt.Errorf("%w (%s): %v", ErrUnsupportedFormat, format, err)
	}
	return nil, err
}

// ooxmlBook reads the workbooks opened by excelize.
type ooxmlBook struct {
	f *excelize.File
}

func (b ooxmlBook) sheetList() []string { return b.f.GetSheetList() }

func (b ooxmlBook) Close() error { return b.f.Close() }

// Rows is used instead of GetRows, which drops the rows holding blank cells
// only and every empty row at the tail.
func (b ooxmlBook) sheetRows(sheet string) ([]sheetRow, error) {
	rows, err := b.f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("can't read the sheet with the sheetName = %s: %w", sheet, err)
	}
	defer rows.Close()
	var (
		results []sheetRow
		width   int
	)
	for num := 1; rows.Next(); num++ {
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("can't read the row %d of %s: %w", num, sheet, err)
		}
		if num == 1 {
			width = len(cells)
		}
		if len(cells) == 0 && (num == 1 || !b.holdsCells(sheet, num, width)) {
			continue
		}
		for col, raw := range cells {
			cells[col] = b.text(sheet, col, num, raw)
		}
		results = append(results, sheetRow{num: num, cells: cells})
	}
	return results, nil
}

// report whether one of the first width cells of the row exists.
func (b ooxmlBook) holdsCells(sheet string, row, width int) bool {
	for col := 1; col <= width; col++ {
		cellName, _ := excelize.CoordinatesToCellName(col, row)
		if cellType, err := b.f.GetCellType(sheet, cellName); err == nil && cellType != excelize.CellTypeUnset {
			return true
		}
	}
	return false
}

// only a text that reads as a number needs the cell type.
func (b ooxmlBook) text(sheet string, col, row int, raw string) string {
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return raw
	}
	cellName, _ := excelize.CoordinatesToCellName(col+1, row)
	cellType, err := b.f.GetCellType(sheet, cellName)
	if err != nil {
		return raw
	}
	return cellText(cellType, raw)
}

// Convert a raw cell value to its text. A number is written in its default
// text form, a boolean as TRUE or FALSE, any other kind keeps its value.
func cellText(cellType excelize.CellType, raw string) string {
	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// numeric cells usually carry no type attribute
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
	case excelize.CellTypeBool:
		switch raw {
		case "1":
			return "TRUE"
		case "0":
			return "FALSE"
		}
	}
	return raw
}

// SetDataValidation restricts the cells of a rectangular range to an explicit
// list. Rows and columns are 0-based and inclusive.
func SetDataValidation(f *excelize.File, sheet string, firstRow, lastRow, firstCol, lastCol int, list []string) error {
	topLeft, err := excelize.CoordinatesToCellName(firstCol+1, firstRow+1)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(lastCol+1, lastRow+1)
	if err != nil {
		return err
	}
	dv := excelize.NewDataValidation(true)
	dv.SetSqref(topLeft + ":" + bottomRight)
	if err = dv.SetDropList(list); err != nil {
		return err
	}
	return f.AddDataValidation(sheet, dv)
}

// bold and centered, used by the header row.
func newHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

// use to convert a sheet selector to a right sheet name.
// "[n]" selects the sheet at index n and "[]" the first sheet.
func resolveSheetName(sheetList []string, selector string) (string, error) {
	if len(selector) >= 2 && selector[0] == '[' && selector[len(selector)-1] == ']' {
		indexStr := strings.TrimSpace(selector[1 : len(selector)-1])
		if indexStr == "" {
			if len(sheetList) == 0 {
				return "", fmt.Errorf("%w: the workbook has no sheet", ErrSheetNotFound)
			}
			return sheetList[0], nil
		}
		index, err := strconv.Atoi(indexStr)
		if err != nil {
			return "", fmt.Errorf("%w: the sheet selector %s is not a number", ErrSheetNotFound, selector)
		}
		if index < 0 || index >= len(sheetList) {
			return "", fmt.Errorf("%w: the sheet selector %s is out of the sheet count %d", ErrSheetNotFound, selector, len(sheetList))
		}
		return sheetList[index], nil
	}
	for _, name := range sheetList {
		if strings.EqualFold(name, selector) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSheetNotFound, selector)
}
