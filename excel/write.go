package excel

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportTemplate writes a workbook holding only the styled header row.
// A blank path is ignored.
func (m *Mapper[T]) ExportTemplate(path string) error {
	if !checkExportPath(path) {
		m.opts.logger.Debugf("blank export path, the template is not written")
		return nil
	}
	return m.exportFile(path, m.WriteTemplate)
}

// ExportData writes the header row and one row per record in input order.
// A blank path is ignored.
func (m *Mapper[T]) ExportData(path string, records []T) error {
	if !checkExportPath(path) {
		m.opts.logger.Debugf("blank export path, %d records are not written", len(records))
		return nil
	}
	return m.exportFile(path, func(w io.Writer) error {
		return m.WriteData(w, records)
	})
}

// WriteTemplate writes the template workbook to w.
func (m *Mapper[T]) WriteTemplate(w io.Writer) error {
	return m.write(w, nil, true)
}

// WriteData writes the data workbook to w.
func (m *Mapper[T]) WriteData(w io.Writer, records []T) error {
	return m.write(w, records, false)
}

func (m *Mapper[T]) write(w io.Writer, records []T, template bool) error {
	f, err := m.buildWorkbook(records, template)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			m.opts.logger.Errorf("there is a mistake when workbook close. %v", err)
		}
	}()
	return f.Write(w)
}

// the exported content is always an OOXML workbook, whatever the extension.
func (m *Mapper[T]) exportFile(path string, write func(io.Writer) error) (err error) {
	if FormatOf(path) == FormatXLS {
		m.opts.logger.Warnf("%s is written as an xlsx workbook, Excel warns about the extension when opening it", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("file creating failed. %s: %w", path, err)
	}
	defer func() {
		m.opts.logger.Tracef("the defer function fired, %s will be closed", path)
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("file closing failed. %s: %w", path, cerr)
		}
	}()
	return write(file)
}

// build the workbook with one sheet: header row, comments, drop-down lists and the data rows.
func (m *Mapper[T]) buildWorkbook(records []T, template bool) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := m.opts.sheetName
	if err := m.fillWorkbook(f, sheet, records, template); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func (m *Mapper[T]) fillWorkbook(f *excelize.File, sheet string, records []T, template bool) error {
	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return fmt.Errorf("rename the sheet to %s failed: %w", sheet, err)
		}
	}
	if err := m.writeHeader(f, sheet, template); err != nil {
		return err
	}
	if err := m.writeValidations(f, sheet, len(records)); err != nil {
		return err
	}
	for i := range records {
		if err := setRowTexts(f, sheet, i+2, m.ProjectRecord(&records[i])); err != nil {
			return err
		}
	}
	m.opts.logger.WithField("sheet", sheet).Debugf("%d columns, %d data rows written", m.schema.Len(), len(records))
	return nil
}

func (m *Mapper[T]) writeHeader(f *excelize.File, sheet string, template bool) error {
	headers := m.HeaderRow(template)
	if len(headers) == 0 {
		return nil
	}
	if err := setRowTexts(f, sheet, 1, headers); err != nil {
		return err
	}
	style, err := newHeaderStyle(f)
	if err != nil {
		return fmt.Errorf("create the header style failed: %w", err)
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err = f.SetCellStyle(sheet, "A1", lastCell, style); err != nil {
		return fmt.Errorf("set style for header failed: %w", err)
	}
	for i, comment := range m.Comments() {
		if strings.TrimSpace(comment) == "" {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err = f.AddComment(sheet, excelize.Comment{
			Cell:   cell,
			Author: m.opts.commentAuthor,
			Text:   comment,
		}); err != nil {
			return fmt.Errorf("add comment @ %s failed: %w", cell, err)
		}
	}
	return nil
}

// the drop-down list covers the data rows, at least validationRows of them.
func (m *Mapper[T]) writeValidations(f *excelize.File, sheet string, recordCount int) error {
	lastRow := recordCount
	if lastRow < m.opts.validationRows {
		lastRow = m.opts.validationRows
	}
	for i, c := range m.schema.columns {
		if len(c.Options) == 0 {
			continue
		}
		if err := SetDataValidation(f, sheet, 1, lastRow, i, i, c.Options); err != nil {
			return fmt.Errorf("set data validation for col=%s failed: %w", c.Header, err)
		}
	}
	return nil
}

// fill the texts in a row from the first column, row is 1-based.
func setRowTexts(f *excelize.File, sheet string, row int, texts []string) error {
	values := make([]interface{}, len(texts))
	for i, text := range texts {
		values[i] = text
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err = f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d failed: %w", row, err)
	}
	return nil
}

// Check whether the export path is usable.
func checkExportPath(path string) bool {
	return strings.TrimSpace(path) != ""
}
