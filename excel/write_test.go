package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func commentText(c excelize.Comment) string {
	text := c.Text
	for _, run := range c.Paragraph {
		text += run.Text
	}
	return text
}

func TestExportTemplate(t *testing.T) {
	m := MustNewMapper[TestData](WithCommentAuthor("someone"))
	buf := new(bytes.Buffer)
	require.NoError(t, m.WriteTemplate(buf))

	f := openBuffer(t, buf)
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"名称", "年龄"}, rows[0])

	styleA, err := f.GetCellStyle("Sheet1", "A1")
	require.NoError(t, err)
	styleB, err := f.GetCellStyle("Sheet1", "B1")
	require.NoError(t, err)
	assert.NotZero(t, styleA)
	assert.Equal(t, styleA, styleB)

	style, err := f.GetStyle(styleA)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	require.NotNil(t, style.Alignment)
	assert.Equal(t, "center", style.Alignment.Horizontal)
	assert.Equal(t, "center", style.Alignment.Vertical)

	comments, err := f.GetComments("Sheet1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	byCell := map[string]excelize.Comment{}
	for _, c := range comments {
		byCell[c.Cell] = c
	}
	assert.Contains(t, commentText(byCell["A1"]), "Name")
	assert.Contains(t, commentText(byCell["B1"]), "Age")
	assert.Equal(t, "someone", byCell["A1"].Author)
}

func TestExportTemplateFile(t *testing.T) {
	m := MustNewMapper[TestData]()
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, m.ExportTemplate(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"名称", "年龄"}}, rows)
}

func TestExportBlankPathIsIgnored(t *testing.T) {
	m := MustNewMapper[TestData]()
	assert.NoError(t, m.ExportTemplate(""))
	assert.NoError(t, m.ExportTemplate("   "))
	assert.NoError(t, m.ExportData("\t", []TestData{{Name: "Alice"}}))
}

func TestExportDataFile(t *testing.T) {
	m := MustNewMapper[TestData](WithSheetName("数据"))
	path := filepath.Join(t.TempDir(), "data.xlsx")
	// an existing file is replaced
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, 1<<16), 0o644))
	require.NoError(t, m.ExportData(path, []TestData{
		{Name: "Alice", Age: "30"},
		{Name: "Bob", Age: "25"},
	}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"数据"}, f.GetSheetList())
	rows, err := f.GetRows("数据")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"名称", "年龄"},
		{"Alice", "30"},
		{"Bob", "25"},
	}, rows)

	dataStyle, err := f.GetCellStyle("数据", "A2")
	require.NoError(t, err)
	headerStyle, err := f.GetCellStyle("数据", "A1")
	require.NoError(t, err)
	assert.NotEqual(t, headerStyle, dataStyle)
}

func TestExportLegacyExtensionWarns(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := MustNewMapper[TestData](WithLogger(logger))
	dir := t.TempDir()

	require.NoError(t, m.ExportTemplate(filepath.Join(dir, "template.xlsx")))
	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, log.WarnLevel, entry.Level, entry.Message)
	}

	hook.Reset()
	require.NoError(t, m.ExportTemplate(filepath.Join(dir, "template.xls")))
	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			warned = true
			assert.Contains(t, entry.Message, "template.xls")
		}
	}
	assert.True(t, warned)
}

func TestExportCreateError(t *testing.T) {
	m := MustNewMapper[TestData]()
	err := m.ExportTemplate(filepath.Join(t.TempDir(), "missing", "template.xlsx"))
	assert.Error(t, err)
}

type optionRow struct {
	Name   string `x-header:"名称"`
	Gender string `x-header:"性别" x-comment:" " x-options:"男, 女"`
}

func TestExportDropList(t *testing.T) {
	m := MustNewMapper[optionRow](WithValidationRows(10))
	buf := new(bytes.Buffer)
	require.NoError(t, m.WriteTemplate(buf))

	f := openBuffer(t, buf)
	dvs, err := f.GetDataValidations("Sheet1")
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	assert.Equal(t, "B2:B11", dvs[0].Sqref)

	// blank comments are not attached
	comments, err := f.GetComments("Sheet1")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestExportDropListCoversRecords(t *testing.T) {
	m := MustNewMapper[optionRow](WithValidationRows(1))
	records := []optionRow{{Name: "a", Gender: "男"}, {Name: "b", Gender: "女"}, {Name: "c", Gender: "男"}}
	buf := new(bytes.Buffer)
	require.NoError(t, m.WriteData(buf, records))

	f := openBuffer(t, buf)
	dvs, err := f.GetDataValidations("Sheet1")
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	assert.Equal(t, "B2:B4", dvs[0].Sqref)
}

func TestSetDataValidation(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, SetDataValidation(f, "Sheet1", 1, 4, 0, 2, []string{"a", "b"}))

	dvs, err := f.GetDataValidations("Sheet1")
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	assert.Equal(t, "A2:C5", dvs[0].Sqref)

	assert.Error(t, SetDataValidation(f, "Sheet1", -2, 4, 0, 2, []string{"a"}))
}

func TestHeaderRow(t *testing.T) {
	m := MustNewMapper[typedRow]()
	assert.Equal(t, m.HeaderRow(true), m.HeaderRow(false))
	assert.Len(t, m.HeaderRow(true), m.Schema().Len())
	assert.Len(t, m.Comments(), m.Schema().Len())
}

func TestProjectRecord(t *testing.T) {
	m := MustNewMapper[typedRow]()

	cells := m.ProjectRecord(nil)
	assert.Len(t, cells, m.Schema().Len())
	for _, c := range cells {
		assert.Equal(t, "", c)
	}

	note := "n"
	cells = m.ProjectRecord(&typedRow{
		Count: 30,
		Price: 2.5,
		Date:  time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		Level: 2,
		Note:  &note,
	})
	assert.Equal(t, []string{
		"30", "0", "0", "2.5", "0", "false", "2024-05-01 08:30:00", "high", "", "n", "", "",
	}, cells)
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.xlsx":   FormatXLSX,
		"a.XLSX":   FormatXLSX,
		"a.xlsm":   FormatXLSX,
		"a.xltx":   FormatXLSX,
		"a.xls":    FormatXLS,
		"a":        FormatXLS,
		"dir/a.et": FormatXLS,
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatOf(path), path)
	}
	assert.Equal(t, "xlsx", FormatXLSX.String())
	assert.Equal(t, "xls", FormatXLS.String())
}
