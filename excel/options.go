package excel

import (
	log "github.com/sirupsen/logrus"
)

const (
	defaultSheetName      = "Sheet1"
	defaultCommentAuthor  = "excel-mapper"
	defaultValidationRows = 1000
)

// options holds the settings shared by the import and export paths of a Mapper.
type options struct {
	// sheet written by the export functions.
	sheetName string
	// sheet selectors used by the import functions, empty means every sheet.
	sheets []string
	// author shown on the header comments.
	commentAuthor string
	// indicate whether the string in the cell should use strings.TrimSpace() to erase the blank.
	trimSpace bool
	// minimum number of data rows covered by a drop-down validation.
	validationRows int
	logger         log.Ext1FieldLogger
}

func defaultOptions() options {
	return options{
		sheetName:      defaultSheetName,
		commentAuthor:  defaultCommentAuthor,
		validationRows: defaultValidationRows,
		logger:         log.StandardLogger(),
	}
}

// Option configures a Mapper.
type Option func(*options)

// WithSheetName sets the name of the sheet created on export.
func WithSheetName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.sheetName = name
		}
	}
}

// WithSheets restricts import to the given sheets. A selector is either a sheet
// name or "[n]" for the sheet at 0-based index n; "[]" is the first sheet.
func WithSheets(selectors ...string) Option {
	return func(o *options) {
		o.sheets = append(o.sheets[:0:0], selectors...)
	}
}

// WithCommentAuthor sets the author of the header comments.
func WithCommentAuthor(author string) Option {
	return func(o *options) {
		if author != "" {
			o.commentAuthor = author
		}
	}
}

// WithTrimSpace trims the blank around header texts and cell values on import.
func WithTrimSpace(trim bool) Option {
	return func(o *options) {
		o.trimSpace = trim
	}
}

// WithValidationRows sets how many data rows a drop-down list covers at least.
func WithValidationRows(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.validationRows = n
		}
	}
}

// WithLogger replaces the logrus standard logger.
func WithLogger(logger log.Ext1FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
