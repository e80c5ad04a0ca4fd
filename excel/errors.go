package excel

import "errors"

var (
	// ErrMissingHeader is returned when a column has no header label.
	ErrMissingHeader = errors.New("excel: field has no header")
	// ErrMissingAccessor is returned when a column lacks its getter or setter.
	ErrMissingAccessor = errors.New("excel: column has no accessor")
	// ErrUnsupportedType is returned for a field kind that can't be read from a cell.
	ErrUnsupportedType = errors.New("excel: unsupported field type")
	// ErrNotStruct is returned when the record type is not a struct.
	ErrNotStruct = errors.New("excel: record type is not a struct")
	// ErrConvert wraps a cell value that can't be assigned to its field.
	ErrConvert = errors.New("excel: failed to convert cell value")
	// ErrSheetNotFound is returned for a sheet selector matching no sheet.
	ErrSheetNotFound = errors.New("excel: sheet not found")
	// ErrUnsupportedFormat is returned when the workbook container can't be decoded.
	ErrUnsupportedFormat = errors.New("excel: unsupported workbook format")
)
