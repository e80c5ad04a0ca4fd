package excel

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Column binds a header of the sheet to a field of the struct represent the row.
type Column[T any] struct {
	// the column name of the sheet, in the other word, is the header row of the sheet.
	Header string
	// other column names accepted on import, never written.
	Aliases []string
	// the fieldName of the struct represent the row.
	Field string
	// the annotation attached to the header cell, blank means none.
	Comment string
	// the drop-down list of the column, empty means no validation.
	Options []string
	// Get renders the field as the cell text.
	Get func(*T) string
	// Set assigns the cell text to the field.
	Set func(*T, string) error
}

// Schema is the ordered mapping between the headers and the fields of T.
// It is immutable once built and may be shared by several mappers.
type Schema[T any] struct {
	columns []Column[T]
	// header or alias => index of columns
	byHeader map[string]int
}

// NewSchema builds a schema from explicit column declarations. Columns keep
// their declaration order; a header already taken by an earlier column is
// ignored together with its column. A header always wins over an alias of
// another column.
func NewSchema[T any](columns ...Column[T]) (*Schema[T], error) {
	s := &Schema[T]{
		columns:  make([]Column[T], 0, len(columns)),
		byHeader: make(map[string]int, len(columns)),
	}
	headers := make(map[string]struct{}, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c.Header) == "" {
			return nil, fmt.Errorf("%w: column %d (field=%s)", ErrMissingHeader, i, c.Field)
		}
		if c.Get == nil || c.Set == nil {
			return nil, fmt.Errorf("%w: header=%s", ErrMissingAccessor, c.Header)
		}
		if _, ok := headers[c.Header]; ok {
			log.Debugf("duplicate header %q on field %s is ignored", c.Header, c.Field)
			continue
		}
		if c.Field == "" {
			c.Field = c.Header
		}
		idx := len(s.columns)
		s.columns = append(s.columns, c)
		headers[c.Header] = struct{}{}
		if prev, ok := s.byHeader[c.Header]; ok {
			log.Debugf("alias %q of field %s is taken by the header of field %s", c.Header, s.columns[prev].Field, c.Field)
		}
		s.byHeader[c.Header] = idx
		for _, alias := range c.Aliases {
			if _, ok := s.byHeader[alias]; !ok && alias != "" {
				s.byHeader[alias] = idx
			}
		}
	}
	return s, nil
}

// MustSchema is like SchemaFromTags but panics on a configuration error.
func MustSchema[T any]() *Schema[T] {
	s, err := SchemaFromTags[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of columns.
func (s *Schema[T]) Len() int { return len(s.columns) }

// Headers returns the header labels in column order.
func (s *Schema[T]) Headers() []string {
	headers := make([]string, len(s.columns))
	for i, c := range s.columns {
		headers[i] = c.Header
	}
	return headers
}

// Comments returns the header comments, aligned with Headers.
func (s *Schema[T]) Comments() []string {
	comments := make([]string, len(s.columns))
	for i, c := range s.columns {
		comments[i] = c.Comment
	}
	return comments
}

// Columns returns a copy of the columns in order.
func (s *Schema[T]) Columns() []Column[T] {
	return append([]Column[T](nil), s.columns...)
}

// Lookup finds the column bound to a header or alias.
func (s *Schema[T]) Lookup(header string) (Column[T], bool) {
	idx, ok := s.byHeader[header]
	if !ok {
		return Column[T]{}, false
	}
	return s.columns[idx], true
}

// FieldID returns the field name bound to a header, or "" when unmapped.
func (s *Schema[T]) FieldID(header string) string {
	c, _ := s.Lookup(header)
	return c.Field
}

func (s *Schema[T]) indexOf(header string) (int, bool) {
	idx, ok := s.byHeader[header]
	return idx, ok
}
