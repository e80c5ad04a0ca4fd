package excel

// RowFilter decides whether a reconstructed record is kept. rowNum is the
// 1-based row number in the sheet.
type RowFilter[T any] func(rowNum int, record *T) bool

// Mapper imports and exports records of type T through a Schema.
type Mapper[T any] struct {
	schema *Schema[T]
	accept RowFilter[T]
	opts   options
}

// NewMapper builds the schema of T from its struct tags and returns a mapper owning it.
func NewMapper[T any](opts ...Option) (*Mapper[T], error) {
	schema, err := SchemaFromTags[T]()
	if err != nil {
		return nil, err
	}
	return NewMapperWithSchema(schema, opts...), nil
}

// MustNewMapper is like NewMapper but panics on a configuration error.
func MustNewMapper[T any](opts ...Option) *Mapper[T] {
	m, err := NewMapper[T](opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMapperWithSchema returns a mapper using an existing schema.
func NewMapperWithSchema[T any](schema *Schema[T], opts ...Option) *Mapper[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Mapper[T]{schema: schema, opts: o}
}

// Schema returns the schema of the mapper.
func (m *Mapper[T]) Schema() *Schema[T] { return m.schema }

// SetRowFilter installs the row acceptance predicate used on import; nil accepts every row.
func (m *Mapper[T]) SetRowFilter(accept RowFilter[T]) {
	m.accept = accept
}

// HeaderRow returns the header labels in column order. The template and the
// data export share the same header, the key joining columns to fields, so
// template doesn't change the result.
func (m *Mapper[T]) HeaderRow(template bool) []string {
	return m.schema.Headers()
}

// Comments returns the header comments aligned with HeaderRow.
func (m *Mapper[T]) Comments() []string {
	return m.schema.Comments()
}

// ProjectRecord renders a record as one string per column. Missing values are blank.
func (m *Mapper[T]) ProjectRecord(record *T) []string {
	cells := make([]string, m.schema.Len())
	if record == nil {
		return cells
	}
	for i, c := range m.schema.columns {
		cells[i] = c.Get(record)
	}
	return cells
}
