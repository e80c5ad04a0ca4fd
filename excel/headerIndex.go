package excel

// HeaderIndex maps the literal header texts of a sheet to their column index.
// It is built from the first row of every sheet and dropped afterwards.
type HeaderIndex struct {
	headers []string
	columns map[string]int
}

// BuildHeaderIndex scans the header row left to right. When the same text
// appears in several columns only the first one is kept; blank header cells
// are skipped.
func BuildHeaderIndex(cells []string) *HeaderIndex {
	idx := &HeaderIndex{
		headers: make([]string, 0, len(cells)),
		columns: make(map[string]int, len(cells)),
	}
	for colIndex, cell := range cells {
		if cell == "" {
			continue
		}
		if _, ok := idx.columns[cell]; ok {
			continue
		}
		idx.columns[cell] = colIndex
		idx.headers = append(idx.headers, cell)
	}
	return idx
}

// Len returns the number of distinct headers.
func (h *HeaderIndex) Len() int { return len(h.headers) }

// Headers returns the distinct headers in column order.
func (h *HeaderIndex) Headers() []string {
	return append([]string(nil), h.headers...)
}

// Column returns the 0-based column index of a header.
func (h *HeaderIndex) Column(header string) (int, bool) {
	col, ok := h.columns[header]
	return col, ok
}
