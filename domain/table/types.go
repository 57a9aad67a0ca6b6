// Package table holds the in-memory shape of a headed, string-valued data table as read
// from CSV or spreadsheet files.
package table

// Row maps a column header to its raw cell value.
type Row map[string]string

// Table is a header row plus data rows in file order.
type Table struct {
	Headers []string
	Rows    []Row
}

// HasColumn reports whether header is one of the table's columns.
func (t *Table) HasColumn(header string) bool {
	for _, h := range t.Headers {
		if h == header {
			return true
		}
	}
	return false
}

// Records returns the rows as positional records ordered like Headers.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			rec[i] = row[h]
		}
		out = append(out, rec)
	}
	return out
}
