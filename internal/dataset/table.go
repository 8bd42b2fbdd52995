package dataset

// Table is a CSV file read positionally, with its header kept for
// lookups by name. Rows may be shorter or longer than the header.
type Table struct {
	Path    string
	Header  []string
	Records [][]string

	index map[string]int
}

// ReadTable loads path without enforcing a row width.
func ReadTable(path string) (*Table, error) {
	header, records, err := readAll(path)
	if err != nil {
		return nil, err
	}
	return &Table{Path: path, Header: header, Records: records, index: ColumnIndex(header)}, nil
}

// Require fails with a *MissingColumnsError when any column is absent.
func (t *Table) Require(cols ...string) error {
	return RequireColumns(t.Path, t.Header, cols...)
}

// Get returns rec's value for col, or "" when the column is unknown or
// the record is too short.
func (t *Table) Get(rec []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// Complete reports whether rec has a value for every header column.
func (t *Table) Complete(rec []string) bool {
	return len(rec) >= len(t.Header)
}
