package excel

// RawRowData represents a single row with column name -> value mapping
type RawRowData map[string]string

// Table holds tabular data read from a spreadsheet or CSV file:
// a header row plus data rows keyed by column name.
type Table struct {
	// Name identifies the source (usually the file name) in reports.
	Name    string
	Headers []string
	Rows    []RawRowData
}

// HasColumn reports whether the named column appears in the header row
func (t *Table) HasColumn(name string) bool {
	for _, header := range t.Headers {
		if header == name {
			return true
		}
	}
	return false
}

// ColumnValues returns the raw cell values of the named column in row
// order. Cells absent from a row come back as empty strings; callers
// decide how to treat missing values.
func (t *Table) ColumnValues(name string) []string {
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[name])
	}
	return values
}
