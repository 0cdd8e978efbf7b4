package domain

import "strings"

// ColumnDescriptor describes one column of a parsed report: its name, an
// optional unit, and the character span it occupies in the source lines.
type ColumnDescriptor struct {
	Name  string `json:"name"`
	Unit  string `json:"unit,omitempty"`
	Start int    `json:"start"`
	Width int    `json:"width"`
	Index int    `json:"index"`
}

// Header returns the column name with the unit suffixed, the form used in
// exported header rows (for example "Electricity(kWh)").
func (c ColumnDescriptor) Header() string {
	if c.Unit == "" {
		return c.Name
	}
	return c.Name + "(" + c.Unit + ")"
}

// End returns the exclusive end offset of the column span.
func (c ColumnDescriptor) End() int {
	return c.Start + c.Width
}

// HeaderLayout is the ordered column layout derived from a report's header
// rows, plus the designated row-label column name.
type HeaderLayout struct {
	Columns     []ColumnDescriptor `json:"columns"`
	LabelColumn string             `json:"label_column,omitempty"`
}

// ColumnNames returns the plain column names in order.
func (h HeaderLayout) ColumnNames() []string {
	names := make([]string, len(h.Columns))
	for i, c := range h.Columns {
		names[i] = c.Name
	}
	return names
}

// Headers returns the unit-suffixed column headers in order.
func (h HeaderLayout) Headers() []string {
	headers := make([]string, len(h.Columns))
	for i, c := range h.Columns {
		headers[i] = c.Header()
	}
	return headers
}

// Compatible reports whether another layout can continue this one across a
// page break: same column count and same normalized names. Unit text is
// deliberately ignored since report generators reformat it between pages.
func (h HeaderLayout) Compatible(other HeaderLayout) bool {
	if len(h.Columns) != len(other.Columns) {
		return false
	}
	for i := range h.Columns {
		if normalizeName(h.Columns[i].Name) != normalizeName(other.Columns[i].Name) {
			return false
		}
	}
	return true
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// DataRow is one labeled row of a report table. Cells are keyed by plain
// column name and are always a subset of the owning table's layout.
type DataRow struct {
	Label string           `json:"label"`
	Cells map[string]Value `json:"cells"`
	Line  int              `json:"line"`
}

// Cell returns the value for a column, or the missing marker when the row
// carries no cell for it.
func (r DataRow) Cell(column string) Value {
	if v, ok := r.Cells[column]; ok {
		return v
	}
	return Missing()
}

// Table is one fully assembled report: all occurrences of a report code in
// the source file merged across page breaks. A Table is immutable once
// assembled and safe for concurrent readers.
type Table struct {
	Code   string       `json:"code"`
	Title  string       `json:"title"`
	Layout HeaderLayout `json:"layout"`
	Rows   []DataRow    `json:"rows"`
}

// Row returns the row with the given label and whether it exists.
func (t *Table) Row(label string) (DataRow, bool) {
	for _, r := range t.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return DataRow{}, false
}

// Labels returns the row labels in table order.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		labels[i] = r.Label
	}
	return labels
}
