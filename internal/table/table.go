package table

import (
	"fmt"
	"strings"
)

// Table is an in-memory raw table: ordered column names and string cells.
// An empty cell is treated as null.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates an empty table with the given columns
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of a column, or -1 if absent
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Has reports whether the column exists
func (t *Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// Get returns the cell at row i for a column, "" when the column is missing
func (t *Table) Get(i int, column string) string {
	idx := t.Index(column)
	if idx < 0 || idx >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][idx]
}

// Append adds a row. Short rows are padded with nulls.
func (t *Table) Append(row ...string) {
	r := make([]string, len(t.Columns))
	copy(r, row)
	t.Rows = append(t.Rows, r)
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}

// Drop returns a copy without the given columns. Unknown columns are ignored.
func (t *Table) Drop(columns ...string) *Table {
	drop := make(map[string]bool, len(columns))
	for _, c := range columns {
		drop[c] = true
	}

	var keep []string
	for _, c := range t.Columns {
		if !drop[c] {
			keep = append(keep, c)
		}
	}

	out, _ := t.Select(keep...)
	return out
}

// Rename returns a copy with columns renamed by the mapping
func (t *Table) Rename(mapping map[string]string) *Table {
	out := t.Clone()
	for i, c := range out.Columns {
		if to, ok := mapping[c]; ok {
			out.Columns[i] = to
		}
	}
	return out
}

// Select returns a copy holding only the given columns in the given order
func (t *Table) Select(columns ...string) (*Table, error) {
	idx := make([]int, len(columns))
	var missing []string
	for i, c := range columns {
		idx[i] = t.Index(c)
		if idx[i] < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	out := New(columns...)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(columns))
		for j, k := range idx {
			if k < len(row) {
				r[j] = row[k]
			}
		}
		out.Rows[i] = r
	}
	return out, nil
}

// WithColumn returns a copy with a column set to a constant value.
// An existing column is overwritten.
func (t *Table) WithColumn(column, value string) *Table {
	out := t.Clone()
	idx := out.Index(column)
	if idx < 0 {
		out.Columns = append(out.Columns, column)
		for i := range out.Rows {
			out.Rows[i] = append(out.Rows[i], value)
		}
		return out
	}
	for i := range out.Rows {
		out.Rows[i][idx] = value
	}
	return out
}

// LowerColumns returns a copy with lower-cased column names
func (t *Table) LowerColumns() *Table {
	out := t.Clone()
	for i, c := range out.Columns {
		out.Columns[i] = strings.ToLower(c)
	}
	return out
}

// Filter returns a copy holding the rows for which keep returns true
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := New(t.Columns...)
	for i, row := range t.Rows {
		if keep(i) {
			r := make([]string, len(row))
			copy(r, row)
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Concat appends tables with identical column names and order
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return New(), nil
	}

	out := tables[0].Clone()
	for n, t := range tables[1:] {
		if !sameColumns(out.Columns, t.Columns) {
			return nil, fmt.Errorf("table %d columns %v do not match %v", n+1, t.Columns, out.Columns)
		}
		for _, row := range t.Rows {
			r := make([]string, len(row))
			copy(r, row)
			out.Rows = append(out.Rows, r)
		}
	}
	return out, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsNull reports whether a raw cell holds no value
func IsNull(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NaN", "nan", "NULL", "null", "None":
		return true
	}
	return false
}
