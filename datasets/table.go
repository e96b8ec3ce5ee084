package datasets

import "math"
import "sort"

import "github.com/pkg/errors"

// Table is a flat table of float64 columns of equal length
type Table struct {
	names []string
	index map[string]int
	cols  [][]float64
}

// NewTable creates a table from names and columns. A nil cols creates an empty table.
func NewTable(names []string, cols [][]float64) (*Table, error) {
	if cols == nil {
		cols = make([][]float64, len(names))
	}
	if len(names) != len(cols) {
		return nil, errors.Errorf("table has %d names but %d columns", len(names), len(cols))
	}
	t := &Table{index: make(map[string]int, len(names))}
	for i, name := range names {
		if _, dup := t.index[name]; dup {
			return nil, errors.Errorf("duplicate column %q", name)
		}
		if i > 0 && len(cols[i]) != len(cols[0]) {
			return nil, errors.Errorf("column %q has %d rows, expected %d", name, len(cols[i]), len(cols[0]))
		}
		t.index[name] = i
		t.names = append(t.names, name)
		t.cols = append(t.cols, cols[i])
	}
	return t, nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// Columns returns the column names in order
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// Index returns the position of column name, or -1
func (t *Table) Index(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Column returns the values of column name, or nil. The slice is not copied.
func (t *Table) Column(name string) []float64 {
	if i, ok := t.index[name]; ok {
		return t.cols[i]
	}
	return nil
}

// AddColumn appends column name, replacing an existing column of that name
func (t *Table) AddColumn(name string, values []float64) error {
	if len(t.cols) > 0 && len(values) != t.Len() {
		return errors.Errorf("column %q has %d rows, expected %d", name, len(values), t.Len())
	}
	if i, ok := t.index[name]; ok {
		t.cols[i] = values
		return nil
	}
	t.index[name] = len(t.names)
	t.names = append(t.names, name)
	t.cols = append(t.cols, values)
	return nil
}

// Filter returns a new table with the rows for which keep reports true
func (t *Table) Filter(keep func(row int) bool) *Table {
	var rows []int
	for i := 0; i < t.Len(); i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return t.take(rows)
}

// DropNonFinite returns a new table without the rows holding NaN or infinite
// values in the named columns, or in any column when none are named
func (t *Table) DropNonFinite(names ...string) (*Table, error) {
	cols := t.cols
	if len(names) > 0 {
		cols = make([][]float64, len(names))
		for i, name := range names {
			if cols[i] = t.Column(name); cols[i] == nil {
				return nil, errors.Errorf("no column %q", name)
			}
		}
	}
	return t.Filter(func(row int) bool {
		for _, col := range cols {
			if math.IsNaN(col[row]) || math.IsInf(col[row], 0) {
				return false
			}
		}
		return true
	}), nil
}

// Head returns the first n rows, all rows if there are fewer
func (t *Table) Head(n int) *Table {
	if n > t.Len() {
		n = t.Len()
	}
	if n < 0 {
		n = 0
	}
	cols := make([][]float64, len(t.cols))
	for c := range t.cols {
		cols[c] = t.cols[c][:n:n]
	}
	out, _ := NewTable(t.names, cols)
	return out
}

// Counts returns the number of rows per distinct value of column name
func (t *Table) Counts(name string) map[float64]int {
	counts := make(map[float64]int)
	for _, v := range t.Column(name) {
		counts[v]++
	}
	return counts
}

// SortedKeys returns the keys of counts in ascending order
func SortedKeys(counts map[float64]int) []float64 {
	keys := make([]float64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

func (t *Table) take(rows []int) *Table {
	cols := make([][]float64, len(t.cols))
	for c := range t.cols {
		col := make([]float64, len(rows))
		for i, r := range rows {
			col[i] = t.cols[c][r]
		}
		cols[c] = col
	}
	out, _ := NewTable(t.names, cols)
	return out
}

// Concat stacks tables row-wise. All tables must have the same columns in the same order.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return NewTable(nil, nil)
	}
	names := tables[0].names
	cols := make([][]float64, len(names))
	for n, t := range tables {
		if len(t.names) != len(names) {
			return nil, errors.Errorf("table %d has %d columns, expected %d", n, len(t.names), len(names))
		}
		for c := range names {
			if t.names[c] != names[c] {
				return nil, errors.Errorf("table %d column %d is %q, expected %q", n, c, t.names[c], names[c])
			}
			cols[c] = append(cols[c], t.cols[c]...)
		}
	}
	return NewTable(names, cols)
}
