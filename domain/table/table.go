// Package table holds the one tabular type used across the pipeline: the
// flattened evaluation dataset, per-metric summaries, the wide per-dimension
// tables and the composed report tables are all Tables.
//
// A column has a canonical Key that code addresses it by and a display Label
// that renderers print. Relabelling never changes a Key, so classification
// logic stays independent of presentation text.
package table

import (
	"fmt"

	"evalreport/domain/core"
)

// Column identifies one column of a Table
type Column struct {
	Key   string
	Label string
}

// Table is an ordered set of columns over rows of normalized cells
type Table struct {
	columns []Column
	index   map[string]int
	rows    [][]any
}

// New creates an empty table whose labels equal their keys
func New(keys ...string) *Table {
	cols := make([]Column, len(keys))
	for i, k := range keys {
		cols[i] = Column{Key: k, Label: k}
	}
	return NewWithColumns(cols...)
}

// NewWithColumns creates an empty table. A repeated key keeps its first
// occurrence.
func NewWithColumns(cols ...Column) *Table {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if _, dup := t.index[c.Key]; dup {
			continue
		}
		if c.Label == "" {
			c.Label = c.Key
		}
		t.index[c.Key] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t
}

// Columns returns a copy of the column descriptors in order
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Keys returns the column keys in order
func (t *Table) Keys() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Key
	}
	return out
}

// Labels returns the column labels in order
func (t *Table) Labels() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Label
	}
	return out
}

// Label returns the display label of a column, or "" when absent
func (t *Table) Label(key string) string {
	if i, ok := t.index[key]; ok {
		return t.columns[i].Label
	}
	return ""
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.columns)
}

// Has reports whether a column exists
func (t *Table) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Require fails with ErrMissingColumn for the first absent key
func (t *Table) Require(keys ...string) error {
	for _, k := range keys {
		if !t.Has(k) {
			return core.NewMissingColumnError(k)
		}
	}
	return nil
}

// Append adds a row given in column order
func (t *Table) Append(values ...any) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = Normalize(v)
	}
	t.rows = append(t.rows, row)
	return nil
}

// AppendMap adds a row from a key/value map; absent keys become nil and
// keys that are not columns are ignored.
func (t *Table) AppendMap(values map[string]any) {
	row := make([]any, len(t.columns))
	for i, c := range t.columns {
		row[i] = Normalize(values[c.Key])
	}
	t.rows = append(t.rows, row)
}

// Value returns a single cell, nil when the column is absent
func (t *Table) Value(row int, key string) any {
	i, ok := t.index[key]
	if !ok {
		return nil
	}
	return t.rows[row][i]
}

// Set overwrites a single cell
func (t *Table) Set(row int, key string, v any) {
	if i, ok := t.index[key]; ok {
		t.rows[row][i] = Normalize(v)
	}
}

// Row returns a copy of one row in column order
func (t *Table) Row(i int) []any {
	out := make([]any, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Column returns a copy of every value in one column
func (t *Table) Column(key string) []any {
	i, ok := t.index[key]
	if !ok {
		return nil
	}
	out := make([]any, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out
}

// Clone deep-copies the table
func (t *Table) Clone() *Table {
	c := NewWithColumns(t.columns...)
	c.rows = make([][]any, len(t.rows))
	for i := range t.rows {
		c.rows[i] = t.Row(i)
	}
	return c
}

// Project returns a new table holding only the named columns, in the given
// order. Repeated keys collapse to one column.
func (t *Table) Project(keys ...string) (*Table, error) {
	if err := t.Require(keys...); err != nil {
		return nil, err
	}
	cols := make([]Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, t.columns[t.index[k]])
	}
	out := NewWithColumns(cols...)
	src := make([]int, len(out.columns))
	for i, c := range out.columns {
		src[i] = t.index[c.Key]
	}
	out.rows = make([][]any, len(t.rows))
	for r, row := range t.rows {
		nr := make([]any, len(src))
		for i, s := range src {
			nr[i] = row[s]
		}
		out.rows[r] = nr
	}
	return out, nil
}

// Drop returns a copy without the named columns; absent keys are ignored
func (t *Table) Drop(keys ...string) *Table {
	skip := make(map[string]bool, len(keys))
	for _, k := range keys {
		skip[k] = true
	}
	keep := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if !skip[c.Key] {
			keep = append(keep, c.Key)
		}
	}
	out, _ := t.Project(keep...)
	return out
}

// Reorder returns a copy with the named columns first, in the given order,
// followed by the remaining columns in their existing order. Absent keys are
// ignored.
func (t *Table) Reorder(first ...string) *Table {
	seen := make(map[string]bool, len(t.columns))
	order := make([]string, 0, len(t.columns))
	for _, k := range first {
		if t.Has(k) && !seen[k] {
			order = append(order, k)
			seen[k] = true
		}
	}
	for _, c := range t.columns {
		if !seen[c.Key] {
			order = append(order, c.Key)
		}
	}
	out, _ := t.Project(order...)
	return out
}

// SetLabel changes the display label of one column
func (t *Table) SetLabel(key, label string) {
	if i, ok := t.index[key]; ok {
		t.columns[i].Label = label
	}
}

// Relabel rewrites every label through fn
func (t *Table) Relabel(fn func(Column) string) {
	for i := range t.columns {
		t.columns[i].Label = fn(t.columns[i])
	}
}

// MergeLeft joins other onto t by the key column. Every row of t is kept;
// rows of other are matched by deep equality on the key and the first match
// wins. Non-key columns of other whose key already exists in t are dropped,
// so on name collision the earlier table wins. Unmatched cells are nil.
func (t *Table) MergeLeft(other *Table, key string) (*Table, error) {
	if err := t.Require(key); err != nil {
		return nil, err
	}
	if err := other.Require(key); err != nil {
		return nil, err
	}

	var added []Column
	for _, c := range other.columns {
		if c.Key == key || t.Has(c.Key) {
			continue
		}
		added = append(added, c)
	}

	lookup := make(map[any]int, len(other.rows))
	ok := other.index[key]
	for r, row := range other.rows {
		if _, dup := lookup[row[ok]]; !dup {
			lookup[row[ok]] = r
		}
	}

	out := NewWithColumns(append(t.Columns(), added...)...)
	tk := t.index[key]
	out.rows = make([][]any, len(t.rows))
	for r, row := range t.rows {
		nr := make([]any, 0, len(out.columns))
		nr = append(nr, row...)
		match, found := lookup[row[tk]]
		for _, c := range added {
			if found {
				nr = append(nr, other.rows[match][other.index[c.Key]])
			} else {
				nr = append(nr, nil)
			}
		}
		out.rows[r] = nr
	}
	return out, nil
}
