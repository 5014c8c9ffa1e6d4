// Package table provides the row-set type shared by geometry, encoding and
// chart code.
//
// A [Table] is an ordered list of rows. Each row maps column names to values.
// Columns keep first-seen order so serialized output is stable. Column kinds
// ([Numeric], [Categorical]) decide how an encoding channel types a field.
package table

import (
	"encoding/json"
	"math"
	"slices"
)

// Row is a single record of a table.
type Row map[string]any

// Kind classifies a column for encoding purposes.
type Kind int

const (
	// Empty columns have no non-nil value in any row.
	Empty Kind = iota
	// Numeric columns hold only numbers (nil values aside).
	Numeric
	// Categorical columns hold at least one non-numeric value.
	Categorical
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	}
	return "empty"
}

// Table is an ordered row-set. The zero value is an empty table.
type Table struct {
	columns []string
	seen    map[string]struct{}
	rows    []Row
}

// New creates a table with the given leading columns.
func New(columns ...string) *Table {
	t := &Table{}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

// Append adds a row. Columns not yet known are appended in sorted order so
// that rows built from maps give the same column order on every run.
func (t *Table) Append(r Row) {
	var fresh []string
	for k := range r {
		if _, ok := t.seen[k]; !ok {
			fresh = append(fresh, k)
		}
	}
	slices.Sort(fresh)
	for _, c := range fresh {
		t.addColumn(c)
	}
	t.rows = append(t.rows, r)
}

func (t *Table) addColumn(c string) {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[c]; ok {
		return
	}
	t.seen[c] = struct{}{}
	t.columns = append(t.columns, c)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns the rows. Callers must not mutate them.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}
	return t.rows
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.columns)
}

// HasColumn reports whether any row may carry the named column.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.seen[name]
	return ok
}

// Kind classifies the named column.
func (t *Table) Kind(name string) Kind {
	kind := Empty
	for _, r := range t.Rows() {
		v, ok := r[name]
		if !ok || v == nil {
			continue
		}
		if _, num := AsFloat(v); !num {
			return Categorical
		}
		kind = Numeric
	}
	return kind
}

// Filter returns a new table with the rows for which keep returns true.
// Columns and row order are preserved.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.Columns()...)
	for _, r := range t.Rows() {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Extent returns the minimum and maximum numeric value of a column.
// ok is false when the column has no numeric value.
func (t *Table) Extent(name string) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range t.Rows() {
		f, num := AsFloat(r[name])
		if !num {
			continue
		}
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// MarshalJSON encodes the rows as a JSON array of objects.
func (t *Table) MarshalJSON() ([]byte, error) {
	rows := t.Rows()
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(rows)
}

// AsFloat converts numeric values of any Go number type to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
