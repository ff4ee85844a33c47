package estimator

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Table is an immutable in-memory Dataset.
type Table struct {
	names  []string
	values map[string]cty.Value
	rows   int
}

// NewTable builds a Table from parallel name and value slices. Each value must
// be a known, non-null list and all lists must have the same length.
func NewTable(names []string, values []cty.Value) (*Table, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("table needs one value per column name, got %d names and %d values", len(names), len(values))
	}

	t := &Table{values: make(map[string]cty.Value, len(names))}
	for i, name := range names {
		next, err := t.With(name, values[i])
		if err != nil {
			return nil, err
		}
		t = next
	}
	return t, nil
}

// With returns a copy of the table with the named column added, or replaced
// when a column of that name already exists.
func (t *Table) With(name string, value cty.Value) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("column name cannot be empty")
	}
	if value.IsNull() || !value.IsKnown() {
		return nil, fmt.Errorf("column %q must be a known, non-null value", name)
	}
	if !value.Type().IsListType() {
		return nil, fmt.Errorf("column %q must be a list, got %s", name, value.Type().FriendlyName())
	}

	n := value.LengthInt()
	others := len(t.names)
	if _, replacing := t.values[name]; replacing {
		others--
	}
	if others > 0 && n != t.rows {
		return nil, fmt.Errorf("column %q has %d rows, table has %d", name, n, t.rows)
	}

	next := &Table{
		names:  make([]string, 0, len(t.names)+1),
		values: make(map[string]cty.Value, len(t.values)+1),
		rows:   n,
	}
	for _, existing := range t.names {
		next.names = append(next.names, existing)
		next.values[existing] = t.values[existing]
	}
	if _, exists := next.values[name]; !exists {
		next.names = append(next.names, name)
	}
	next.values[name] = value
	return next, nil
}

// Columns implements Dataset.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Column implements Dataset.
func (t *Table) Column(name string) (cty.Value, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Rows implements Dataset.
func (t *Table) Rows() int {
	return t.rows
}

// FromDataset copies any Dataset into a Table so it can be extended.
func FromDataset(data Dataset) (*Table, error) {
	if t, ok := data.(*Table); ok {
		return t, nil
	}
	names := data.Columns()
	values := make([]cty.Value, len(names))
	for i, name := range names {
		v, ok := data.Column(name)
		if !ok {
			return nil, fmt.Errorf("dataset lists column %q but does not provide it", name)
		}
		values[i] = v
	}
	return NewTable(names, values)
}
