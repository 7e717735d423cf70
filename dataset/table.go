package dataset

import (
	"fmt"
	"math"

	"github.com/arloliu/countfit/errs"
	"github.com/arloliu/countfit/format"
)

// Column is one named column of a Table. Exactly one of Floats or Strings is
// used, according to Kind.
type Column struct {
	Name    string
	Kind    format.ColumnKind
	Floats  []float64
	Strings []string
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.Kind == format.KindText {
		return len(c.Strings)
	}

	return len(c.Floats)
}

// Missing reports whether row i holds a missing value.
func (c *Column) Missing(i int) bool {
	if c.Kind == format.KindText {
		return c.Strings[i] == ""
	}

	return math.IsNaN(c.Floats[i])
}

// Table is an ordered collection of equally long columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// AddNumeric appends a numeric column. The slice is retained, not copied.
func (t *Table) AddNumeric(name string, values []float64) error {
	return t.add(&Column{Name: name, Kind: format.KindNumeric, Floats: values})
}

// AddText appends a text column. The slice is retained, not copied.
func (t *Table) AddText(name string, values []string) error {
	return t.add(&Column{Name: name, Kind: format.KindText, Strings: values})
}

func (t *Table) add(c *Column) error {
	if c.Name == "" {
		return fmt.Errorf("column name must not be empty")
	}
	if _, ok := t.index[c.Name]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, c.Name)
	}
	if len(t.columns) > 0 && c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}

	t.index[c.Name] = len(t.columns)
	t.columns = append(t.columns, c)
	t.rows = c.Len()

	return nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return t.rows
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Name
	}

	return out
}

// Columns returns the columns in order. The returned columns share storage
// with the table.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
	}

	return t.columns[i], nil
}

// Numeric returns the values of a numeric column.
func (t *Table) Numeric(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != format.KindNumeric {
		return nil, fmt.Errorf("%w: %q is %s, want numeric", errs.ErrColumnKind, name, c.Kind)
	}

	return c.Floats, nil
}

// Text returns the values of a text column. Numeric columns are rendered with
// %g so integer-coded categories can be used as text.
func (t *Table) Text(name string) ([]string, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind == format.KindText {
		return c.Strings, nil
	}

	out := make([]string, len(c.Floats))
	for i, v := range c.Floats {
		if !math.IsNaN(v) {
			out[i] = fmt.Sprintf("%g", v)
		}
	}

	return out, nil
}

// CompleteCases returns a new table holding only the rows where none of the
// named columns is missing. With no names, every column is checked. The
// second result is the number of dropped rows.
func (t *Table) CompleteCases(names ...string) (*Table, int, error) {
	check := t.columns
	if len(names) > 0 {
		check = make([]*Column, 0, len(names))
		for _, name := range names {
			c, err := t.Column(name)
			if err != nil {
				return nil, 0, err
			}
			check = append(check, c)
		}
	}

	keep := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		complete := true
		for _, c := range check {
			if c.Missing(i) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	out := NewTable()
	for _, c := range t.columns {
		nc := &Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == format.KindText {
			nc.Strings = make([]string, len(keep))
			for j, i := range keep {
				nc.Strings[j] = c.Strings[i]
			}
		} else {
			nc.Floats = make([]float64, len(keep))
			for j, i := range keep {
				nc.Floats[j] = c.Floats[i]
			}
		}
		if err := out.add(nc); err != nil {
			return nil, 0, err
		}
	}
	out.rows = len(keep)

	return out, t.rows - len(keep), nil
}
