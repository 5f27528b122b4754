package dataset

import (
	"math"
	"strings"
)

// Kind is the inferred type of a column.
type Kind string

const (
	KindNumber Kind = "number"
	KindText   Kind = "string"
)

// Column holds the values of one table column. Exactly one of Numbers or
// Texts is populated, depending on Kind.
type Column struct {
	Name string
	Kind Kind
	// Numbers holds numeric cells; NaN marks a missing cell.
	Numbers []float64
	// Texts holds text cells; "" marks a missing cell.
	Texts []string
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.Kind == KindNumber {
		return len(c.Numbers)
	}
	return len(c.Texts)
}

// Value returns cell i in a JSON-safe form: float64, string or nil for a
// missing numeric cell.
func (c *Column) Value(i int) any {
	if c.Kind == KindNumber {
		v := c.Numbers[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	}
	return c.Texts[i]
}

// Floats returns a copy of the non-missing numeric cells.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Numbers))
	for _, v := range c.Numbers {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Values returns the non-missing cells of the column in order.
func (c *Column) Values() []any {
	if c.Kind == KindNumber {
		out := make([]any, 0, len(c.Numbers))
		for _, v := range c.Floats() {
			out = append(out, v)
		}
		return out
	}
	out := make([]any, 0, len(c.Texts))
	for _, s := range c.Texts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Missing counts missing cells.
func (c *Column) Missing() int {
	if c.Kind == KindNumber {
		return len(c.Numbers) - len(c.Floats())
	}
	n := 0
	for _, s := range c.Texts {
		if s == "" {
			n++
		}
	}
	return n
}

// Table is an immutable, normalized in-memory dataset.
type Table struct {
	Name    string
	Columns []*Column
	Rows    int
}

// Column looks a column up by exact name, falling back to a
// case-insensitive match.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	key := strings.TrimSpace(name)
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, key) {
			return c, true
		}
	}
	return nil, false
}

// Names returns column names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// NumericNames returns the names of numeric columns in table order.
func (t *Table) NumericNames() []string {
	var out []string
	for _, c := range t.Columns {
		if c.Kind == KindNumber {
			out = append(out, c.Name)
		}
	}
	return out
}

// Types maps each column name to its kind.
func (t *Table) Types() map[string]Kind {
	out := make(map[string]Kind, len(t.Columns))
	for _, c := range t.Columns {
		out[c.Name] = c.Kind
	}
	return out
}

// Sample returns up to n leading rows keyed by column name.
func (t *Table) Sample(n int) []map[string]any {
	if n > t.Rows {
		n = t.Rows
	}
	if n < 0 {
		n = 0
	}
	rows := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, len(t.Columns))
		for _, c := range t.Columns {
			row[c.Name] = c.Value(i)
		}
		rows[i] = row
	}
	return rows
}
