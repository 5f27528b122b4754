// Package analysis runs column lookups and statistics over a dataset.Table.
package analysis

import (
	"fmt"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

// Lookup returns the named column.
func Lookup(t *dataset.Table, name string) (*dataset.Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, &ColumnError{Column: name, Available: t.Names(), Err: ErrColumnNotFound}
	}
	return c, nil
}

// Numeric returns the named numeric column, missing cells as NaN.
func Numeric(t *dataset.Table, name string) ([]float64, error) {
	c, err := Lookup(t, name)
	if err != nil {
		return nil, err
	}
	if c.Kind != dataset.KindNumber {
		return nil, &ColumnError{Column: c.Name, Err: ErrColumnNotNumeric}
	}
	return c.Numbers, nil
}

// Sample returns the present values of a numeric column.
func Sample(t *dataset.Table, name string) ([]float64, error) {
	xs, err := Numeric(t, name)
	if err != nil {
		return nil, err
	}
	return stats.DropNaN(xs), nil
}

// Paired returns two numeric columns with incomplete rows dropped.
func Paired(t *dataset.Table, x, y string) ([]float64, []float64, error) {
	xs, err := Numeric(t, x)
	if err != nil {
		return nil, nil, err
	}
	ys, err := Numeric(t, y)
	if err != nil {
		return nil, nil, err
	}
	px, py := stats.Pairwise(xs, ys)
	return px, py, nil
}

// Values lists a column's present values, numbers as float64 and text as
// string.
func Values(t *dataset.Table, name string) ([]any, error) {
	c, err := Lookup(t, name)
	if err != nil {
		return nil, err
	}
	return c.Values(), nil
}

// Schema describes the columns of a table.
type Schema struct {
	Columns []string                `json:"columns"`
	Types   map[string]dataset.Kind `json:"column_types"`
	Rows    int                     `json:"rows"`
}

// Describe reports column names, kinds and row count.
func Describe(t *dataset.Table) Schema {
	return Schema{Columns: t.Names(), Types: t.Types(), Rows: t.Rows}
}

func label(c *dataset.Column, i int) (string, bool) {
	switch v := c.Value(i).(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case float64:
		return fmt.Sprintf("%g", v), true
	default:
		return fmt.Sprint(v), true
	}
}
