package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrColumnNotFound is wrapped by ColumnError when a name matches no column.
	ErrColumnNotFound = errors.New("column not found")
	// ErrColumnNotNumeric is wrapped by ColumnError when a text column is used
	// where numbers are required.
	ErrColumnNotNumeric = errors.New("column is not numeric")
	// ErrBadPayload reports an inline dataset that cannot be read.
	ErrBadPayload = errors.New("invalid inline data")
)

// ColumnError describes a failed column lookup.
type ColumnError struct {
	Column    string
	Available []string
	Err       error
}

func (e *ColumnError) Error() string {
	if errors.Is(e.Err, ErrColumnNotFound) && len(e.Available) > 0 {
		return fmt.Sprintf("column '%s' not found; available columns: %s", e.Column, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("column '%s': %v", e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }
