package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySample indicates a computation was given no observations.
	ErrEmptySample = errors.New("sample is empty")
	// ErrInsufficientData indicates too few observations for the statistic.
	ErrInsufficientData = errors.New("not enough observations")
	// ErrZeroVariance indicates a test statistic is undefined because the
	// sample does not vary.
	ErrZeroVariance = errors.New("sample has zero variance")
)

// ParamError reports an out-of-range parameter.
type ParamError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Name, e.Value, e.Reason)
}

func needAtLeast(n, want int) error {
	if n == 0 {
		return ErrEmptySample
	}
	if n < want {
		return fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientData, n, want)
	}
	return nil
}

func checkAlpha(alpha float64) error {
	if !(alpha > 0 && alpha < 1) {
		return &ParamError{Name: "alpha", Value: alpha, Reason: "must be between 0 and 1"}
	}
	return nil
}
