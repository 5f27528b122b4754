package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CentralTendency holds mean, median and mode of a sample.
type CentralTendency struct {
	N      int   `json:"n"`
	Mean   Float `json:"mean"`
	Median Float `json:"median"`
	Mode   Float `json:"mode"`
}

// NewCentralTendency describes the center of xs.
func NewCentralTendency(xs []float64) (*CentralTendency, error) {
	if len(xs) == 0 {
		return nil, ErrEmptySample
	}
	sorted := sortedCopy(xs)
	return &CentralTendency{
		N:      len(xs),
		Mean:   Float(stat.Mean(xs, nil)),
		Median: Float(quantile(sorted, 0.5)),
		Mode:   Float(mode(sorted)),
	}, nil
}

// Dispersion holds spread measures of a sample. Variance and StdDev use the
// n-1 denominator; CV is null when the mean is zero.
type Dispersion struct {
	N        int   `json:"n"`
	Range    Float `json:"range"`
	Variance Float `json:"variance"`
	StdDev   Float `json:"std_dev"`
	IQR      Float `json:"iqr"`
	CV       Float `json:"cv"`
}

// NewDispersion describes the spread of xs.
func NewDispersion(xs []float64) (*Dispersion, error) {
	if len(xs) == 0 {
		return nil, ErrEmptySample
	}
	mean, variance := stat.MeanVariance(xs, nil)
	std := math.Sqrt(variance)
	cv := math.NaN()
	if mean != 0 {
		cv = std / mean
	}
	sorted := sortedCopy(xs)
	return &Dispersion{
		N:        len(xs),
		Range:    Float(floats.Max(xs) - floats.Min(xs)),
		Variance: Float(variance),
		StdDev:   Float(std),
		IQR:      Float(quantile(sorted, 0.75) - quantile(sorted, 0.25)),
		CV:       Float(cv),
	}, nil
}

// Summary is the compact numeric profile used by dataset reports.
type Summary struct {
	Count int   `json:"count"`
	Mean  Float `json:"mean"`
	Std   Float `json:"std"`
	Min   Float `json:"min"`
	Max   Float `json:"max"`
}

// Summarize profiles xs; an empty sample yields a zero count and nulls.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		nan := Float(math.NaN())
		return Summary{Mean: nan, Std: nan, Min: nan, Max: nan}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Summary{
		Count: len(xs),
		Mean:  Float(mean),
		Std:   Float(std),
		Min:   Float(floats.Min(xs)),
		Max:   Float(floats.Max(xs)),
	}
}
