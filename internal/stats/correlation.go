package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DropNaN returns the non-missing values of xs.
func DropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Pairwise keeps the positions where both x and y are present.
func Pairwise(x, y []float64) ([]float64, []float64) {
	n := min(len(x), len(y))
	px := make([]float64, 0, n)
	py := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		px = append(px, x[i])
		py = append(py, y[i])
	}
	return px, py
}

// CorrelationResult is a Pearson correlation with its two-sided p-value.
type CorrelationResult struct {
	R      Float `json:"r"`
	PValue Float `json:"p"`
	N      int   `json:"n"`
}

// Pearson correlates two equal-length samples.
func Pearson(x, y []float64) (*CorrelationResult, error) {
	if err := needAtLeast(len(x), 3); err != nil {
		return nil, err
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return nil, ErrZeroVariance
	}
	r := stat.Correlation(x, y, nil)
	return &CorrelationResult{R: Float(r), PValue: Float(correlationP(r, len(x))), N: len(x)}, nil
}

func correlationP(r float64, n int) float64 {
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	return 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Survival(math.Abs(t))
}
