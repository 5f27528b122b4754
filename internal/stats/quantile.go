package stats

import (
	"math"
	"sort"
)

func sortedCopy(xs []float64) []float64 {
	cp := make([]float64, len(xs))
	copy(cp, xs)
	sort.Float64s(cp)
	return cp
}

// quantile linearly interpolates between closest ranks (Hyndman-Fan type 7),
// the definition spreadsheet tools and NumPy use by default. sorted must be
// in ascending order.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// mode returns the most frequent value, preferring the smallest on ties.
// sorted must be in ascending order.
func mode(sorted []float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	best, bestRun := sorted[0], 0
	run := 0
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			run++
		} else {
			run = 1
		}
		if run > bestRun {
			best, bestRun = v, run
		}
	}
	return best
}
