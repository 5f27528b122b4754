package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ResidualSource labels the within-group row of an ANOVA table.
const ResidualSource = "Residual"

// AnovaRow is one line of an ANOVA table. F and PR(>F) are null on the
// residual row.
type AnovaRow struct {
	Source string `json:"source"`
	SumSq  Float  `json:"sum_sq"`
	DF     Float  `json:"df"`
	F      Float  `json:"F"`
	PR     Float  `json:"PR(>F)"`
}

// AnovaTable is a one-way analysis of variance.
type AnovaTable struct {
	Groups int        `json:"groups"`
	N      int        `json:"n"`
	Rows   []AnovaRow `json:"rows"`
}

// OneWayANOVA partitions the variance of values by the parallel labels
// slice. The factor row is labelled C(factor).
func OneWayANOVA(factor string, values []float64, labels []string) (*AnovaTable, error) {
	if len(values) != len(labels) {
		return nil, fmt.Errorf("anova: %d values but %d group labels", len(values), len(labels))
	}
	var order []string
	groups := make(map[string][]float64)
	for i, v := range values {
		g := labels[i]
		if _, ok := groups[g]; !ok {
			order = append(order, g)
		}
		groups[g] = append(groups[g], v)
	}
	n, k := len(values), len(order)
	if n == 0 {
		return nil, ErrEmptySample
	}
	if k < 2 {
		return nil, fmt.Errorf("%w: need at least 2 groups, have %d", ErrInsufficientData, k)
	}
	if n <= k {
		return nil, fmt.Errorf("%w: have %d observations for %d groups", ErrInsufficientData, n, k)
	}

	grand := stat.Mean(values, nil)
	var between, within float64
	for _, g := range order {
		xs := groups[g]
		m := stat.Mean(xs, nil)
		between += float64(len(xs)) * (m - grand) * (m - grand)
		dev := make([]float64, len(xs))
		copy(dev, xs)
		floats.AddConst(-m, dev)
		within += floats.Dot(dev, dev)
	}
	dfB, dfW := float64(k-1), float64(n-k)
	f := (between / dfB) / (within / dfW)
	p := distuv.F{D1: dfB, D2: dfW}.Survival(f)

	nan := Float(math.NaN())
	return &AnovaTable{
		Groups: k,
		N:      n,
		Rows: []AnovaRow{
			{Source: "C(" + factor + ")", SumSq: Float(between), DF: Float(dfB), F: Float(f), PR: Float(p)},
			{Source: ResidualSource, SumSq: Float(within), DF: Float(dfW), F: nan, PR: nan},
		},
	}, nil
}
