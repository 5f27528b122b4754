package analysis

import (
	"math"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

// Parameter selects the population parameter of a confidence interval.
type Parameter string

const (
	ParamMean   Parameter = "mean"
	ParamStdDev Parameter = "sd"
)

// CentralTendency computes mean, median and mode of a numeric column.
func CentralTendency(t *dataset.Table, col string) (*stats.CentralTendency, error) {
	xs, err := Sample(t, col)
	if err != nil {
		return nil, err
	}
	return stats.NewCentralTendency(xs)
}

// Dispersion computes the spread measures of a numeric column.
func Dispersion(t *dataset.Table, col string) (*stats.Dispersion, error) {
	xs, err := Sample(t, col)
	if err != nil {
		return nil, err
	}
	return stats.NewDispersion(xs)
}

// ConfidenceInterval builds a 1-alpha interval for the mean or the standard
// deviation of a column. An empty parameter means the mean.
func ConfidenceInterval(t *dataset.Table, col string, alpha float64, param Parameter) (any, error) {
	if param != "" && param != ParamMean && param != ParamStdDev {
		return nil, &stats.ParamError{Name: "parameter", Value: param, Reason: "must be 'mean' or 'sd'"}
	}
	xs, err := Sample(t, col)
	if err != nil {
		return nil, err
	}
	if param == ParamStdDev {
		return stats.StdDevCI(xs, alpha)
	}
	return stats.MeanCI(xs, alpha)
}

// TTest runs a two-sided one-sample t-test of H0: mean(col) == mu0.
func TTest(t *dataset.Table, col string, mu0, alpha float64) (*stats.TTestResult, error) {
	xs, err := Sample(t, col)
	if err != nil {
		return nil, err
	}
	return stats.OneSampleTTest(xs, mu0, alpha)
}

// ANOVA runs a one-way ANOVA of a numeric column grouped by another column.
// Rows missing either value are skipped.
func ANOVA(t *dataset.Table, valueCol, groupCol string) (*stats.AnovaTable, error) {
	xs, err := Numeric(t, valueCol)
	if err != nil {
		return nil, err
	}
	g, err := Lookup(t, groupCol)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(xs))
	labels := make([]string, 0, len(xs))
	for i, x := range xs {
		l, ok := label(g, i)
		if !ok || math.IsNaN(x) {
			continue
		}
		values = append(values, x)
		labels = append(labels, l)
	}
	return stats.OneWayANOVA(g.Name, values, labels)
}

// Correlation computes the Pearson correlation of two numeric columns.
func Correlation(t *dataset.Table, x, y string) (*stats.CorrelationResult, error) {
	xs, ys, err := Paired(t, x, y)
	if err != nil {
		return nil, err
	}
	return stats.Pearson(xs, ys)
}

// Regression fits y = const + b*x by ordinary least squares.
func Regression(t *dataset.Table, x, y string) (*stats.RegressionResult, error) {
	xs, ys, err := Paired(t, x, y)
	if err != nil {
		return nil, err
	}
	name := x
	if c, ok := t.Column(x); ok {
		name = c.Name
	}
	return stats.OLS(name, xs, ys)
}
