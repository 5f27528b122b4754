package stats

import (
	"gonum.org/v1/gonum/stat"
)

// ConstTerm is the coefficient key of the intercept.
const ConstTerm = "const"

// RegressionResult is an ordinary least squares fit y = const + b*x.
type RegressionResult struct {
	Coefficients map[string]Float `json:"coefficients"`
	R2           Float            `json:"r2"`
	N            int              `json:"n"`
}

// OLS fits y on a single regressor named xName.
func OLS(xName string, x, y []float64) (*RegressionResult, error) {
	if err := needAtLeast(len(x), 3); err != nil {
		return nil, err
	}
	if stat.Variance(x, nil) == 0 {
		return nil, ErrZeroVariance
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return &RegressionResult{
		Coefficients: map[string]Float{ConstTerm: Float(alpha), xName: Float(beta)},
		R2:           Float(stat.RSquared(x, y, nil, alpha, beta)),
		N:            len(x),
	}, nil
}

// Predict evaluates the fitted line at x.
func (r *RegressionResult) Predict(xName string, x float64) float64 {
	return float64(r.Coefficients[ConstTerm]) + float64(r.Coefficients[xName])*x
}
