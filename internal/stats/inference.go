package stats

import (
	"errors"
	"fmt"
	"math"

	moremath "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MeanInterval is a two-sided t confidence interval for the population mean.
type MeanInterval struct {
	Mean  Float `json:"mean"`
	N     int   `json:"n"`
	SE    Float `json:"se"`
	Low   Float `json:"low"`
	High  Float `json:"high"`
	Alpha Float `json:"alpha"`
}

// MeanCI builds the 1-alpha t interval for the mean of xs.
func MeanCI(xs []float64, alpha float64) (*MeanInterval, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	if err := needAtLeast(len(xs), 2); err != nil {
		return nil, err
	}
	mean, lo, hi := moremath.MeanCI(xs, 1-alpha)
	return &MeanInterval{
		Mean:  Float(mean),
		N:     len(xs),
		SE:    Float(stat.StdErr(stat.StdDev(xs, nil), float64(len(xs)))),
		Low:   Float(lo),
		High:  Float(hi),
		Alpha: Float(alpha),
	}, nil
}

// StdDevInterval is a chi-square confidence interval for the population
// standard deviation.
type StdDevInterval struct {
	SD    Float `json:"sd"`
	N     int   `json:"n"`
	Low   Float `json:"low"`
	High  Float `json:"high"`
	Alpha Float `json:"alpha"`
}

// StdDevCI builds the 1-alpha interval
// [sqrt((n-1)s²/χ²(1-α/2)), sqrt((n-1)s²/χ²(α/2))].
func StdDevCI(xs []float64, alpha float64) (*StdDevInterval, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	if err := needAtLeast(len(xs), 2); err != nil {
		return nil, err
	}
	df := float64(len(xs) - 1)
	variance := stat.Variance(xs, nil)
	chi := distuv.ChiSquared{K: df}
	return &StdDevInterval{
		SD:    Float(math.Sqrt(variance)),
		N:     len(xs),
		Low:   Float(math.Sqrt(df * variance / chi.Quantile(1-alpha/2))),
		High:  Float(math.Sqrt(df * variance / chi.Quantile(alpha/2))),
		Alpha: Float(alpha),
	}, nil
}

// TTestResult is a two-sided one-sample t-test of H0: mean == Mu0.
type TTestResult struct {
	Mean       Float  `json:"mean"`
	SD         Float  `json:"sd"`
	N          int    `json:"n"`
	Mu0        Float  `json:"mu0"`
	T          Float  `json:"t"`
	DF         Float  `json:"df"`
	PValue     Float  `json:"pvalue"`
	Alpha      Float  `json:"alpha"`
	RejectH0   bool   `json:"reject_h0"`
	Conclusion string `json:"conclusion"`
}

// OneSampleTTest tests whether the mean of xs differs from mu0.
func OneSampleTTest(xs []float64, mu0, alpha float64) (*TTestResult, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	if err := needAtLeast(len(xs), 2); err != nil {
		return nil, err
	}
	sample := moremath.Sample{Xs: xs}
	res, err := moremath.OneSampleTTest(sample, mu0, moremath.LocationDiffers)
	if err != nil {
		if errors.Is(err, moremath.ErrZeroVariance) {
			return nil, ErrZeroVariance
		}
		return nil, fmt.Errorf("t-test: %w", err)
	}
	reject := res.P < alpha
	return &TTestResult{
		Mean:       Float(sample.Mean()),
		SD:         Float(sample.StdDev()),
		N:          res.N1,
		Mu0:        Float(mu0),
		T:          Float(res.T),
		DF:         Float(res.DoF),
		PValue:     Float(res.P),
		Alpha:      Float(alpha),
		RejectH0:   reject,
		Conclusion: conclusion(reject, mu0, alpha),
	}, nil
}

func conclusion(reject bool, mu0, alpha float64) string {
	if reject {
		return fmt.Sprintf("Reject H0 at alpha=%g: the mean differs significantly from %g.", alpha, mu0)
	}
	return fmt.Sprintf("Fail to reject H0 at alpha=%g: no significant difference from %g.", alpha, mu0)
}
