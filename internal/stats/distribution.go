package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MaxBinomialTrials bounds the size of a binomial PMF table.
const MaxBinomialTrials = 100000

// DistributionTable lists a discrete PMF over k = 0, 1, ...
type DistributionTable struct {
	K        []int   `json:"k"`
	PMF      []Float `json:"pmf"`
	Mean     Float   `json:"mean"`
	Variance Float   `json:"variance"`
}

// BinomialResult is the PMF of Binomial(n, p) over k = 0..n.
type BinomialResult struct {
	N int   `json:"n"`
	P Float `json:"p"`
	DistributionTable
}

// Binomial tabulates the binomial distribution.
func Binomial(n int, p float64) (*BinomialResult, error) {
	if n < 1 || n > MaxBinomialTrials {
		return nil, &ParamError{Name: "n", Value: n, Reason: "must be between 1 and 100000"}
	}
	if !(p >= 0 && p <= 1) {
		return nil, &ParamError{Name: "p", Value: p, Reason: "must be between 0 and 1"}
	}
	d := distuv.Binomial{N: float64(n), P: p}
	k := make([]int, n+1)
	pmf := make([]float64, n+1)
	for i := range k {
		k[i] = i
		switch p {
		// log-space evaluation yields NaN at the degenerate ends
		case 0:
			pmf[i] = boolProb(i == 0)
		case 1:
			pmf[i] = boolProb(i == n)
		default:
			pmf[i] = d.Prob(float64(i))
		}
	}
	return &BinomialResult{
		N: n,
		P: Float(p),
		DistributionTable: DistributionTable{
			K:        k,
			PMF:      toFloats(pmf),
			Mean:     Float(d.Mean()),
			Variance: Float(d.Variance()),
		},
	}, nil
}

func boolProb(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// PoissonResult is the PMF of Poisson(λ) over k = 0..max(20, ⌊3λ⌋)-1.
type PoissonResult struct {
	Lambda Float `json:"lambda"`
	DistributionTable
}

// Poisson tabulates the Poisson distribution.
func Poisson(lambda float64) (*PoissonResult, error) {
	if !(lambda > 0) || math.IsInf(lambda, 0) || lambda > MaxBinomialTrials {
		return nil, &ParamError{Name: "lambda", Value: lambda, Reason: "must be positive and at most 100000"}
	}
	d := distuv.Poisson{Lambda: lambda}
	maxK := 20
	if m := int(lambda * 3); m > maxK {
		maxK = m
	}
	k := make([]int, maxK)
	pmf := make([]float64, maxK)
	for i := range k {
		k[i] = i
		pmf[i] = d.Prob(float64(i))
	}
	return &PoissonResult{
		Lambda: Float(lambda),
		DistributionTable: DistributionTable{
			K:        k,
			PMF:      toFloats(pmf),
			Mean:     Float(d.Mean()),
			Variance: Float(d.Variance()),
		},
	}, nil
}

// normalCurvePoints is the number of samples in NormalResult.X.
const normalCurvePoints = 101

// NormalResult is P(a <= X <= b) for X ~ N(mu, sigma²) plus a PDF curve over
// mu ± 4 sigma.
type NormalResult struct {
	Mu    Float   `json:"mu"`
	Sigma Float   `json:"sigma"`
	A     Float   `json:"a"`
	B     Float   `json:"b"`
	Prob  Float   `json:"prob"`
	X     []Float `json:"x"`
	PDF   []Float `json:"pdf"`
}

// NormalInterval computes the probability mass of [a, b].
func NormalInterval(mu, sigma, a, b float64) (*NormalResult, error) {
	if !(sigma > 0) {
		return nil, &ParamError{Name: "sigma", Value: sigma, Reason: "must be positive"}
	}
	if a > b {
		return nil, &ParamError{Name: "a", Value: a, Reason: "must not exceed b"}
	}
	d := distuv.Normal{Mu: mu, Sigma: sigma}
	xs := make([]float64, normalCurvePoints)
	pdf := make([]float64, normalCurvePoints)
	lo, step := mu-4*sigma, 8*sigma/float64(normalCurvePoints-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
		pdf[i] = d.Prob(xs[i])
	}
	return &NormalResult{
		Mu:    Float(mu),
		Sigma: Float(sigma),
		A:     Float(a),
		B:     Float(b),
		Prob:  Float(d.CDF(b) - d.CDF(a)),
		X:     toFloats(xs),
		PDF:   toFloats(pdf),
	}, nil
}
