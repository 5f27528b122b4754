package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairwiseDropsIncompletePairs(t *testing.T) {
	nan := math.NaN()
	x, y := Pairwise([]float64{1, nan, 3, 4}, []float64{10, 20, nan, 40})
	assert.Equal(t, []float64{1, 4}, x)
	assert.Equal(t, []float64{10, 40}, y)
	assert.Equal(t, []float64{1, 3}, DropNaN([]float64{1, nan, 3}))
}

func TestPearson(t *testing.T) {
	res, err := Pearson([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(res.R), 1e-12)
	assert.InDelta(t, 0.0, float64(res.PValue), 1e-9)
	assert.Equal(t, 4, res.N)

	res, err = Pearson([]float64{1, 2, 3, 4, 5}, []float64{2, 1, 4, 3, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, float64(res.R), 1e-12)
	assert.InDelta(t, 0.1041, float64(res.PValue), 1e-3)
}

func TestPearsonEdgeCases(t *testing.T) {
	_, err := Pearson([]float64{1, 2}, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrInsufficientData))

	_, err = Pearson([]float64{1, 1, 1}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrZeroVariance))
}

func TestOLSRecoversExactLine(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 3 + 2*v
	}
	res, err := OLS("Units", x, y)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, float64(res.Coefficients[ConstTerm]), 1e-9)
	assert.InDelta(t, 2.0, float64(res.Coefficients["Units"]), 1e-9)
	assert.InDelta(t, 1.0, float64(res.R2), 1e-9)
	assert.Equal(t, 5, res.N)
	assert.InDelta(t, 23.0, res.Predict("Units", 10), 1e-9)

	_, err = OLS("Units", []float64{2, 2, 2}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrZeroVariance))
}
