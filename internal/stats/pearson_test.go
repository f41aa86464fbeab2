package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPearson_TwoObservations(t *testing.T) {
	// payroll [200, 100], win% [0.6, 0.4]: perfectly increasing pair
	got, err := Pearson([]float64{200, 100}, []float64{0.6, 0.4})
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.R)
	assert.Equal(t, 1.0, got.PValue)
	assert.Equal(t, 2, got.N)
}

func TestPearson_TwoObservationsNegative(t *testing.T) {
	got, err := Pearson([]float64{100, 200}, []float64{0.6, 0.4})
	require.NoError(t, err)

	assert.Equal(t, -1.0, got.R)
	assert.Equal(t, 1.0, got.PValue)
}

func TestPearson_SelfCorrelationIsOne(t *testing.T) {
	x := []float64{3, 1, 4, 1, 5, 9, 2, 6}

	got, err := Pearson(x, x)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, got.R, 1e-12)
	assert.InDelta(t, 0.0, got.PValue, 1e-12)
}

func TestPearson_Symmetric(t *testing.T) {
	x := []float64{10, 20, 30, 40, 55}
	y := []float64{0.41, 0.52, 0.48, 0.61, 0.55}

	xy, err := Pearson(x, y)
	require.NoError(t, err)
	yx, err := Pearson(y, x)
	require.NoError(t, err)

	assert.InDelta(t, xy.R, yx.R, 1e-12)
	assert.InDelta(t, xy.PValue, yx.PValue, 1e-12)
}

func TestPearson_KnownValues(t *testing.T) {
	// r = 0.8, n = 5:
	// t = 0.8 * sqrt(3 / 0.36) = 2.3094, two-sided p = 0.104088
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 1, 4, 3, 5}

	got, err := Pearson(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 0.8, got.R, 1e-12)
	assert.InDelta(t, 0.104088, got.PValue, 1e-5)
	assert.Equal(t, 5, got.N)
}

func TestPearson_UncorrelatedHasPValueOne(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{1, 2, 3, 2, 1}

	got, err := Pearson(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, got.R, 1e-12)
	assert.InDelta(t, 1.0, got.PValue, 1e-9)
}

func TestPearson_Bounds(t *testing.T) {
	x := []float64{12.5, 7.25, 3.0, 18.0, 11.0, 9.5}
	y := []float64{0.3, 0.7, 0.2, 0.9, 0.4, 0.45}

	got, err := Pearson(x, y)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(got.R))
	assert.GreaterOrEqual(t, got.R, -1.0)
	assert.LessOrEqual(t, got.R, 1.0)
	assert.GreaterOrEqual(t, got.PValue, 0.0)
	assert.LessOrEqual(t, got.PValue, 1.0)
}

func TestPearson_Errors(t *testing.T) {
	_, err := Pearson([]float64{1}, []float64{0.5})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Pearson(nil, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Pearson([]float64{1, 2}, []float64{0.5})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Pearson([]float64{100, 100, 100}, []float64{0.4, 0.5, 0.6})
	assert.ErrorIs(t, err, ErrConstantInput)

	_, err = Pearson([]float64{1, 2, 3}, []float64{0.5, 0.5, 0.5})
	assert.ErrorIs(t, err, ErrConstantInput)
}
