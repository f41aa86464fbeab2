// Package stats provides the Pearson correlation test used by season metrics.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"payroll-gini/internal/domain"
)

// Correlation errors.
var (
	// ErrLengthMismatch is returned when x and y have different lengths.
	ErrLengthMismatch = errors.New("sample length mismatch")

	// ErrInsufficientData is returned for fewer than two paired observations.
	ErrInsufficientData = errors.New("correlation undefined: need at least 2 observations")

	// ErrConstantInput is returned when either sample has zero variance.
	ErrConstantInput = errors.New("correlation undefined: constant input")
)

// Pearson computes the product-moment correlation of x and y and its two-sided
// p-value from Student's t distribution with n-2 degrees of freedom.
//
// With exactly two observations r is ±1 and the p-value is 1.
// A perfect correlation with more than two observations has p-value 0.
func Pearson(x, y []float64) (domain.Correlation, error) {
	n := len(x)
	if n != len(y) {
		return domain.Correlation{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, n, len(y))
	}
	if n < 2 {
		return domain.Correlation{}, fmt.Errorf("%w: got %d", ErrInsufficientData, n)
	}
	if isConstant(x) || isConstant(y) {
		return domain.Correlation{}, ErrConstantInput
	}

	r := clamp(stat.Correlation(x, y, nil), -1, 1)

	if n == 2 {
		return domain.Correlation{R: math.Copysign(1, r), PValue: 1, N: n}, nil
	}

	return domain.Correlation{R: r, PValue: twoSidedPValue(r, n), N: n}, nil
}

// twoSidedPValue returns P(|T| >= |t|) for t = r * sqrt(df / (1 - r^2)).
func twoSidedPValue(r float64, n int) float64 {
	if math.Abs(r) == 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/((1-r)*(1+r)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return clamp(2*dist.CDF(-math.Abs(t)), 0, 1)
}

func isConstant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
