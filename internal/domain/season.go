package domain

// SeasonSummary represents per-season payroll inequality metrics.
// One summary exists per distinct season, ordered by Season ASC.
type SeasonSummary struct {
	Season int

	// Inequality
	Gini float64 // discrete Lorenz ratio, 1.0 means perfectly equal payrolls

	// Payroll vs win% (Pearson, per-team pairing)
	Correlation float64
	PValue      float64

	// Payroll totals
	Teams        int
	TotalPayroll int64
	MeanPayroll  float64
}

// Equality returns 1 - Gini.
func (s SeasonSummary) Equality() float64 {
	return 1 - s.Gini
}

// Correlation holds the outcome of a Pearson correlation test.
type Correlation struct {
	R      float64 // product-moment coefficient in [-1, 1]
	PValue float64 // two-sided p-value under H0: r = 0
	N      int     // number of paired observations
}
