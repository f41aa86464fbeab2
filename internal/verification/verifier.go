// Package verification checks that stored batches reproduce their source records.
package verification

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"payroll-gini/internal/domain"
	"payroll-gini/internal/storage"
)

// FloatTolerance is the tolerance for win percentage comparisons.
const FloatTolerance = 1e-12

// FieldDivergence represents a mismatch between expected and stored values.
type FieldDivergence struct {
	Row      int         // zero-based record index
	Field    string      // field name
	Expected interface{} // source value
	Actual   interface{} // stored value
}

// VerificationReport contains the result of verifying one batch.
type VerificationReport struct {
	BatchID     uuid.UUID
	Expected    int // records in source
	Stored      int // records read back
	Divergences []FieldDivergence
}

// Match reports whether the stored batch equals the source records.
func (r *VerificationReport) Match() bool {
	return r.Expected == r.Stored && len(r.Divergences) == 0
}

// CompareRecords compares records pairwise up to the shorter length.
// Length mismatches are not divergences; callers compare counts.
func CompareRecords(expected, actual []domain.TeamSeasonRecord) []FieldDivergence {
	var divergences []FieldDivergence

	n := min(len(expected), len(actual))
	for i := 0; i < n; i++ {
		e, a := expected[i], actual[i]
		if e.Season != a.Season {
			divergences = append(divergences, FieldDivergence{Row: i, Field: "Season", Expected: e.Season, Actual: a.Season})
		}
		if e.Payroll != a.Payroll {
			divergences = append(divergences, FieldDivergence{Row: i, Field: "Payroll", Expected: e.Payroll, Actual: a.Payroll})
		}
		if !floatEquals(e.WinPct, a.WinPct) {
			divergences = append(divergences, FieldDivergence{Row: i, Field: "WinPct", Expected: e.WinPct, Actual: a.WinPct})
		}
	}
	return divergences
}

// VerifyBatch reads batchID back from store and compares it to expected.
func VerifyBatch(ctx context.Context, store storage.TeamSeasonStore, batchID uuid.UUID, expected []domain.TeamSeasonRecord) (*VerificationReport, error) {
	stored, err := store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("read back batch %s: %w", batchID, err)
	}

	return &VerificationReport{
		BatchID:     batchID,
		Expected:    len(expected),
		Stored:      len(stored),
		Divergences: CompareRecords(expected, stored),
	}, nil
}

// floatEquals compares two float64 values within FloatTolerance.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= FloatTolerance
}
