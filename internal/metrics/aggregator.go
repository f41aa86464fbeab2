// Package metrics computes per-season payroll inequality metrics.
package metrics

import (
	"errors"
	"fmt"

	"payroll-gini/internal/domain"
	"payroll-gini/internal/stats"
)

// Aggregation errors.
var (
	// ErrNoRecords is returned when there is nothing to aggregate.
	ErrNoRecords = errors.New("no team-season records available for aggregation")

	// ErrZeroPayroll is returned when a season's total payroll is zero.
	ErrZeroPayroll = errors.New("division by zero: season total payroll is zero")
)

// Aggregate groups records by season and computes one summary per season,
// ordered by season ASC. Returns ErrNoRecords for empty input.
func Aggregate(records []domain.TeamSeasonRecord) ([]domain.SeasonSummary, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	bySeason := make(map[int][]domain.TeamSeasonRecord)
	for _, r := range records {
		bySeason[r.Season] = append(bySeason[r.Season], r)
	}

	seasons := distinctSeasons(records)
	summaries := make([]domain.SeasonSummary, 0, len(seasons))
	for _, season := range seasons {
		summary, err := computeSeason(season, bySeason[season])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}

	return summaries, nil
}

// CrossSeason correlates payroll equality (1 - Gini) with the payroll/win%
// correlation across seasons, in season order.
func CrossSeason(summaries []domain.SeasonSummary) (domain.Correlation, error) {
	equality := make([]float64, len(summaries))
	correlation := make([]float64, len(summaries))
	for i, s := range summaries {
		equality[i] = s.Equality()
		correlation[i] = s.Correlation
	}

	corr, err := stats.Pearson(equality, correlation)
	if err != nil {
		return domain.Correlation{}, fmt.Errorf("cross-season correlation: %w", err)
	}
	return corr, nil
}
