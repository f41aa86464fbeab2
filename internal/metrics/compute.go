package metrics

import (
	"fmt"
	"sort"

	"payroll-gini/internal/domain"
	"payroll-gini/internal/stats"
)

// computeSeason builds the summary for one season.
// Records must be pre-filtered to the season and kept in input order:
// the correlation pairs payroll with win% per record, while the Gini
// computation works on its own ascending copy of payrolls.
func computeSeason(season int, records []domain.TeamSeasonRecord) (*domain.SeasonSummary, error) {
	n := len(records)
	if n == 0 {
		return nil, ErrNoRecords
	}

	// Paired samples in input order
	payrolls := make([]float64, n)
	winPcts := make([]float64, n)
	for i, r := range records {
		payrolls[i] = float64(r.Payroll)
		winPcts[i] = r.WinPct
	}

	// Sorted payrolls for the Lorenz accumulation
	sortedPayrolls := make([]int64, n)
	for i, r := range records {
		sortedPayrolls[i] = r.Payroll
	}
	sort.Slice(sortedPayrolls, func(i, j int) bool {
		return sortedPayrolls[i] < sortedPayrolls[j]
	})

	total := computeTotal(sortedPayrolls)
	mean := float64(total) / float64(n)

	gini, err := computeGini(sortedPayrolls, mean)
	if err != nil {
		return nil, fmt.Errorf("season %d: %w", season, err)
	}

	corr, err := stats.Pearson(payrolls, winPcts)
	if err != nil {
		return nil, fmt.Errorf("season %d payroll/win%% correlation: %w", season, err)
	}

	return &domain.SeasonSummary{
		Season:       season,
		Gini:         gini,
		Correlation:  corr.R,
		PValue:       corr.PValue,
		Teams:        n,
		TotalPayroll: total,
		MeanPayroll:  mean,
	}, nil
}

// computeTotal sums payrolls.
func computeTotal(payrolls []int64) int64 {
	var total int64
	for _, p := range payrolls {
		total += p
	}
	return total
}

// computeGini returns the discrete Lorenz ratio of actual to equal cumulative payroll.
//
// For each team in ascending payroll order the equal-share curve grows by mean
// and the actual curve grows by the team payroll; both running values are summed
// and the ratio of the sums is returned. sorted must be ASC. The accumulation
// order is part of the result and must not be changed.
func computeGini(sorted []int64, mean float64) (float64, error) {
	var (
		cumActual    int64
		cumEqual     float64
		sumCumActual int64
		sumCumEqual  float64
	)

	for _, p := range sorted {
		cumEqual += mean
		cumActual += p
		sumCumEqual += cumEqual
		sumCumActual += cumActual
	}

	if sumCumEqual == 0 {
		return 0, ErrZeroPayroll
	}
	return float64(sumCumActual) / sumCumEqual, nil
}

// distinctSeasons returns the sorted set of seasons present in records.
func distinctSeasons(records []domain.TeamSeasonRecord) []int {
	seen := make(map[int]struct{})
	for _, r := range records {
		seen[r.Season] = struct{}{}
	}

	seasons := make([]int, 0, len(seen))
	for s := range seen {
		seasons = append(seasons, s)
	}
	sort.Ints(seasons)
	return seasons
}
