package reporting

import "payroll-gini/internal/domain"

// Report titles.
const (
	TableTitle = "Gini Coefficient and Payroll-Win% Correlation by Season"
	ChartTitle = "MLB Gini Coefficient and Payroll-Win% Correlation by Season"
)

// DefaultHeaderEvery is how many data rows are printed between repeated headers.
const DefaultHeaderEvery = 15

// Report represents the season inequality report.
type Report struct {
	// Seasons sorted by season ASC
	Seasons []domain.SeasonSummary

	// 1 - Gini vs payroll/win% correlation across seasons
	CrossSeason domain.Correlation
}

// SeasonValues returns the x/y series used for charting: season, Gini and correlation.
func (r *Report) SeasonValues() (seasons, gini, correlation []float64) {
	seasons = make([]float64, len(r.Seasons))
	gini = make([]float64, len(r.Seasons))
	correlation = make([]float64, len(r.Seasons))
	for i, s := range r.Seasons {
		seasons[i] = float64(s.Season)
		gini[i] = s.Gini
		correlation[i] = s.Correlation
	}
	return seasons, gini, correlation
}
