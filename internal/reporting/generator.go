package reporting

import (
	"payroll-gini/internal/domain"
	"payroll-gini/internal/metrics"
)

// Generator produces reports from team-season records.
type Generator struct{}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate aggregates records by season and correlates equality with the
// payroll/win% relationship across seasons.
func (g *Generator) Generate(records []domain.TeamSeasonRecord) (*Report, error) {
	summaries, err := metrics.Aggregate(records)
	if err != nil {
		return nil, err
	}

	cross, err := metrics.CrossSeason(summaries)
	if err != nil {
		return nil, err
	}

	return &Report{
		Seasons:     summaries,
		CrossSeason: cross,
	}, nil
}
