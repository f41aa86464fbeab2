// Package pipeline wires loading, aggregation, rendering and output for one run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"payroll-gini/internal/observability"
	"payroll-gini/internal/plot"
	"payroll-gini/internal/reporting"
)

// Options controls run outputs. Empty paths skip the corresponding output.
type Options struct {
	HeaderEvery int
	Plot        plot.Options
	ChartPath   string
	CSVPath     string
}

// Pipeline runs one analysis from a RecordSource.
type Pipeline struct {
	source    RecordSource
	generator *reporting.Generator
	opts      Options
	logger    *log.Logger
	metrics   *observability.Metrics
	clock     func() time.Time
}

// New creates a pipeline reading from source.
func New(source RecordSource, opts Options) *Pipeline {
	if opts.Plot.Title == "" {
		opts.Plot.Title = reporting.ChartTitle
	}
	return &Pipeline{
		source:    source,
		generator: reporting.NewGenerator(),
		opts:      opts,
		clock:     time.Now,
	}
}

// WithLogger enables progress logging. A nil logger keeps the pipeline silent.
func (p *Pipeline) WithLogger(logger *log.Logger) *Pipeline {
	p.logger = logger
	return p
}

// WithMetrics records run metrics into m.
func (p *Pipeline) WithMetrics(m *observability.Metrics) *Pipeline {
	p.metrics = m
	return p
}

// WithClock sets a custom clock for duration measurement.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	p.clock = clock
	return p
}

// Run loads records, computes the report, writes the chart and CSV, and then
// writes the text table to out. Nothing reaches out unless every file output
// succeeded.
func (p *Pipeline) Run(ctx context.Context, out io.Writer) (report *reporting.Report, err error) {
	start := p.clock()
	defer func() {
		if p.metrics == nil {
			return
		}
		seasons := 0
		if report != nil {
			seasons = len(report.Seasons)
		}
		p.metrics.RecordPipelineRun(seasons, p.clock().Sub(start), err)
	}()

	records, err := p.source.Records(ctx)
	if err != nil {
		return nil, err
	}
	p.logf("loaded %d records from %s", len(records), p.source.Name())
	if p.metrics != nil {
		p.metrics.RecordLoaded(p.source.Name(), len(records))
	}

	report, err = p.generator.Generate(records)
	if err != nil {
		return nil, err
	}
	p.logf("aggregated %d seasons, cross-season r=%.4f p=%.4f",
		len(report.Seasons), report.CrossSeason.R, report.CrossSeason.PValue)

	table := reporting.RenderTable(report, reporting.TableOptions{HeaderEvery: p.opts.HeaderEvery})

	if p.opts.ChartPath != "" {
		if err := p.writeChart(report); err != nil {
			return nil, err
		}
		p.logf("chart written to %s", p.opts.ChartPath)
	}

	if p.opts.CSVPath != "" {
		if err := os.WriteFile(p.opts.CSVPath, []byte(reporting.RenderCSV(report)), 0o644); err != nil {
			return nil, fmt.Errorf("write season csv: %w", err)
		}
		p.logf("season csv written to %s", p.opts.CSVPath)
	}

	if _, err := io.WriteString(out, table); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return report, nil
}

func (p *Pipeline) writeChart(report *reporting.Report) error {
	seasons, gini, correlation := report.SeasonValues()
	fig, err := plot.NewFigure(seasons, gini, correlation, p.opts.Plot)
	if err != nil {
		return fmt.Errorf("build chart: %w", err)
	}
	if err := fig.Save(p.opts.ChartPath); err != nil {
		return fmt.Errorf("save chart %s: %w", p.opts.ChartPath, err)
	}
	return nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
