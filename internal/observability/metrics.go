// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// DefaultNamespace prefixes every metric name when none is given.
const DefaultNamespace = "payroll_gini"

// Run statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds all Prometheus metrics for the application.
// Each instance owns its registry so runs can be pushed or tested in isolation.
type Metrics struct {
	registry *prometheus.Registry

	// Load metrics
	RecordsLoaded *prometheus.CounterVec
	BatchesStored prometheus.Counter

	// Pipeline metrics
	SeasonsAggregated prometheus.Counter
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  prometheus.Histogram

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RecordsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "records_loaded_total",
			Help:      "Total number of team-season records loaded by source",
		}, []string{"source"}),
		BatchesStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "batches_stored_total",
			Help:      "Total number of record batches stored",
		}),

		SeasonsAggregated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "seasons_aggregated_total",
			Help:      "Total number of season summaries computed",
		}),
		PipelineRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"status"}),
		PipelineDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline execution duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),

		LastSuccessfulRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of last successful pipeline run",
		}),
	}
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordLoaded adds n loaded records for source ("csv" or "store").
func (m *Metrics) RecordLoaded(source string, n int) {
	m.RecordsLoaded.WithLabelValues(source).Add(float64(n))
}

// RecordBatchStored increments the stored batches counter.
func (m *Metrics) RecordBatchStored() {
	m.BatchesStored.Inc()
}

// RecordPipelineRun records a pipeline run and its outcome.
func (m *Metrics) RecordPipelineRun(seasons int, duration time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	m.PipelineRunsTotal.WithLabelValues(status).Inc()
	m.PipelineDuration.Observe(duration.Seconds())
	if err == nil {
		m.SeasonsAggregated.Add(float64(seasons))
		m.LastSuccessfulRun.SetToCurrentTime()
	}
}

// Push sends all metrics to a Prometheus Pushgateway under job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if job == "" {
		job = DefaultNamespace
	}
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
