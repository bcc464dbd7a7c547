package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

const (
	pathOutcomeFound     = "found"
	pathOutcomeNoPath    = "no_path"
	pathOutcomeTruncated = "truncated"
	pathOutcomeError     = "error"
)

// Metrics counts check, run and path outcomes on a private registry so the run
// command can export them as a node-exporter textfile.
type Metrics struct {
	registry *prometheus.Registry

	checkResults *prometheus.CounterVec
	runs         *prometheus.CounterVec
	runUsers     prometheus.Gauge
	runDuration  prometheus.Histogram
	pathQueries  *prometheus.CounterVec
	pathHops     prometheus.Histogram
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		checkResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "releasewatch_check_results_total",
			Help: "Tracked configurations checked, by diff status",
		}, []string{"status"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "releasewatch_runs_total",
			Help: "Daily runs by result",
		}, []string{"result"}),
		runUsers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "releasewatch_run_users",
			Help: "Users processed by the last run",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "releasewatch_run_duration_seconds",
			Help:    "Duration of the daily run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		pathQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "releasewatch_path_queries_total",
			Help: "Upgrade path queries by outcome",
		}, []string{"outcome"}),
		pathHops: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "releasewatch_path_hops",
			Help:    "Hops of resolved upgrade paths",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
	}
}

// Registry exposes the collectors for export and tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) observeResults(results []entities.DiffResult) {
	for _, result := range results {
		m.checkResults.WithLabelValues(result.Status.Label()).Inc()
	}
}

func (m *Metrics) observeRun(result string, users int, elapsed time.Duration) {
	m.runs.WithLabelValues(result).Inc()
	m.runUsers.Set(float64(users))
	m.runDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) observePath(result *entities.PathResult, err error) {
	var noPath *entities.NoPathError
	var truncated *entities.TruncatedError
	switch {
	case err == nil:
		m.pathQueries.WithLabelValues(pathOutcomeFound).Inc()
		m.pathHops.Observe(float64(result.Hops))
	case errors.As(err, &noPath):
		m.pathQueries.WithLabelValues(pathOutcomeNoPath).Inc()
	case errors.As(err, &truncated):
		m.pathQueries.WithLabelValues(pathOutcomeTruncated).Inc()
	default:
		m.pathQueries.WithLabelValues(pathOutcomeError).Inc()
	}
}

// WriteTextfile dumps the registry in the Prometheus text format. An empty
// path disables the export.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}
