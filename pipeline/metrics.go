package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the pipeline.
type Metrics struct {
	Registry             *prometheus.Registry
	RowsProcessed        *prometheus.CounterVec
	StageDuration        *prometheus.HistogramVec
	CategoriesNormalized prometheus.Counter
	FeaturesCreated      prometheus.Gauge
	ErrorsTotal          *prometheus.CounterVec
	RunsTotal            *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	rows := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_rows_processed_total",
			Help: "Total rows emitted by each pipeline stage.",
		},
		[]string{"stage"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Wall-clock duration of each pipeline stage.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
	categories := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_categories_normalized_total",
			Help: "Total placeholder categories replaced during cleaning.",
		},
	)
	featuresCreated := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_features_created",
			Help: "Number of derived columns produced by the last feature run.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_errors_total",
			Help: "Total pipeline failures by error type.",
		},
		[]string{"error_type"},
	)
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total pipeline runs by mode and outcome.",
		},
		[]string{"mode", "status"},
	)

	registry.MustRegister(rows, stageDuration, categories, featuresCreated, errorsTotal, runs)

	return &Metrics{
		Registry:             registry,
		RowsProcessed:        rows,
		StageDuration:        stageDuration,
		CategoriesNormalized: categories,
		FeaturesCreated:      featuresCreated,
		ErrorsTotal:          errorsTotal,
		RunsTotal:            runs,
	}
}

// AddRows records rows emitted by a stage.
func (m *Metrics) AddRows(stage string, count int) {
	if m == nil {
		return
	}
	m.RowsProcessed.WithLabelValues(stage).Add(float64(count))
}

// ObserveStage records a stage duration.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// AddCategoriesNormalized records replaced placeholder categories.
func (m *Metrics) AddCategoriesNormalized(count int) {
	if m == nil {
		return
	}
	m.CategoriesNormalized.Add(float64(count))
}

// SetFeaturesCreated records the derived column count of the last run.
func (m *Metrics) SetFeaturesCreated(count int) {
	if m == nil {
		return
	}
	m.FeaturesCreated.Set(float64(count))
}

// IncError increments the failure counter for a taxonomy label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

// IncRun increments the run counter for a mode and outcome.
func (m *Metrics) IncRun(mode, status string) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(mode, status).Inc()
}
