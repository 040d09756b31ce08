// Package metrics holds the prometheus collectors the diagnostics
// server (internal/diagnostics) exposes for a running big-bang pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all the prometheus collectors for one generation run.
type Metrics struct {
	StageDuration   *prometheus.HistogramVec
	StageErrors     *prometheus.CounterVec
	TilesProcessed  *prometheus.CounterVec
	RecoveredFaults *prometheus.CounterVec
	ActiveStage     *prometheus.GaugeVec
}

// NewMetrics initializes and returns a new Metrics struct.
func NewMetrics() *Metrics {
	return &Metrics{
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cosmopoeia_stage_duration_seconds",
			Help:    "Wall-clock duration of a pipeline stage",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"stage"}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cosmopoeia_stage_errors_total",
			Help: "Total number of aborted stage runs, by error kind",
		}, []string{"stage", "kind"}),
		TilesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cosmopoeia_tiles_processed_total",
			Help: "Total number of tiles visited by a stage",
		}, []string{"stage"}),
		RecoveredFaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cosmopoeia_recovered_faults_total",
			Help: "Total number of locally recovered faults (isolated sinks, geometry repairs)",
		}, []string{"stage", "fault"}),
		ActiveStage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cosmopoeia_active_stage",
			Help: "1 for the stage currently running, 0 otherwise",
		}, []string{"stage"}),
	}
}

// Register registers all metrics with the provided registry.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.StageDuration,
		m.StageErrors,
		m.TilesProcessed,
		m.RecoveredFaults,
		m.ActiveStage,
	)
}
