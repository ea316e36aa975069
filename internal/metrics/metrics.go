// Package metrics defines the Prometheus collectors for one build
// invocation. Collectors are registered on a per-app registry rather than
// the process-global one, so concurrent app instances (notably in tests)
// never collide.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors the executor and app report into.
type Metrics struct {
	// TargetsTotal counts finished targets by kind and outcome
	// (done, failed, skipped).
	TargetsTotal *prometheus.CounterVec
	// TargetDuration observes per-target wall time in seconds.
	TargetDuration prometheus.Histogram
	// GraphNodes records the size of the validated graph.
	GraphNodes prometheus.Gauge
}

// New creates the collectors and registers them with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TargetsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildgrid_targets_total",
				Help: "Total number of finished targets",
			},
			[]string{"kind", "outcome"},
		),
		TargetDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "buildgrid_target_duration_seconds",
				Help:    "Target execution duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			},
		),
		GraphNodes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "buildgrid_graph_nodes",
				Help: "Number of nodes in the validated dependency graph",
			},
		),
	}
}
