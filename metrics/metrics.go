// Package metrics exports pipeline activity to Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/muffato/pywaltrap/pipeline"
)

const namespace = "walktrap"

// Prometheus implements pipeline.Recorder with Prometheus collectors.
type Prometheus struct {
	SolvesTotal      *prometheus.CounterVec
	SolveDuration    prometheus.Histogram
	ComponentNodes   prometheus.Histogram
	GroupsTotal      *prometheus.CounterVec
	GroupedItems     *prometheus.CounterVec
	UnclusteredItems prometheus.Counter
}

// NewPrometheus creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	m := &Prometheus{
		SolvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "solver",
				Name:      "calls_total",
				Help:      "Total number of solver calls by outcome",
			},
			[]string{"outcome"},
		),

		SolveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "solver",
				Name:      "duration_seconds",
				Help:      "Solver call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		ComponentNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "solver",
				Name:      "component_nodes",
				Help:      "Number of nodes of the components submitted to the solver",
				Buckets:   prometheus.ExponentialBuckets(2, 4, 8),
			},
		),

		GroupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pipeline",
				Name:      "groups_total",
				Help:      "Total number of emitted groups by kind",
			},
			[]string{"kind"},
		),

		GroupedItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pipeline",
				Name:      "grouped_items_total",
				Help:      "Total number of items emitted in groups by kind",
			},
			[]string{"kind"},
		),

		UnclusteredItems: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pipeline",
				Name:      "unclustered_items_total",
				Help:      "Total number of items left unclustered by the chosen cuts",
			},
		),
	}
	if reg == nil {
		return m, nil
	}

	var errs []error
	for _, c := range []prometheus.Collector{
		m.SolvesTotal, m.SolveDuration, m.ComponentNodes,
		m.GroupsTotal, m.GroupedItems, m.UnclusteredItems,
	} {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return m, nil
}

// Solved implements pipeline.Recorder.
func (m *Prometheus) Solved(nodes, _ int, took time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.SolvesTotal.WithLabelValues(outcome).Inc()
	m.SolveDuration.Observe(took.Seconds())
	m.ComponentNodes.Observe(float64(nodes))
}

// Emitted implements pipeline.Recorder.
func (m *Prometheus) Emitted(kind pipeline.GroupKind, size int) {
	m.GroupsTotal.WithLabelValues(string(kind)).Inc()
	m.GroupedItems.WithLabelValues(string(kind)).Add(float64(size))
}

// Unclustered implements pipeline.Recorder.
func (m *Prometheus) Unclustered(items int) {
	m.UnclusteredItems.Add(float64(items))
}

var _ pipeline.Recorder = (*Prometheus)(nil)
