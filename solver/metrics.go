// SPDX-License-Identifier: MIT

package solver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for a search.
// Tracks box classifications, queue depth, roots found and run duration.
type Metrics struct {
	Boxes          *prometheus.CounterVec
	QueueDepth     prometheus.Gauge
	Solutions      prometheus.Gauge
	SearchDuration prometheus.Histogram
}

// NewMetrics registers the solver metrics with reg. A nil reg registers
// with the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		Boxes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rootbox_boxes_total",
			Help: "Boxes classified by the search, by outcome",
		}, []string{"outcome"}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "rootbox_queue_depth",
			Help: "Boxes waiting in the work queue",
		}),
		Solutions: f.NewGauge(prometheus.GaugeOpts{
			Name: "rootbox_solutions",
			Help: "Distinct roots proven so far",
		}),
		SearchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rootbox_search_duration_seconds",
			Help:    "Wall time of FindAll runs",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		}),
	}
}

// ObserveSearch records the duration of a run.
// Call with time.Now() at the start of the run.
func (m *Metrics) ObserveSearch(start time.Time) {
	m.SearchDuration.Observe(time.Since(start).Seconds())
}
