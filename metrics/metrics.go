// Package metrics instruments per-request observability for the routing
// core's service layer (§5's per-worker-call concern): request latency and
// the round limit (max transfers + 1) each standard-profile worker call ran
// with; the number of rounds a call actually ran is not recorded. Grounded on
// ponytojas-gtfs-simulator-go's internal/metrics/metrics.go (Registry +
// Collector struct of named prometheus metrics, registered once at
// construction).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is the routing core's prometheus registry: one instance per
// Service, shared (read-only after construction) across every worker pool
// goroutine.
type Collector struct {
	reg *prometheus.Registry

	RequestDuration *prometheus.HistogramVec // profile label
	RequestsTotal   *prometheus.CounterVec   // profile, outcome labels
	RoundsPerCall   *prometheus.HistogramVec // profile label

	IterationsPerRequest prometheus.Histogram
	PathsFound           prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transitcore_request_duration_seconds",
			Help:    "Duration of a Service.Route call.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		}, []string{"profile"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transitcore_requests_total",
			Help: "Total Service.Route calls, by profile and outcome.",
		}, []string{"profile", "outcome"}),
		RoundsPerCall: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transitcore_rounds_per_call",
			Help:    "Range-RAPTOR round limit (max transfers + 1) of a standard-profile worker call.",
			Buckets: prometheus.LinearBuckets(1, 1, 16),
		}, []string{"profile"}),
		IterationsPerRequest: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transitcore_iterations_per_request",
			Help:    "Number of departure-minute (and boarding-mode) iterations a request swept.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		PathsFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transitcore_paths_found",
			Help:    "Number of pareto-optimal paths a multi-criteria request returned.",
			Buckets: prometheus.LinearBuckets(0, 1, 16),
		}),
	}

	reg.MustRegister(c.RequestDuration, c.RequestsTotal, c.RoundsPerCall, c.IterationsPerRequest, c.PathsFound)
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
