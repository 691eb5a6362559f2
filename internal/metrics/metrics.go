// Package metrics declares the Prometheus instrumentation the protocol
// engine and RPC boundary update. Registration happens once, against a
// caller-supplied registry, so tests can use a private registry instead of
// the global default.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the counters and histograms the server exposes.
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	ErrorsTotal    *prometheus.CounterVec
	TallySize      prometheus.Gauge
	RequestLatency *prometheus.HistogramVec
}

// New creates and registers a fresh Metrics against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anonvote",
			Name:      "requests_total",
			Help:      "Total RPC requests handled, by method.",
		}, []string{"method"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anonvote",
			Name:      "errors_total",
			Help:      "Total RPC requests that ended in an error, by method and error kind.",
		}, []string{"method", "kind"}),
		TallySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anonvote",
			Name:      "votes_recorded",
			Help:      "Total number of finalised votes recorded.",
		}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "anonvote",
			Name:      "request_duration_seconds",
			Help:      "RPC handler latency, by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.RequestsTotal, m.ErrorsTotal, m.TallySize, m.RequestLatency)
	return m
}
