package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamCalls *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	barsFetched   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		upstreamCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "barpulse_upstream_requests_total",
				Help: "Total number of upstream brokerage API requests",
			},
			[]string{"endpoint", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "barpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		barsFetched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "barpulse_bars_fetched_total",
				Help: "Total number of OHLCV bars fetched from upstream",
			},
			[]string{"interval"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "barpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordUpstreamRequest records one call against the brokerage API.
func (r *Recorder) RecordUpstreamRequest(endpoint, result string) {
	r.upstreamCalls.WithLabelValues(endpoint, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordBarsFetched records the number of bars returned for an interval.
func (r *Recorder) RecordBarsFetched(interval string, count int) {
	r.barsFetched.WithLabelValues(interval).Add(float64(count))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
