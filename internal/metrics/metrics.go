// Package metrics exposes Prometheus counters for HTTP traffic and blob store calls.
//
// Example:
//
//	timer := metrics.StoreTimer("put")
//	obj, err := store.Put(ctx, key, data, contentType)
//	timer.Done(err)
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts HTTP requests by method, route pattern and status.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration observes HTTP handler latency.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// StoreOps counts blob store operations by outcome.
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blob_store_operations_total",
			Help: "Total number of blob store operations",
		},
		[]string{"op", "result"},
	)

	// StoreDuration observes blob store call latency.
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blob_store_operation_duration_seconds",
			Help:    "Blob store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestCounter, RequestDuration, StoreOps, StoreDuration,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Registry returns the registry backing Handler.
func Registry() *prometheus.Registry {
	return registry
}

// Timer measures a single store operation.
type Timer struct {
	op    string
	start time.Time
}

// StoreTimer starts timing op.
func StoreTimer(op string) Timer {
	return Timer{op: op, start: time.Now()}
}

// Done records the elapsed time and the outcome of the operation.
func (t Timer) Done(err error) {
	StoreDuration.WithLabelValues(t.op).Observe(time.Since(t.start).Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOps.WithLabelValues(t.op, result).Inc()
}
