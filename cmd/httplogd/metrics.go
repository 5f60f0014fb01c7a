package main

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics
var (
	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httplog_requests_total",
			Help: "Total number of requests seen by the logging layer",
		},
		[]string{"method", "path", "status"},
	)
	requestLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "httplog_request_duration_seconds",
			Help:    "Request latency in seconds as measured around the downstream handler",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 15), // ~10ms to ~163s
		},
	)
	captureErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httplog_capture_errors_total",
			Help: "Total number of failures while collecting request or response data",
		},
		[]string{"stage"},
	)
)

// registerPrometheusMetrics registers the collectors with the default registry.
func registerPrometheusMetrics() {
	prometheus.MustRegister(requestTotal, requestLatency, captureErrors)
}
