// Package metrics holds the prometheus collectors fed by the HTTP middleware
// and the QR-bill services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	QRPayloadsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qrbill_payloads_generated_total",
			Help: "QR-bill payloads encoded",
		},
	)

	QRValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrbill_validation_failures_total",
			Help: "Payments rejected before encoding, by reason",
		},
		[]string{"reason"},
	)

	QRImageCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrbill_image_cache_total",
			Help: "Rendered QR image cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
