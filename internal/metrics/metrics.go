// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_http_requests_total",
			Help: "Total number of HTTP requests handled.",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// PagesExtracted counts PDF pages whose text was extracted.
	PagesExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_pdf_pages_extracted_total",
			Help: "Total number of PDF pages extracted.",
		},
	)
)
