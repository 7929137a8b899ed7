package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesdash_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salesdash_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "salesdash_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Dataset metrics
	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "salesdash_dataset_rows",
			Help: "Number of sales rows held in memory",
		},
	)

	DatasetLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "salesdash_dataset_load_duration_seconds",
			Help: "Time taken by the startup load of the sales table",
		},
	)

	FilteredRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "salesdash_filtered_rows",
			Help:    "Number of rows left after applying a selection",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
		},
	)

	// Gemini metrics
	InsightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesdash_insight_requests_total",
			Help: "Total number of Gemini insight requests",
		},
		[]string{"status"},
	)
)
