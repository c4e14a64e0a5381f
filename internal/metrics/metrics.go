package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bikeshare_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bikeshare_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SuspiciousRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bikeshare_http_suspicious_requests_total",
			Help: "Requests matching known probing patterns",
		},
	)

	// Dataset metrics
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bikeshare_dataset_loads_total",
			Help: "Dataset load attempts by backend and result",
		},
		[]string{"backend", "result"},
	)

	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bikeshare_dataset_load_duration_seconds",
			Help:    "Time spent reading and parsing a dataset source",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"backend"},
	)

	DatasetRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bikeshare_dataset_records",
			Help: "Number of rental records held in memory",
		},
		[]string{"backend"},
	)

	// Report metrics
	ReportsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bikeshare_reports_published_total",
			Help: "Summary reports published to the message broker",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest records metrics for an HTTP request
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDatasetLoad records the outcome of one dataset load
func RecordDatasetLoad(backend string, records int, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	DatasetLoadsTotal.WithLabelValues(backend, result).Inc()
	DatasetLoadDuration.WithLabelValues(backend).Observe(duration.Seconds())
	if err == nil {
		DatasetRecords.WithLabelValues(backend).Set(float64(records))
	}
}

// RecordReportPublished records a report publish attempt
func RecordReportPublished(err error) {
	if err != nil {
		ReportsPublishedTotal.WithLabelValues("failure").Inc()
		return
	}
	ReportsPublishedTotal.WithLabelValues("success").Inc()
}
