package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roaddash_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roaddash_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HttpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roaddash_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	// Pipeline metrics
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roaddash_dataset_loads_total",
			Help: "Dataset loads from the sources, by outcome",
		},
		[]string{"status"},
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roaddash_dataset_load_duration_seconds",
			Help:    "Time spent reading and converting the three datasets",
			Buckets: prometheus.DefBuckets,
		},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roaddash_dataset_cache_lookups_total",
			Help: "Dataset cache lookups by result",
		},
		[]string{"result"},
	)

	DegradedAggregationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roaddash_degraded_aggregations_total",
			Help: "Aggregations that fell back to an empty result",
		},
		[]string{"aggregator"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(method, path string, statusCode int, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HttpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDatasetLoad records one full load of the three datasets
func RecordDatasetLoad(err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DatasetLoadsTotal.WithLabelValues(status).Inc()
	DatasetLoadDuration.Observe(duration.Seconds())
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

func RecordDegraded(aggregator string) {
	DegradedAggregationsTotal.WithLabelValues(aggregator).Inc()
}
