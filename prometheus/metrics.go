package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Product metrics
	ProductOperationsCounter *prometheus.CounterVec

	// Query cache metrics
	CacheLookupsCounter       *prometheus.CounterVec
	CacheInvalidationsCounter *prometheus.CounterVec

	// Reporting metrics
	StatsComputationsCounter *prometheus.CounterVec
	OrderViewsCounter        prometheus.Counter

	// Object store metrics
	ImageUploadsCounter *prometheus.CounterVec
)

// InitMetrics registers the service metrics on reg using the given name prefix
func InitMetrics(prefix string, reg prometheus.Registerer) {
	factory := promauto.With(reg)

	HttpRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ProductOperationsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	CacheLookupsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_cache_lookups_total",
			Help: "Query cache lookups by entity and result (hit, miss, error)",
		},
		[]string{"entity", "result"},
	)

	CacheInvalidationsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_cache_invalidations_total",
			Help: "Query cache invalidations by entity",
		},
		[]string{"entity"},
	)

	StatsComputationsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_stats_computations_total",
			Help: "Dashboard statistics computations by result",
		},
		[]string{"result"},
	)

	OrderViewsCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_order_views_total",
			Help: "Total number of order detail views",
		},
	)

	ImageUploadsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_image_uploads_total",
			Help: "Product image uploads by result",
		},
		[]string{"result"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DbOperationDuration == nil {
			return
		}
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, path, status string, duration float64) {
	if HttpRequestsTotal == nil {
		return
	}
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	if ProductOperationsCounter == nil {
		return
	}
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCacheLookup increments the cache lookup counter
func RecordCacheLookup(entity, result string) {
	if CacheLookupsCounter == nil {
		return
	}
	CacheLookupsCounter.WithLabelValues(entity, result).Inc()
}

// RecordCacheInvalidation increments the cache invalidation counter
func RecordCacheInvalidation(entity string) {
	if CacheInvalidationsCounter == nil {
		return
	}
	CacheInvalidationsCounter.WithLabelValues(entity).Inc()
}

// RecordStatsComputation increments the stats computation counter
func RecordStatsComputation(result string) {
	if StatsComputationsCounter == nil {
		return
	}
	StatsComputationsCounter.WithLabelValues(result).Inc()
}

// RecordOrderView increments the order detail view counter
func RecordOrderView() {
	if OrderViewsCounter == nil {
		return
	}
	OrderViewsCounter.Inc()
}

// RecordImageUpload increments the image upload counter
func RecordImageUpload(result string) {
	if ImageUploadsCounter == nil {
		return
	}
	ImageUploadsCounter.WithLabelValues(result).Inc()
}
