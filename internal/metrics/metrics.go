package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Store fetch outcomes
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "closetscout",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "closetscout",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	storeFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "closetscout",
			Name:      "store_fetch_duration_seconds",
			Help:      "Duration of one store search in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"store", "outcome"},
	)

	storeResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "closetscout",
			Name:      "store_results_total",
			Help:      "Total products returned per store",
		},
		[]string{"store"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(storeFetchDuration)
	prometheus.MustRegister(storeResultsTotal)
}

// Middleware records HTTP request duration and count.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := normalizePath(c.FullPath())
		method := c.Request.Method

		httpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}

// normalizePath keeps unmatched paths out of the label set.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}

// ObserveStoreFetch records one store search
func ObserveStoreFetch(store, outcome string, elapsed time.Duration, results int) {
	storeFetchDuration.WithLabelValues(store, outcome).Observe(elapsed.Seconds())
	if results > 0 {
		storeResultsTotal.WithLabelValues(store).Add(float64(results))
	}
}
