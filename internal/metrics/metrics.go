package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "locationapi",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "locationapi",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	upstreamFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "locationapi",
			Name:      "upstream_failures_total",
			Help:      "Upstream provider failures absorbed by the pipeline",
		},
		[]string{"provider", "kind"},
	)

	searchResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "locationapi",
			Name:      "search_results_total",
			Help:      "Search outcomes by status",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(upstreamFailuresTotal)
	prometheus.MustRegister(searchResultsTotal)
}

// UpstreamFailure counts one absorbed failure of an upstream provider.
// An empty search result caused by a provider outage is otherwise
// indistinguishable from a genuine zero-match response; this counter is the
// signal that tells them apart.
func UpstreamFailure(provider, kind string) {
	upstreamFailuresTotal.WithLabelValues(provider, kind).Inc()
}

// SearchResult counts one search outcome: "matched", "empty" or "degraded".
func SearchResult(status string) {
	searchResultsTotal.WithLabelValues(status).Inc()
}

// Middleware records HTTP request duration and count per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		// Use the route pattern, not the raw URL, to keep label cardinality low.
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
