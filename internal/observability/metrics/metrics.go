// Package metrics exposes prometheus instruments for the calculation and
// document generation paths.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	Calculations      *prometheus.CounterVec
	CalculationAssets prometheus.Histogram
	Documents         *prometheus.CounterVec
	DocumentDuration  prometheus.Histogram
	RolloverConflicts prometheus.Counter
	OverrideBatches   *prometheus.CounterVec
}

// New registers the domain instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		Calculations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rendition_calculations_total",
			Help: "Depreciation calculations run, by jurisdiction and source.",
		}, []string{"jurisdiction", "source"}),
		CalculationAssets: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rendition_calculation_assets",
			Help:    "Asset count per calculation.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Documents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rendition_documents_total",
			Help: "Documents generated, by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		DocumentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rendition_document_duration_seconds",
			Help:    "Time to fill and render a single document.",
			Buckets: prometheus.DefBuckets,
		}),
		RolloverConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rendition_rollover_conflicts_total",
			Help: "Snapshot rollovers rejected because the target year already exists.",
		}),
		OverrideBatches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rendition_override_batches_total",
			Help: "Override batches applied, by outcome.",
		}, []string{"outcome"}),
	}
}

// HTTPMetrics instruments the gin router.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers HTTP instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
