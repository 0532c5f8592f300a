package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/virtusia/backend/internal/telemetry/metrics"
)

// RequestMetrics records request counts and latencies per route.
func RequestMetrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		m.GaugeRequests.Inc()

		c.Next()

		m.GaugeRequests.Dec()
		status := strconv.Itoa(c.Writer.Status())

		// FullPath is the route template, empty for 404s.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.HistogramRequestDuration.With(prometheus.Labels{
			"route":       route,
			"method":      c.Request.Method,
			"status_code": status,
		}).Observe(time.Since(begin).Seconds())

		m.CounterRequests.With(prometheus.Labels{
			"method": c.Request.Method,
			"status": status,
		}).Inc()
	}
}
