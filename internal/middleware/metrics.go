package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-api/pkg/metrics"
)

// Metrics records per-request counters and latency. The route template
// is used as the path label so ids do not explode cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.RequestTotal.WithLabelValues(method, path, status).Inc()
		m.RequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

		if c.Writer.Status() >= 400 {
			errType := "client"
			if c.Writer.Status() >= 500 {
				errType = "server"
			}
			m.ErrorTotal.WithLabelValues(method, path, errType).Inc()
		}
	}
}
