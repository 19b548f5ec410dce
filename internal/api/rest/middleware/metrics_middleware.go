package middleware

import (
	"time"

	"github.com/Dhoini/nice-proxy/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware записывает количество и длительность запросов по шаблону маршрута
func MetricsMiddleware(m metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
