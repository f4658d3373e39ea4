package middlewares

import (
	"strconv"
	"time"

	"restaurant/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records HTTP metrics labelled by route pattern.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncrementInFlight()
		defer metrics.DecrementInFlight()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
