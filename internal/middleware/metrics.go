package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/advocate-directory-api/internal/service"
)

// unmatchedRoute labels requests no route answered, so unknown paths share one label.
const unmatchedRoute = "unmatched"

// Metrics records latency and status per route pattern, and counts responses a handler
// marked as cache hits with SetCacheHit.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := routeLabel(c)
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
		if CacheHit(c) {
			metricsSvc.ObserveCachedResponse(c.Request.Method, route)
		}
	}
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}
