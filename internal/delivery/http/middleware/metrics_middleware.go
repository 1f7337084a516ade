package middleware

import (
	"strconv"

	"mancarijo/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics counts every request by matched route so ids in the path do not
// explode the label set.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
