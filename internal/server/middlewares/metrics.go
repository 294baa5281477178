package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kubev2v/action-agent/internal/metrics"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
