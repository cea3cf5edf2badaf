package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/huddlehq/huddle/pkg/ratelimit"
)

// RateLimitMiddleware 全局限流中间件
// Caps each client IP at requestsPerMin requests over a one-minute window.
func RateLimitMiddleware(limiter ratelimit.Limiter, requestsPerMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP(), requestsPerMin, time.Minute)
		if err != nil || !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too Many Requests - please try again later",
			})
			return
		}
		c.Next()
	}
}
