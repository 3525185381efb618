package server

import (
	"github.com/gin-gonic/gin"
)

// QuoteRateLimit throttles the public quote endpoint per client IP. The
// limiter is optional wiring; without redis the endpoint runs unthrottled.
func (s *Server) QuoteRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.quoteLimiter.Enabled() {
			c.Next()
			return
		}

		allowed, err := s.quoteLimiter.AllowClient(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down should not take the quote endpoint with it.
			c.Next()
			return
		}

		if !allowed {
			if s.obsMetrics != nil {
				s.obsMetrics.RecordRateLimitDenied(c.Request.Context(), "quotes", "bucket_exhausted")
			}
			AbortWithError(c, ErrRateLimited)
			return
		}

		if s.obsMetrics != nil {
			s.obsMetrics.RecordRateLimitAllowed(c.Request.Context(), "quotes")
		}
		c.Next()
	}
}
