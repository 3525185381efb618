package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminKeyRequired guards the admin surface with a single shared bearer key.
// When no key is configured the admin routes are disabled outright rather
// than left open.
func (s *Server) AdminKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := s.cfg.AdminAPIKey
		if key == "" {
			AbortWithError(c, ErrForbidden)
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		fields := strings.Fields(header)
		if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(fields[1]), []byte(key)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Next()
	}
}
