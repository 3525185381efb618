package server

import (
	"net/http"

	quotedomain "github.com/agrilinklabs/agrilink/internal/quote/domain"
	"github.com/gin-gonic/gin"
)

// CreateQuote is the one public write surface: it prices a prospective
// mission without persisting anything.
func (s *Server) CreateQuote(c *gin.Context) {
	var req quotedomain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	estimate, err := s.quoteSvc.Estimate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": estimate})
}
