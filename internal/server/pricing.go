package server

import (
	"errors"
	"net/http"

	pricingdomain "github.com/agrilinklabs/agrilink/internal/pricing/domain"
	"github.com/gin-gonic/gin"
)

type recordPricingEditRequest struct {
	Value string `json:"value" binding:"required"`
}

func (s *Server) GetPricingSnapshot(c *gin.Context) {
	snapshot, err := s.pricingSvc.Snapshot(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshot})
}

func (s *Server) RefreshPricing(c *gin.Context) {
	if err := s.pricingSvc.Refresh(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	snapshot, err := s.pricingSvc.Snapshot(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshot})
}

// RecordPricingEdit stores a transient edit for one derived cell. Values
// outside the dimension's bounds are dropped silently, so the response
// echoes the pending state the caller actually ended up with.
func (s *Server) RecordPricingEdit(c *gin.Context) {
	dimension, ok := pricingdomain.ParseDimension(c.Param("dimension"))
	if !ok {
		AbortWithError(c, pricingdomain.ErrUnknownDimension)
		return
	}

	var req recordPricingEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	key := c.Param("key")
	s.pricingSvc.RecordPendingEdit(dimension, key, req.Value)

	snapshot, err := s.pricingSvc.Snapshot(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": pendingStateFor(snapshot, dimension, key)})
}

func (s *Server) CommitPricingEdit(c *gin.Context) {
	dimension, ok := pricingdomain.ParseDimension(c.Param("dimension"))
	if !ok {
		AbortWithError(c, pricingdomain.ErrUnknownDimension)
		return
	}

	key := c.Param("key")
	err := s.pricingSvc.CommitEdit(c.Request.Context(), dimension, key)
	if s.obsMetrics != nil {
		s.obsMetrics.RecordPricingCommit(c.Request.Context(), string(dimension), commitOutcome(err))
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	snapshot, err := s.pricingSvc.Snapshot(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshot})
}

func (s *Server) CancelPricingEdit(c *gin.Context) {
	dimension, ok := pricingdomain.ParseDimension(c.Param("dimension"))
	if !ok {
		AbortWithError(c, pricingdomain.ErrUnknownDimension)
		return
	}

	s.pricingSvc.CancelEdit(dimension, c.Param("key"))

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "cancelled"}})
}

func pendingStateFor(snapshot *pricingdomain.Snapshot, dimension pricingdomain.Dimension, key string) gin.H {
	for _, edit := range snapshot.Pending {
		if edit.Dimension == dimension && edit.Key == key {
			return gin.H{
				"dimension": edit.Dimension,
				"key":       edit.Key,
				"value":     edit.Value,
				"state":     edit.State,
			}
		}
	}
	return gin.H{
		"dimension": dimension,
		"key":       key,
		"state":     pricingdomain.StateClean,
	}
}

func commitOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, pricingdomain.ErrCommitInFlight):
		return "in_flight"
	default:
		return "failure"
	}
}
