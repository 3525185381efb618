package server

import (
	"errors"
	"net/http"

	linkdomain "github.com/agrilinklabs/agrilink/internal/link/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateLink(c *gin.Context) {
	var req linkdomain.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	link, err := s.linkSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": link})
}

func (s *Server) ListLinks(c *gin.Context) {
	links, err := s.linkSvc.List(c.Request.Context(), linkdomain.ListLinkRequest{})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": links})
}

func (s *Server) ListActiveLinks(c *gin.Context) {
	links, err := s.linkSvc.List(c.Request.Context(), linkdomain.ListLinkRequest{ActiveOnly: true})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": links})
}

func (s *Server) GetLinkByID(c *gin.Context) {
	link, err := s.linkSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": link})
}

func (s *Server) UpdateLink(c *gin.Context) {
	var req linkdomain.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	link, err := s.linkSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": link})
}

func (s *Server) DeleteLink(c *gin.Context) {
	if err := s.linkSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

func isLinkValidationError(err error) bool {
	switch {
	case errors.Is(err, linkdomain.ErrInvalidID),
		errors.Is(err, linkdomain.ErrInvalidLabel),
		errors.Is(err, linkdomain.ErrInvalidURL):
		return true
	default:
		return false
	}
}
