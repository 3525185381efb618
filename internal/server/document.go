package server

import (
	"errors"
	"net/http"

	documentdomain "github.com/agrilinklabs/agrilink/internal/document/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateDocument(c *gin.Context) {
	var req documentdomain.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	document, err := s.documentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": document})
}

func (s *Server) ListDocuments(c *gin.Context) {
	var req documentdomain.ListDocumentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDocumentByID(c *gin.Context) {
	document, err := s.documentSvc.GetByID(c.Request.Context(), documentdomain.GetDocumentRequest{ID: c.Param("id")})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": document})
}

func (s *Server) ReviewDocument(c *gin.Context) {
	var req documentdomain.ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	document, err := s.documentSvc.Review(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": document})
}

func (s *Server) DeleteDocument(c *gin.Context) {
	if err := s.documentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

func isDocumentValidationError(err error) bool {
	switch {
	case errors.Is(err, documentdomain.ErrInvalidID),
		errors.Is(err, documentdomain.ErrInvalidActor),
		errors.Is(err, documentdomain.ErrInvalidKind),
		errors.Is(err, documentdomain.ErrInvalidFile),
		errors.Is(err, documentdomain.ErrInvalidReview):
		return true
	default:
		return false
	}
}
