package server

import (
	"errors"
	"net/http"

	blogdomain "github.com/agrilinklabs/agrilink/internal/blog/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreatePost(c *gin.Context) {
	var req blogdomain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	post, err := s.blogSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (s *Server) ListPosts(c *gin.Context) {
	var req blogdomain.ListPostRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.blogSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ListPublishedPosts is the public listing: drafts never leave the admin
// surface.
func (s *Server) ListPublishedPosts(c *gin.Context) {
	var req blogdomain.ListPostRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.PublishedOnly = true

	resp, err := s.blogSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPostByID(c *gin.Context) {
	post, err := s.blogSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (s *Server) GetPostBySlug(c *gin.Context) {
	post, err := s.blogSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !post.Published {
		AbortWithError(c, blogdomain.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (s *Server) UpdatePost(c *gin.Context) {
	var req blogdomain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	post, err := s.blogSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (s *Server) DeletePost(c *gin.Context) {
	if err := s.blogSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

func isBlogValidationError(err error) bool {
	switch {
	case errors.Is(err, blogdomain.ErrInvalidID),
		errors.Is(err, blogdomain.ErrInvalidTitle),
		errors.Is(err, blogdomain.ErrInvalidBody):
		return true
	default:
		return false
	}
}
