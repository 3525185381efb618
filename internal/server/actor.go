package server

import (
	"errors"
	"net/http"

	actordomain "github.com/agrilinklabs/agrilink/internal/actor/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateActor(c *gin.Context) {
	var req actordomain.CreateActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	actor, err := s.actorSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": actor})
}

func (s *Server) ListActors(c *gin.Context) {
	var req actordomain.ListActorRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.actorSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetActorByID(c *gin.Context) {
	actor, err := s.actorSvc.GetByID(c.Request.Context(), actordomain.GetActorRequest{ID: c.Param("id")})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": actor})
}

func (s *Server) UpdateActor(c *gin.Context) {
	var req actordomain.UpdateActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	actor, err := s.actorSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": actor})
}

func (s *Server) DeleteActor(c *gin.Context) {
	if err := s.actorSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

func isActorValidationError(err error) bool {
	switch {
	case errors.Is(err, actordomain.ErrInvalidID),
		errors.Is(err, actordomain.ErrInvalidRank),
		errors.Is(err, actordomain.ErrInvalidSpecialization),
		errors.Is(err, actordomain.ErrInvalidEmail),
		errors.Is(err, actordomain.ErrInvalidPassword),
		errors.Is(err, actordomain.ErrInvalidName),
		errors.Is(err, actordomain.ErrInvalidStep):
		return true
	default:
		return false
	}
}
