package server

import (
	"errors"
	"net/http"

	missiondomain "github.com/agrilinklabs/agrilink/internal/mission/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateMission(c *gin.Context) {
	var req missiondomain.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	mission, err := s.missionSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mission})
}

func (s *Server) ListMissions(c *gin.Context) {
	var req missiondomain.ListMissionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.missionSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMissionByID(c *gin.Context) {
	mission, err := s.missionSvc.GetByID(c.Request.Context(), missiondomain.GetMissionRequest{ID: c.Param("id")})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mission})
}

func (s *Server) UpdateMission(c *gin.Context) {
	var req missiondomain.UpdateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	mission, err := s.missionSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mission})
}

func (s *Server) TransitionMission(c *gin.Context) {
	var req missiondomain.TransitionMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	mission, err := s.missionSvc.Transition(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mission})
}

func (s *Server) DeleteMission(c *gin.Context) {
	if err := s.missionSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

func isMissionValidationError(err error) bool {
	switch {
	case errors.Is(err, missiondomain.ErrInvalidID),
		errors.Is(err, missiondomain.ErrInvalidOwner),
		errors.Is(err, missiondomain.ErrInvalidTitle),
		errors.Is(err, missiondomain.ErrInvalidProfile),
		errors.Is(err, missiondomain.ErrInvalidStatus):
		return true
	default:
		return false
	}
}
