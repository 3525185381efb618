package server

import (
	"errors"
	"net/http"

	notificationdomain "github.com/agrilinklabs/agrilink/internal/notification/domain"
	"github.com/gin-gonic/gin"
)

type markAllNotificationsReadRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
}

func (s *Server) CreateNotification(c *gin.Context) {
	var req notificationdomain.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	notification, err := s.notificationSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notification})
}

func (s *Server) ListNotifications(c *gin.Context) {
	var req notificationdomain.ListNotificationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.notificationSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	notification, err := s.notificationSvc.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notification})
}

func (s *Server) MarkAllNotificationsRead(c *gin.Context) {
	var req markAllNotificationsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.notificationSvc.MarkAllRead(c.Request.Context(), req.ActorID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": updated}})
}

func isNotificationValidationError(err error) bool {
	switch {
	case errors.Is(err, notificationdomain.ErrInvalidID),
		errors.Is(err, notificationdomain.ErrInvalidActor),
		errors.Is(err, notificationdomain.ErrInvalidKind),
		errors.Is(err, notificationdomain.ErrInvalidTitle):
		return true
	default:
		return false
	}
}
