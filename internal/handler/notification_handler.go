package handler

import (
	"errors"
	"net/http"
	"strconv"

	"resi-be-svc/internal/middleware"
	"resi-be-svc/internal/service"
	"resi-be-svc/pkg/logger"
	"resi-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(notificationService service.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// ListNotifications lists the caller's notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param isRead query bool false "Filter by read flag"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "Notifications with pagination"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := middleware.UserID(c)
	page, limit := parsePagination(c)

	var isRead *bool
	if raw := c.Query("isRead"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			isRead = &parsed
		}
	}

	notifications, total, err := h.notificationService.List(userID, isRead, page, limit)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to list notifications")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination":    utils.NewPagination(page, limit, total),
	})
}

// GetUnreadCount returns the caller's unread notification count
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Count"
// @Router /api/v1/notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID := middleware.UserID(c)

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to count unread notifications")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead marks one notification read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]interface{} "Marked read"
// @Failure 403 {object} utils.ErrorResponse "Not the notification owner"
// @Failure 404 {object} utils.ErrorResponse "Notification not found"
// @Router /api/v1/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequest(c, "notification id must be a valid number")
		return
	}

	if err := h.notificationService.MarkRead(id, middleware.UserID(c)); err != nil {
		h.respondNotificationError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// MarkAllRead marks every notification for the caller read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "All marked read"
// @Router /api/v1/notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to mark notifications read")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

// Delete removes one notification
// @Summary Delete notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} utils.ErrorResponse "Not the notification owner"
// @Failure 404 {object} utils.ErrorResponse "Notification not found"
// @Router /api/v1/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequest(c, "notification id must be a valid number")
		return
	}

	if err := h.notificationService.Delete(id, middleware.UserID(c)); err != nil {
		h.respondNotificationError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}

func (h *NotificationHandler) respondNotificationError(c *gin.Context, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrNotificationNotFound):
		utils.NotFound(c, "notification not found")
	case errors.Is(err, service.ErrNotAllowed):
		utils.Forbidden(c, "not authorized to access this notification")
	default:
		h.logger.WithError(err).WithField("notification_id", id).Error("Notification operation failed")
		utils.InternalServerError(c)
	}
}
