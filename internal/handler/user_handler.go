package handler

import (
	"errors"
	"net/http"

	"resi-be-svc/internal/middleware"
	"resi-be-svc/internal/service"
	"resi-be-svc/pkg/logger"
	"resi-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler handles account HTTP requests
type UserHandler struct {
	userService         service.UserService
	notificationService service.NotificationService
	logger              *logger.Logger
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ChangePasswordRequest represents the request body for a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService service.UserService, notificationService service.NotificationService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService:         userService,
		notificationService: notificationService,
		logger:              logger,
	}
}

// GetProfile returns the authenticated account
// @Summary Get profile
// @Description Get the authenticated account with its resident profile and unread notification count
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Router /api/v1/users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.userService.Profile(userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to get profile")
		utils.InternalServerError(c)
		return
	}

	unread, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to count unread notifications")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":                user,
		"unreadNotifications": unread,
	})
}

// UpdateProfile updates the account name and phone
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{} "Updated profile"
// @Failure 400 {object} utils.ValidationErrorResponse "Validation failed"
// @Router /api/v1/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var request UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	userID := middleware.UserID(c)
	user, err := h.userService.UpdateProfile(userID, request.Name, request.Phone)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to update profile")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ChangePassword replaces the account password
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]interface{} "Password changed"
// @Failure 400 {object} utils.ErrorResponse "Current password incorrect"
// @Router /api/v1/users/change-password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var request ChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	userID := middleware.UserID(c)
	if err := h.userService.ChangePassword(userID, request.CurrentPassword, request.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			utils.BadRequest(c, "current password is incorrect")
			return
		}
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to change password")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
}
