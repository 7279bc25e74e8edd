package handler

import (
	"errors"
	"net/http"

	"resi-be-svc/internal/service"
	"resi-be-svc/pkg/logger"
	"resi-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// RegisterRequest represents the request body for resident registration
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email" example:"juan@example.com"`
	Password    string `json:"password" binding:"required,min=6"`
	Name        string `json:"name" binding:"required" example:"Juan Perez"`
	HouseNumber string `json:"houseNumber" binding:"required" example:"A-101"`
	Phone       string `json:"phone" example:"+52 555 123 4567"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register registers a resident account
// @Summary Register a resident
// @Description Create a resident account with its house assignment
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} service.AuthResponse "Account created"
// @Failure 400 {object} utils.ValidationErrorResponse "Validation failed"
// @Failure 400 {object} utils.ErrorResponse "Email or house number taken"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var request RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	response, err := h.authService.Register(request.Email, request.Password, request.Name, request.HouseNumber, request.Phone)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrHouseNumberTaken) {
			utils.BadRequest(c, err.Error())
			return
		}
		h.logger.WithError(err).Error("Failed to register resident")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login authenticates an account
// @Summary Login
// @Description Verify credentials and issue a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} service.AuthResponse "Authenticated"
// @Failure 400 {object} utils.ValidationErrorResponse "Validation failed"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	response, err := h.authService.Login(request.Email, request.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.Unauthorized(c, "invalid credentials")
			return
		}
		h.logger.WithError(err).Error("Failed to login")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, response)
}
