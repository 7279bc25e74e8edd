package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"resi-be-svc/internal/middleware"
	"resi-be-svc/internal/repository"
	"resi-be-svc/internal/service"
	"resi-be-svc/pkg/logger"
	"resi-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin-only HTTP requests
type AdminHandler struct {
	residentService     service.ResidentService
	paymentService      service.PaymentService
	notificationService service.NotificationService
	dashboardService    service.DashboardService
	logger              *logger.Logger
}

// CreateAdminRequest represents the request body for creating an admin account
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// UpdateResidentStatusRequest represents the request body for toggling a resident
type UpdateResidentStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CreatePaymentRequest represents the request body for assigning one payment
type CreatePaymentRequest struct {
	ResidentID  uint     `json:"residentId" binding:"required"`
	Type        string   `json:"type" binding:"required,oneof=MAINTENANCE WATER GATE"`
	Amount      *float64 `json:"amount" binding:"required,gte=0"`
	DueDate     string   `json:"dueDate" binding:"required"`
	Description string   `json:"description"`
}

// CreateMassPaymentsRequest represents the request body for a batch assignment
type CreateMassPaymentsRequest struct {
	Type        string   `json:"type" binding:"required,oneof=MAINTENANCE WATER GATE"`
	Amount      *float64 `json:"amount" binding:"required,gte=0"`
	DueDate     string   `json:"dueDate" binding:"required"`
	Description string   `json:"description"`
}

// SendMassNotificationRequest represents the request body for a broadcast
type SendMassNotificationRequest struct {
	Title       string `json:"title" binding:"required"`
	Message     string `json:"message" binding:"required"`
	Type        string `json:"type" binding:"omitempty,oneof=PAYMENT_DUE PAYMENT_RECEIVED DOCUMENT_SENT GENERAL"`
	ResidentIDs []uint `json:"residentIds"`
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(
	residentService service.ResidentService,
	paymentService service.PaymentService,
	notificationService service.NotificationService,
	dashboardService service.DashboardService,
	logger *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		residentService:     residentService,
		paymentService:      paymentService,
		notificationService: notificationService,
		dashboardService:    dashboardService,
		logger:              logger,
	}
}

// ListResidents lists residents ordered by house number
// @Summary List residents
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param isActive query bool false "Filter by active flag"
// @Param search query string false "Search house number, name or email"
// @Success 200 {object} map[string]interface{} "Residents with pagination"
// @Failure 403 {object} utils.ErrorResponse "Admin access required"
// @Router /api/v1/admin/residents [get]
func (h *AdminHandler) ListResidents(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := repository.ResidentFilter{Search: c.Query("search")}
	if raw := c.Query("isActive"); raw != "" {
		if isActive, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &isActive
		}
	}

	residents, total, err := h.residentService.List(filter, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list residents")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"residents":  residents,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// GetResident returns one resident with its account
// @Summary Get resident
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Success 200 {object} map[string]interface{} "Resident"
// @Failure 404 {object} utils.ErrorResponse "Resident not found"
// @Router /api/v1/admin/residents/{id} [get]
func (h *AdminHandler) GetResident(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequest(c, "resident id must be a valid number")
		return
	}

	resident, err := h.residentService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrResidentNotFound) {
			utils.NotFound(c, "resident not found")
			return
		}
		h.logger.WithError(err).WithField("resident_id", id).Error("Failed to get resident")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resident": resident})
}

// UpdateResidentStatus toggles a resident between active and inactive
// @Summary Update resident status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Param request body UpdateResidentStatusRequest true "Status"
// @Success 200 {object} map[string]interface{} "Updated resident"
// @Failure 404 {object} utils.ErrorResponse "Resident not found"
// @Router /api/v1/admin/residents/{id}/status [put]
func (h *AdminHandler) UpdateResidentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequest(c, "resident id must be a valid number")
		return
	}

	var request UpdateResidentStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	resident, err := h.residentService.UpdateStatus(id, *request.IsActive)
	if err != nil {
		if errors.Is(err, service.ErrResidentNotFound) {
			utils.NotFound(c, "resident not found")
			return
		}
		h.logger.WithError(err).WithField("resident_id", id).Error("Failed to update resident status")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resident": resident})
}

// GetStats returns the admin dashboard aggregates
// @Summary Admin dashboard stats
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Aggregated counts"
// @Router /api/v1/admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.AdminStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get admin stats")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// CreateAdmin registers an admin account
// @Summary Create admin account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAdminRequest true "Admin account data"
// @Success 201 {object} map[string]interface{} "Account created"
// @Failure 400 {object} utils.ErrorResponse "Email taken"
// @Router /api/v1/admin/create-admin [post]
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var request CreateAdminRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	user, err := h.residentService.CreateAdmin(request.Email, request.Password, request.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			utils.BadRequest(c, "email already registered")
			return
		}
		h.logger.WithError(err).Error("Failed to create admin account")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// CreatePayment assigns one payment to a resident
// @Summary Create payment
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePaymentRequest true "Payment data"
// @Success 201 {object} map[string]interface{} "Payment created"
// @Failure 400 {object} utils.ErrorResponse "Resident inactive or invalid input"
// @Failure 404 {object} utils.ErrorResponse "Resident not found"
// @Router /api/v1/admin/create-payment [post]
func (h *AdminHandler) CreatePayment(c *gin.Context) {
	var request CreatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		utils.BadRequest(c, "dueDate must be a valid date")
		return
	}

	payment, err := h.paymentService.CreatePayment(request.ResidentID, request.Type, *request.Amount, dueDate, request.Description, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResidentNotFound):
			utils.NotFound(c, "resident not found")
		case errors.Is(err, service.ErrResidentInactive):
			utils.BadRequest(c, "cannot create payments for inactive residents")
		default:
			h.logger.WithError(err).WithField("resident_id", request.ResidentID).Error("Failed to create payment")
			utils.InternalServerError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// CreateMassPayments assigns one payment to every active resident
// @Summary Create mass payments
// @Description Assign the same charge to every active resident as independent writes
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMassPaymentsRequest true "Batch data"
// @Success 201 {object} service.MassPaymentResponse "Batch outcome"
// @Failure 400 {object} utils.ErrorResponse "No active residents"
// @Router /api/v1/admin/create-mass-payments [post]
func (h *AdminHandler) CreateMassPayments(c *gin.Context) {
	var request CreateMassPaymentsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		utils.BadRequest(c, "dueDate must be a valid date")
		return
	}

	result, err := h.paymentService.CreateMassPayments(request.Type, *request.Amount, dueDate, request.Description, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNoActiveResidents) {
			utils.BadRequest(c, "no active residents to assign payments")
			return
		}
		h.logger.WithError(err).Error("Failed to create mass payments")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// SendMassNotification broadcasts a notification to residents
// @Summary Send mass notification
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendMassNotificationRequest true "Notification data"
// @Success 200 {object} service.MassNotificationResponse "Broadcast outcome"
// @Failure 400 {object} utils.ErrorResponse "No active residents"
// @Router /api/v1/admin/send-mass-notification [post]
func (h *AdminHandler) SendMassNotification(c *gin.Context) {
	var request SendMassNotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	result, err := h.notificationService.SendMass(request.Title, request.Message, request.Type, request.ResidentIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveResidents) {
			utils.BadRequest(c, "no active residents to notify")
			return
		}
		h.logger.WithError(err).Error("Failed to send mass notification")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPaymentsReport returns payments matching the report filters
// @Summary Payments report
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param type query string false "Payment type"
// @Param status query string false "Payment status"
// @Success 200 {object} map[string]interface{} "Payments with summary"
// @Router /api/v1/admin/payments-report [get]
func (h *AdminHandler) GetPaymentsReport(c *gin.Context) {
	filter := reportFilter(c)

	payments, summary, err := h.paymentService.Report(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build payments report")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"summary":  summary,
	})
}

// ExportPaymentsReport streams the payments report as an Excel workbook
// @Summary Export payments report
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param type query string false "Payment type"
// @Param status query string false "Payment status"
// @Success 200 {file} binary "Excel workbook"
// @Router /api/v1/admin/payments-report/export [get]
func (h *AdminHandler) ExportPaymentsReport(c *gin.Context) {
	filter := reportFilter(c)

	data, filename, err := h.paymentService.ExportReport(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export payments report")
		utils.InternalServerError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func reportFilter(c *gin.Context) repository.PaymentFilter {
	filter := repository.PaymentFilter{
		Status:    c.Query("status"),
		Type:      c.Query("type"),
		StartDate: parseDateQuery(c, "startDate"),
		EndDate:   parseDateQuery(c, "endDate"),
	}
	return filter
}

// parseDueDate accepts both plain dates and RFC 3339 timestamps
func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
