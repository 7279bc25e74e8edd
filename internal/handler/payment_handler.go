package handler

import (
	"errors"
	"io"
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

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
	gatewayService service.GatewayService
	logger         *logger.Logger
}

// MarkAsPaidRequest represents the request body for resident self-service settlement
type MarkAsPaidRequest struct {
	PaymentID uint `json:"paymentId" binding:"required"`
}

// CreatePaymentIntentRequest represents the request body for opening a gateway intent
type CreatePaymentIntentRequest struct {
	PaymentID       uint   `json:"paymentId" binding:"required"`
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}

// ConfirmPaymentRequest represents the request body for confirming a gateway intent
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	PaymentID       uint   `json:"paymentId" binding:"required"`
}

// NewPaymentHandler creates a new PaymentHandler instance
func NewPaymentHandler(paymentService service.PaymentService, gatewayService service.GatewayService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		gatewayService: gatewayService,
		logger:         logger,
	}
}

// GetMyPayments lists the caller's payments
// @Summary List my payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Payment status"
// @Param type query string false "Payment type"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "Payments with pagination"
// @Router /api/v1/payments/my-payments [get]
func (h *PaymentHandler) GetMyPayments(c *gin.Context) {
	residentID := middleware.ResidentID(c)
	page, limit := parsePagination(c)

	filter := repository.PaymentFilter{
		ResidentID: &residentID,
		Status:     c.Query("status"),
		Type:       c.Query("type"),
	}

	payments, total, err := h.paymentService.ListPayments(filter, page, limit)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to list payments")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// GetMySummary returns the caller's payment summary
// @Summary My payment summary
// @Description Per-status counts, open amount and latest payments for the caller
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Summary with recent payments"
// @Router /api/v1/payments/my-summary [get]
func (h *PaymentHandler) GetMySummary(c *gin.Context) {
	residentID := middleware.ResidentID(c)

	summary, recent, err := h.paymentService.Summary(residentID)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to get payment summary")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":        summary,
		"recentPayments": recent,
	})
}

// GetPendingPayments lists the caller's open payments ordered by due date
// @Summary My pending payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Open payments"
// @Router /api/v1/payments/pending-payments [get]
func (h *PaymentHandler) GetPendingPayments(c *gin.Context) {
	residentID := middleware.ResidentID(c)

	payments, err := h.paymentService.ListPendingPayments(residentID)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to list pending payments")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// ListPayments lists all payments for admins
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Payment status"
// @Param type query string false "Payment type"
// @Param residentId query int false "Filter by resident"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "Payments with pagination"
// @Failure 403 {object} utils.ErrorResponse "Admin access required"
// @Router /api/v1/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := repository.PaymentFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}
	if raw := c.Query("residentId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			residentID := uint(id)
			filter.ResidentID = &residentID
		}
	}

	payments, total, err := h.paymentService.ListPayments(filter, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list payments")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// GetStats returns global payment aggregates
// @Summary Payment stats
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Counts and amounts"
// @Failure 403 {object} utils.ErrorResponse "Admin access required"
// @Router /api/v1/payments/stats [get]
func (h *PaymentHandler) GetStats(c *gin.Context) {
	stats, err := h.paymentService.Stats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get payment stats")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// MarkPaid settles a payment on behalf of an admin
// @Summary Mark payment paid
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} map[string]interface{} "Settled payment"
// @Failure 400 {object} utils.ErrorResponse "Payment not in a payable state"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Router /api/v1/payments/{id}/mark-paid [put]
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequest(c, "payment id must be a valid number")
		return
	}

	payment, err := h.paymentService.MarkPaidByAdmin(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			utils.NotFound(c, "payment not found")
		case errors.Is(err, service.ErrInvalidPaymentState):
			utils.BadRequest(c, "payment is not in a payable state")
		default:
			h.logger.WithError(err).WithField("payment_id", id).Error("Failed to mark payment paid")
			utils.InternalServerError(c)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// MarkAsPaid settles a payment through the resident self-service path
// @Summary Mark my payment paid
// @Description Settle a caller-owned open payment. Payments owned by others read as not found.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkAsPaidRequest true "Payment reference"
// @Success 200 {object} map[string]interface{} "Settled payment"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Router /api/v1/payments/mark-as-paid [post]
func (h *PaymentHandler) MarkAsPaid(c *gin.Context) {
	var request MarkAsPaidRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	residentID := middleware.ResidentID(c)
	payment, err := h.paymentService.MarkPaidByResident(request.PaymentID, residentID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			utils.NotFound(c, "payment not found")
			return
		}
		h.logger.WithError(err).WithField("payment_id", request.PaymentID).Error("Failed to mark payment paid")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// CreatePaymentIntent opens a gateway intent for a caller-owned payment
// @Summary Create payment intent
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePaymentIntentRequest true "Payment and method references"
// @Success 200 {object} service.PaymentIntentResponse "Gateway references"
// @Failure 400 {object} utils.ErrorResponse "Payment not in a payable state"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Router /api/v1/payments/create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var request CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	residentID := middleware.ResidentID(c)
	response, err := h.gatewayService.CreatePaymentIntent(request.PaymentID, residentID, request.PaymentMethodID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			utils.NotFound(c, "payment not found")
		case errors.Is(err, service.ErrInvalidPaymentState):
			utils.BadRequest(c, "payment is not in a payable state")
		default:
			h.logger.WithError(err).WithField("payment_id", request.PaymentID).Error("Failed to create payment intent")
			utils.InternalServerError(c)
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// ConfirmPayment settles a payment once the gateway reports success
// @Summary Confirm payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmPaymentRequest true "Intent and payment references"
// @Success 200 {object} map[string]interface{} "Settled payment"
// @Failure 400 {object} utils.ErrorResponse "Payment not successful"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Router /api/v1/payments/confirm-payment [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var request ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	residentID := middleware.ResidentID(c)
	payment, err := h.gatewayService.ConfirmPayment(request.PaymentIntentID, request.PaymentID, residentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			utils.NotFound(c, "payment not found")
		case errors.Is(err, service.ErrPaymentNotSucceeded):
			utils.BadRequest(c, "payment was not successful")
		case errors.Is(err, service.ErrInvalidPaymentState):
			utils.BadRequest(c, "payment is not in a payable state")
		default:
			h.logger.WithError(err).WithField("payment_id", request.PaymentID).Error("Failed to confirm payment")
			utils.InternalServerError(c)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// Webhook receives signed gateway events
// @Summary Gateway webhook
// @Description Verify the gateway signature and reconcile succeeded intents
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Signature header"
// @Success 200 {object} map[string]interface{} "Acknowledged"
// @Failure 400 {object} utils.ErrorResponse "Bad signature"
// @Router /api/v1/payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.BadRequest(c, "failed to read request body")
		return
	}

	if err := h.gatewayService.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		if errors.Is(err, service.ErrBadSignature) {
			utils.BadRequest(c, "webhook signature verification failed")
			return
		}
		h.logger.WithError(err).Error("Failed to handle webhook")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// UpdateOverdue reclassifies open payments past their due date
// @Summary Run overdue sweep
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Transition count"
// @Failure 403 {object} utils.ErrorResponse "Admin access required"
// @Router /api/v1/payments/update-overdue [post]
func (h *PaymentHandler) UpdateOverdue(c *gin.Context) {
	count, err := h.paymentService.UpdateOverduePayments(time.Now())
	if err != nil {
		h.logger.WithError(err).WithField("count", count).Error("Overdue sweep finished with errors")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
