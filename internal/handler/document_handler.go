package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"resi-be-svc/internal/middleware"
	"resi-be-svc/internal/repository"
	"resi-be-svc/internal/service"
	"resi-be-svc/pkg/logger"
	"resi-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	documentService service.DocumentService
	logger          *logger.Logger
}

// GenerateWaterInvoiceRequest represents the request body for a water invoice
type GenerateWaterInvoiceRequest struct {
	ResidentID  uint     `json:"residentId" binding:"required"`
	Amount      *float64 `json:"amount" binding:"required,gte=0"`
	DueDate     string   `json:"dueDate" binding:"required"`
	Consumption float64  `json:"consumption"`
	Period      string   `json:"period" binding:"required" example:"January 2026"`
}

// GenerateMaintenanceInvoiceRequest represents the request body for a maintenance invoice
type GenerateMaintenanceInvoiceRequest struct {
	ResidentID uint     `json:"residentId" binding:"required"`
	Amount     *float64 `json:"amount" binding:"required,gte=0"`
	DueDate    string   `json:"dueDate" binding:"required"`
	Period     string   `json:"period" binding:"required"`
}

// GenerateReceiptRequest represents the request body for a receipt
type GenerateReceiptRequest struct {
	PaymentID uint `json:"paymentId" binding:"required"`
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(documentService service.DocumentService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// GetMyDocuments lists the caller's documents
// @Summary List my documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param type query string false "Document type"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "Documents with pagination"
// @Router /api/v1/documents/my-documents [get]
func (h *DocumentHandler) GetMyDocuments(c *gin.Context) {
	residentID := middleware.ResidentID(c)
	page, limit := parsePagination(c)

	filter := repository.DocumentFilter{
		ResidentID: &residentID,
		Type:       c.Query("type"),
	}

	documents, total, err := h.documentService.List(filter, page, limit)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to list documents")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents":  documents,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// ListDocuments lists all documents for admins
// @Summary List documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param type query string false "Document type"
// @Param residentId query int false "Filter by resident"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "Documents with pagination"
// @Failure 403 {object} utils.ErrorResponse "Admin access required"
// @Router /api/v1/documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := repository.DocumentFilter{Type: c.Query("type")}
	if raw := c.Query("residentId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			residentID := uint(id)
			filter.ResidentID = &residentID
		}
	}

	documents, total, err := h.documentService.List(filter, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list documents")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents":  documents,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// GenerateWaterInvoice issues a water invoice for one resident
// @Summary Generate water invoice
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateWaterInvoiceRequest true "Invoice data"
// @Success 201 {object} map[string]interface{} "Generated document"
// @Failure 404 {object} utils.ErrorResponse "Resident not found"
// @Router /api/v1/documents/generate-water-invoice [post]
func (h *DocumentHandler) GenerateWaterInvoice(c *gin.Context) {
	var request GenerateWaterInvoiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		utils.BadRequest(c, "dueDate must be a valid date")
		return
	}

	document, err := h.documentService.GenerateWaterInvoice(service.WaterInvoiceRequest{
		ResidentID:  request.ResidentID,
		Amount:      *request.Amount,
		DueDate:     dueDate,
		Consumption: request.Consumption,
		Period:      request.Period,
		IssuerID:    middleware.UserID(c),
	})
	if err != nil {
		if errors.Is(err, service.ErrResidentNotFound) {
			utils.NotFound(c, "resident not found")
			return
		}
		h.logger.WithError(err).WithField("resident_id", request.ResidentID).Error("Failed to generate water invoice")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": document})
}

// GenerateMaintenanceInvoice issues a maintenance invoice for one resident
// @Summary Generate maintenance invoice
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateMaintenanceInvoiceRequest true "Invoice data"
// @Success 201 {object} map[string]interface{} "Generated document"
// @Failure 404 {object} utils.ErrorResponse "Resident not found"
// @Router /api/v1/documents/generate-maintenance-invoice [post]
func (h *DocumentHandler) GenerateMaintenanceInvoice(c *gin.Context) {
	var request GenerateMaintenanceInvoiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		utils.BadRequest(c, "dueDate must be a valid date")
		return
	}

	document, err := h.documentService.GenerateMaintenanceInvoice(service.MaintenanceInvoiceRequest{
		ResidentID: request.ResidentID,
		Amount:     *request.Amount,
		DueDate:    dueDate,
		Period:     request.Period,
		IssuerID:   middleware.UserID(c),
	})
	if err != nil {
		if errors.Is(err, service.ErrResidentNotFound) {
			utils.NotFound(c, "resident not found")
			return
		}
		h.logger.WithError(err).WithField("resident_id", request.ResidentID).Error("Failed to generate maintenance invoice")
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": document})
}

// GenerateReceipt issues a receipt for a PAID payment
// @Summary Generate receipt
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateReceiptRequest true "Payment reference"
// @Success 201 {object} map[string]interface{} "Generated document"
// @Failure 400 {object} utils.ErrorResponse "Payment not paid"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Router /api/v1/documents/generate-receipt [post]
func (h *DocumentHandler) GenerateReceipt(c *gin.Context) {
	var request GenerateReceiptRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	document, err := h.documentService.GenerateReceipt(request.PaymentID, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			utils.NotFound(c, "payment not found")
		case errors.Is(err, service.ErrPaymentNotPaid):
			utils.BadRequest(c, "payment must be marked as paid")
		default:
			h.logger.WithError(err).WithField("payment_id", request.PaymentID).Error("Failed to generate receipt")
			utils.InternalServerError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": document})
}

// Download streams a document artifact
// @Summary Download document
// @Description Stream the backing file. Downloads by the owning resident mark the document read.
// @Tags documents
// @Produce text/plain
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {file} binary "Document file"
// @Failure 403 {object} utils.ErrorResponse "Not the document owner"
// @Failure 404 {object} utils.ErrorResponse "Document or file missing"
// @Router /api/v1/documents/download/{id} [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequest(c, "document id must be a valid number")
		return
	}

	document, path, err := h.documentService.FetchForDownload(id, middleware.ResidentID(c), middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound), errors.Is(err, service.ErrFileNotFound):
			utils.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotAllowed):
			utils.Forbidden(c, "not authorized to access this document")
		default:
			h.logger.WithError(err).WithField("document_id", id).Error("Failed to fetch document for download")
			utils.InternalServerError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", *document.FilePath))
	c.File(path)
}

// MarkRead marks a document read
// @Summary Mark document read
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]interface{} "Marked read"
// @Failure 403 {object} utils.ErrorResponse "Not the document owner"
// @Failure 404 {object} utils.ErrorResponse "Document not found"
// @Router /api/v1/documents/{id}/read [put]
func (h *DocumentHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequest(c, "document id must be a valid number")
		return
	}

	err := h.documentService.MarkRead(id, middleware.ResidentID(c), middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			utils.NotFound(c, "document not found")
		case errors.Is(err, service.ErrNotAllowed):
			utils.Forbidden(c, "not authorized to access this document")
		default:
			h.logger.WithError(err).WithField("document_id", id).Error("Failed to mark document read")
			utils.InternalServerError(c)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "document marked as read"})
}
