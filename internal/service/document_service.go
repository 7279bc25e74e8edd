package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resi-be-svc/internal/config"
	"resi-be-svc/internal/models"
	"resi-be-svc/internal/repository"
	"resi-be-svc/pkg/logger"

	"gorm.io/gorm"
)

// WaterInvoiceRequest carries the inputs for a water invoice
type WaterInvoiceRequest struct {
	ResidentID  uint
	Amount      float64
	DueDate     time.Time
	Consumption float64
	Period      string
	IssuerID    uint
}

// MaintenanceInvoiceRequest carries the inputs for a maintenance invoice
type MaintenanceInvoiceRequest struct {
	ResidentID uint
	Amount     float64
	DueDate    time.Time
	Period     string
	IssuerID   uint
}

// DocumentService defines the interface for document store operations
type DocumentService interface {
	GenerateWaterInvoice(req WaterInvoiceRequest) (*models.Document, error)
	GenerateMaintenanceInvoice(req MaintenanceInvoiceRequest) (*models.Document, error)
	GenerateReceipt(paymentID, issuerID uint) (*models.Document, error)
	List(filter repository.DocumentFilter, page, limit int) ([]*models.Document, int64, error)
	FetchForDownload(documentID, residentID uint, isAdmin bool) (*models.Document, string, error)
	MarkRead(documentID, residentID uint, isAdmin bool) error
}

// documentService implements DocumentService
type documentService struct {
	documentRepo     repository.DocumentRepository
	residentRepo     repository.ResidentRepository
	paymentRepo      repository.PaymentRepository
	notificationRepo repository.NotificationRepository
	config           config.UploadConfig
	logger           *logger.Logger
}

// NewDocumentService creates a new instance of DocumentService
func NewDocumentService(
	documentRepo repository.DocumentRepository,
	residentRepo repository.ResidentRepository,
	paymentRepo repository.PaymentRepository,
	notificationRepo repository.NotificationRepository,
	cfg config.UploadConfig,
	logger *logger.Logger,
) DocumentService {
	return &documentService{
		documentRepo:     documentRepo,
		residentRepo:     residentRepo,
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
		config:           cfg,
		logger:           logger,
	}
}

// GenerateWaterInvoice renders a water invoice for one resident, stores the
// artifact and notifies the owning account
func (s *documentService) GenerateWaterInvoice(req WaterInvoiceRequest) (*models.Document, error) {
	resident, err := s.residentRepo.GetByIDWithUser(req.ResidentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}

	name := ""
	if resident.User != nil {
		name = resident.User.Name
	}

	var content strings.Builder
	content.WriteString("WATER INVOICE\n")
	content.WriteString("=============\n\n")
	fmt.Fprintf(&content, "Resident: %s\n", name)
	fmt.Fprintf(&content, "House: %s\n", resident.HouseNumber)
	fmt.Fprintf(&content, "Period: %s\n", req.Period)
	if req.Consumption > 0 {
		fmt.Fprintf(&content, "Consumption: %.2f m3\n", req.Consumption)
	}
	fmt.Fprintf(&content, "Amount due: $%.2f\n", req.Amount)
	fmt.Fprintf(&content, "Due date: %s\n", req.DueDate.Format("02/01/2006"))

	title := fmt.Sprintf("Water Invoice - %s", req.Period)
	return s.storeDocument(resident, req.IssuerID, models.DocumentTypeInvoice, title, content.String(), "water_invoice")
}

// GenerateMaintenanceInvoice renders a maintenance invoice for one resident
func (s *documentService) GenerateMaintenanceInvoice(req MaintenanceInvoiceRequest) (*models.Document, error) {
	resident, err := s.residentRepo.GetByIDWithUser(req.ResidentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}

	name := ""
	if resident.User != nil {
		name = resident.User.Name
	}

	var content strings.Builder
	content.WriteString("MAINTENANCE INVOICE\n")
	content.WriteString("===================\n\n")
	fmt.Fprintf(&content, "Resident: %s\n", name)
	fmt.Fprintf(&content, "House: %s\n", resident.HouseNumber)
	fmt.Fprintf(&content, "Period: %s\n", req.Period)
	fmt.Fprintf(&content, "Amount due: $%.2f\n", req.Amount)
	fmt.Fprintf(&content, "Due date: %s\n", req.DueDate.Format("02/01/2006"))

	title := fmt.Sprintf("Maintenance Invoice - %s", req.Period)
	return s.storeDocument(resident, req.IssuerID, models.DocumentTypeInvoice, title, content.String(), "maintenance_invoice")
}

// GenerateReceipt renders a receipt for a PAID payment
func (s *documentService) GenerateReceipt(paymentID, issuerID uint) (*models.Document, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.Status != models.PaymentStatusPaid {
		return nil, ErrPaymentNotPaid
	}

	resident := payment.Resident
	if resident == nil {
		resident, err = s.residentRepo.GetByIDWithUser(payment.ResidentID)
		if err != nil {
			return nil, err
		}
	}

	name := ""
	if resident.User != nil {
		name = resident.User.Name
	}
	paidDate := ""
	if payment.PaidDate != nil {
		paidDate = payment.PaidDate.Format("02/01/2006 15:04")
	}

	var content strings.Builder
	content.WriteString("PAYMENT RECEIPT\n")
	content.WriteString("===============\n\n")
	fmt.Fprintf(&content, "Receipt for payment #%d\n", payment.ID)
	fmt.Fprintf(&content, "Resident: %s\n", name)
	fmt.Fprintf(&content, "House: %s\n", resident.HouseNumber)
	fmt.Fprintf(&content, "Type: %s\n", payment.Type)
	fmt.Fprintf(&content, "Amount: $%.2f\n", payment.Amount)
	fmt.Fprintf(&content, "Paid on: %s\n", paidDate)

	title := fmt.Sprintf("Receipt - Payment #%d", payment.ID)
	return s.storeDocument(resident, issuerID, models.DocumentTypeReceipt, title, content.String(), "receipt")
}

// storeDocument writes the artifact under the upload dir, persists the row
// with its relative filename and emits a DOCUMENT_SENT notification
func (s *documentService) storeDocument(resident *models.Resident, issuerID uint, docType, title, content, prefix string) (*models.Document, error) {
	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%d_%d.txt", prefix, resident.ID, time.Now().UnixNano())
	if err := os.WriteFile(filepath.Join(s.config.Dir, filename), []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write document file: %w", err)
	}

	document := &models.Document{
		ResidentID: resident.ID,
		UserID:     issuerID,
		Type:       docType,
		Title:      title,
		Content:    content,
		FilePath:   &filename,
	}
	if err := s.documentRepo.Create(document); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:  resident.UserID,
		Title:   "New document available",
		Message: fmt.Sprintf("%s has been issued to your account", title),
		Type:    models.NotificationTypeDocumentSent,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).WithField("document_id", document.ID).Error("Failed to create document notification")
	}

	document.Resident = resident
	return document, nil
}

// List retrieves documents newest first with pagination
func (s *documentService) List(filter repository.DocumentFilter, page, limit int) ([]*models.Document, int64, error) {
	return s.documentRepo.List(filter, page, limit)
}

// FetchForDownload resolves the document, enforces ownership and returns the
// absolute artifact path. Downloads by the owning resident mark the document
// read; admin downloads do not.
func (s *documentService) FetchForDownload(documentID, residentID uint, isAdmin bool) (*models.Document, string, error) {
	document, err := s.documentRepo.GetByID(documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrDocumentNotFound
		}
		return nil, "", err
	}

	if !isAdmin && document.ResidentID != residentID {
		return nil, "", ErrNotAllowed
	}

	if document.FilePath == nil {
		return nil, "", ErrFileNotFound
	}
	path := filepath.Join(s.config.Dir, *document.FilePath)
	if _, err := os.Stat(path); err != nil {
		return nil, "", ErrFileNotFound
	}

	if !isAdmin && !document.IsRead {
		if err := s.documentRepo.MarkRead(document.ID); err != nil {
			s.logger.WithError(err).WithField("document_id", document.ID).Error("Failed to mark document read")
		} else {
			document.IsRead = true
		}
	}

	return document, path, nil
}

// MarkRead marks a document read on behalf of its owner
func (s *documentService) MarkRead(documentID, residentID uint, isAdmin bool) error {
	document, err := s.documentRepo.GetByID(documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	if !isAdmin && document.ResidentID != residentID {
		return ErrNotAllowed
	}

	return s.documentRepo.MarkRead(documentID)
}
