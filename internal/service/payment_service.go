package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"resi-be-svc/internal/models"
	"resi-be-svc/internal/models/response"
	"resi-be-svc/internal/repository"
	"resi-be-svc/pkg/logger"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// PaymentService defines the interface for payment ledger operations
type PaymentService interface {
	CreatePayment(residentID uint, paymentType string, amount float64, dueDate time.Time, description string, issuerID uint) (*models.Payment, error)
	CreateMassPayments(paymentType string, amount float64, dueDate time.Time, description string, issuerID uint) (*MassPaymentResponse, error)
	MarkPaidByAdmin(paymentID uint) (*models.Payment, error)
	MarkPaidByResident(paymentID, residentID uint) (*models.Payment, error)
	ListPayments(filter repository.PaymentFilter, page, limit int) ([]*models.Payment, int64, error)
	ListPendingPayments(residentID uint) ([]*models.Payment, error)
	Summary(residentID uint) (*response.PaymentSummaryResponse, []*models.Payment, error)
	Stats() (*response.PaymentStatsResponse, error)
	Report(filter repository.PaymentFilter) ([]*models.Payment, *response.ReportSummaryResponse, error)
	ExportReport(filter repository.PaymentFilter) ([]byte, string, error)
	UpdateOverduePayments(asOf time.Time) (int, error)
}

// MassPaymentResponse reports the per-item outcome of a best-effort batch.
// The batch has no transactional envelope: a mid-batch failure leaves the
// earlier writes in place.
type MassPaymentResponse struct {
	TotalResidents int      `json:"total_residents"`
	PaymentsCount  int      `json:"paymentsCount"`
	FailedCount    int      `json:"failed_count"`
	Errors         []string `json:"errors,omitempty"`
}

// paymentService implements PaymentService
type paymentService struct {
	paymentRepo      repository.PaymentRepository
	residentRepo     repository.ResidentRepository
	notificationRepo repository.NotificationRepository
	logger           *logger.Logger
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	residentRepo repository.ResidentRepository,
	notificationRepo repository.NotificationRepository,
	logger *logger.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo:      paymentRepo,
		residentRepo:     residentRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// CreatePayment inserts a PENDING payment for one resident and notifies the
// owning account. Past due dates are deliberately allowed.
func (s *paymentService) CreatePayment(residentID uint, paymentType string, amount float64, dueDate time.Time, description string, issuerID uint) (*models.Payment, error) {
	resident, err := s.residentRepo.GetByIDWithUser(residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}

	if !resident.IsActive {
		return nil, ErrResidentInactive
	}

	if description == "" {
		description = fmt.Sprintf("Payment for %s - %s", strings.ToLower(paymentType), dueDate.Format("January 2006"))
	}

	payment := &models.Payment{
		ResidentID:  residentID,
		UserID:      issuerID,
		Type:        paymentType,
		Amount:      amount,
		Status:      models.PaymentStatusPending,
		DueDate:     dueDate,
		Description: description,
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	// Notification is a separate write, not atomic with the payment row.
	notification := &models.Notification{
		UserID:  resident.UserID,
		Title:   "New payment assigned",
		Message: fmt.Sprintf("A new %s payment of $%.2f is due on %s", strings.ToLower(paymentType), amount, dueDate.Format("02/01/2006")),
		Type:    models.NotificationTypePaymentDue,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).WithField("payment_id", payment.ID).Error("Failed to create payment notification")
		return nil, err
	}

	payment.Resident = resident
	return payment, nil
}

// CreateMassPayments fans payment creation out to every active resident as
// independent writes, collecting per-item failures.
func (s *paymentService) CreateMassPayments(paymentType string, amount float64, dueDate time.Time, description string, issuerID uint) (*MassPaymentResponse, error) {
	residents, err := s.residentRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to get active residents: %w", err)
	}

	if len(residents) == 0 {
		return nil, ErrNoActiveResidents
	}

	if description == "" {
		description = fmt.Sprintf("Payment for %s - %s", strings.ToLower(paymentType), dueDate.Format("January 2006"))
	}

	result := &MassPaymentResponse{
		TotalResidents: len(residents),
	}

	for _, resident := range residents {
		payment := &models.Payment{
			ResidentID:  resident.ID,
			UserID:      issuerID,
			Type:        paymentType,
			Amount:      amount,
			Status:      models.PaymentStatusPending,
			DueDate:     dueDate,
			Description: description,
		}

		if err := s.paymentRepo.Create(payment); err != nil {
			s.logger.WithError(err).WithField("resident_id", resident.ID).Error("Failed to create mass payment")
			result.FailedCount++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.PaymentsCount++

		notification := &models.Notification{
			UserID:  resident.UserID,
			Title:   "New payment assigned",
			Message: fmt.Sprintf("A new %s payment of $%.2f is due on %s", strings.ToLower(paymentType), amount, dueDate.Format("02/01/2006")),
			Type:    models.NotificationTypePaymentDue,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			s.logger.WithError(err).WithField("resident_id", resident.ID).Error("Failed to create mass payment notification")
			result.Errors = append(result.Errors, err.Error())
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"total_residents": result.TotalResidents,
		"payments_count":  result.PaymentsCount,
		"failed_count":    result.FailedCount,
	}).Info("Mass payments created")

	return result, nil
}

// MarkPaidByAdmin settles a payment unconditionally of ownership. Only
// PENDING and OVERDUE payments can transition to PAID.
func (s *paymentService) MarkPaidByAdmin(paymentID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return s.settle(payment, nil)
}

// MarkPaidByResident settles a payment through the resident self-service
// path. The lookup is scoped to the caller's resident, so payments owned by
// other residents and payments no longer payable both read as not found.
func (s *paymentService) MarkPaidByResident(paymentID, residentID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByIDForResident(paymentID, residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if !payment.IsPayable() {
		return nil, ErrPaymentNotFound
	}

	return s.settle(payment, nil)
}

func (s *paymentService) settle(payment *models.Payment, intentID *string) (*models.Payment, error) {
	return settlePayment(s.paymentRepo, s.notificationRepo, s.logger, payment, intentID)
}

// settlePayment performs the PENDING/OVERDUE to PAID transition and emits the
// PAYMENT_RECEIVED notification. It backs both the admin/resident mark-paid
// paths and gateway confirmation. The existing paid date is never touched on
// a rejected transition.
func settlePayment(
	paymentRepo repository.PaymentRepository,
	notificationRepo repository.NotificationRepository,
	log *logger.Logger,
	payment *models.Payment,
	intentID *string,
) (*models.Payment, error) {
	if !payment.IsPayable() {
		return nil, ErrInvalidPaymentState
	}

	now := time.Now()
	if err := paymentRepo.MarkPaid(payment.ID, now, intentID); err != nil {
		return nil, err
	}

	payment.Status = models.PaymentStatusPaid
	payment.PaidDate = &now
	if intentID != nil {
		payment.StripePaymentIntentID = intentID
	}

	if payment.Resident != nil {
		notification := &models.Notification{
			UserID:  payment.Resident.UserID,
			Title:   "Payment confirmed",
			Message: fmt.Sprintf("Your %s payment of $%.2f has been confirmed", strings.ToLower(payment.Type), payment.Amount),
			Type:    models.NotificationTypePaymentReceived,
		}
		if err := notificationRepo.Create(notification); err != nil {
			log.WithError(err).WithField("payment_id", payment.ID).Error("Failed to create payment confirmation notification")
		}
	}

	return payment, nil
}

// ListPayments retrieves payments newest first with pagination
func (s *paymentService) ListPayments(filter repository.PaymentFilter, page, limit int) ([]*models.Payment, int64, error) {
	return s.paymentRepo.List(filter, page, limit)
}

// ListPendingPayments retrieves one resident's open payments
func (s *paymentService) ListPendingPayments(residentID uint) ([]*models.Payment, error) {
	return s.paymentRepo.ListPendingByResident(residentID)
}

// Summary returns the per-status counts, open amount and latest payments for
// one resident
func (s *paymentService) Summary(residentID uint) (*response.PaymentSummaryResponse, []*models.Payment, error) {
	summary, err := s.paymentRepo.Summary(residentID)
	if err != nil {
		return nil, nil, err
	}

	recent, err := s.paymentRepo.ListRecentByResident(residentID, 5)
	if err != nil {
		return nil, nil, err
	}

	return summary, recent, nil
}

// Stats returns global payment counts and amounts
func (s *paymentService) Stats() (*response.PaymentStatsResponse, error) {
	return s.paymentRepo.Stats()
}

// Report returns the payments matching the filter with an amount summary
func (s *paymentService) Report(filter repository.PaymentFilter) ([]*models.Payment, *response.ReportSummaryResponse, error) {
	payments, err := s.paymentRepo.ListAll(filter)
	if err != nil {
		return nil, nil, err
	}

	summary := &response.ReportSummaryResponse{
		TotalPayments: len(payments),
	}
	for _, payment := range payments {
		summary.TotalAmount += payment.Amount
		if payment.Status == models.PaymentStatusPaid {
			summary.PaidAmount += payment.Amount
		}
	}
	summary.PendingAmount = summary.TotalAmount - summary.PaidAmount

	return payments, summary, nil
}

// ExportReport renders the payments report as an Excel workbook
func (s *paymentService) ExportReport(filter repository.PaymentFilter) ([]byte, string, error) {
	payments, _, err := s.Report(filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get payment data: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Payments"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "House", "Resident", "Type", "Amount", "Status", "Due Date", "Paid Date", "Description"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "I1", headerStyle)
	}

	for i, payment := range payments {
		row := i + 2

		houseNumber := ""
		residentName := ""
		if payment.Resident != nil {
			houseNumber = payment.Resident.HouseNumber
			if payment.Resident.User != nil {
				residentName = payment.Resident.User.Name
			}
		}
		paidDate := ""
		if payment.PaidDate != nil {
			paidDate = payment.PaidDate.Format("02/01/2006 15:04")
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), houseNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), residentName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), payment.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), payment.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), payment.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), payment.DueDate.Format("02/01/2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), paidDate)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), payment.Description)
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("payments_report_%s.xlsx", timestamp)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buffer.Bytes(), filename, nil
}

// UpdateOverduePayments reclassifies PENDING payments whose due date passed
// the cutoff as OVERDUE and notifies each owning account. Updates are issued
// as independent single-row writes with no transactional envelope; the first
// failure is surfaced after the batch completes. Re-running with the same
// cutoff transitions zero additional rows.
func (s *paymentService) UpdateOverduePayments(asOf time.Time) (int, error) {
	candidates, err := s.paymentRepo.ListOverdueCandidates(asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to get overdue candidates: %w", err)
	}

	count := 0
	var firstErr error

	for _, payment := range candidates {
		if err := s.paymentRepo.MarkOverdue(payment.ID); err != nil {
			s.logger.WithError(err).WithField("payment_id", payment.ID).Error("Failed to mark payment overdue")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		count++

		if payment.Resident == nil {
			continue
		}
		notification := &models.Notification{
			UserID:  payment.Resident.UserID,
			Title:   "Payment overdue",
			Message: fmt.Sprintf("Your %s payment of $%.2f is overdue", strings.ToLower(payment.Type), payment.Amount),
			Type:    models.NotificationTypePaymentDue,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			s.logger.WithError(err).WithField("payment_id", payment.ID).Error("Failed to create overdue notification")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"as_of": asOf,
		"count": count,
	}).Info("Overdue sweep completed")

	return count, firstErr
}
