package repository

import (
	"time"

	"resi-be-svc/internal/models"
	"resi-be-svc/internal/models/response"

	"gorm.io/gorm"
)

// PaymentFilter narrows payment list queries
type PaymentFilter struct {
	ResidentID *uint
	Status     string
	Type       string
	StartDate  *time.Time
	EndDate    *time.Time
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByIDForResident(id, residentID uint) (*models.Payment, error)
	List(filter PaymentFilter, page, limit int) ([]*models.Payment, int64, error)
	ListAll(filter PaymentFilter) ([]*models.Payment, error)
	ListPendingByResident(residentID uint) ([]*models.Payment, error)
	ListRecentByResident(residentID uint, limit int) ([]*models.Payment, error)
	ListOverdueCandidates(asOf time.Time) ([]*models.Payment, error)
	MarkPaid(id uint, paidDate time.Time, intentID *string) error
	MarkOverdue(id uint) error
	SetIntentID(id uint, intentID string) error
	Summary(residentID uint) (*response.PaymentSummaryResponse, error)
	Stats() (*response.PaymentStatsResponse, error)
	StatsByStatus() ([]response.PaymentStatusCount, error)
	Count() (int64, error)
}

// paymentRepository implements PaymentRepository
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create inserts a new payment
func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// GetByID retrieves a payment by ID with its resident and account
func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment

	err := r.db.Preload("Resident").Preload("Resident.User").
		Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// GetByIDForResident retrieves a payment scoped to the owning resident.
// A payment owned by another resident is indistinguishable from a missing one.
func (r *paymentRepository) GetByIDForResident(id, residentID uint) (*models.Payment, error) {
	var payment models.Payment

	err := r.db.Preload("Resident").Preload("Resident.User").
		Where("id = ? AND resident_id = ?", id, residentID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func applyPaymentFilter(query *gorm.DB, filter PaymentFilter) *gorm.DB {
	if filter.ResidentID != nil {
		query = query.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}
	return query
}

// List retrieves payments newest-created-first with pagination and total count
func (r *paymentRepository) List(filter PaymentFilter, page, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := applyPaymentFilter(r.db.Model(&models.Payment{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Resident").Preload("Resident.User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// ListAll retrieves every payment matching the filter, newest first
func (r *paymentRepository) ListAll(filter PaymentFilter) ([]*models.Payment, error) {
	var payments []*models.Payment

	err := applyPaymentFilter(r.db.Model(&models.Payment{}), filter).
		Preload("Resident").Preload("Resident.User").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// ListPendingByResident retrieves open payments for one resident, earliest due first
func (r *paymentRepository) ListPendingByResident(residentID uint) ([]*models.Payment, error) {
	var payments []*models.Payment

	err := r.db.Where("resident_id = ? AND status IN ?",
		residentID, []string{models.PaymentStatusPending, models.PaymentStatusOverdue}).
		Order("due_date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// ListRecentByResident retrieves the latest payments for one resident
func (r *paymentRepository) ListRecentByResident(residentID uint, limit int) ([]*models.Payment, error) {
	var payments []*models.Payment

	err := r.db.Where("resident_id = ?", residentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// ListOverdueCandidates retrieves PENDING payments whose due date has passed
func (r *paymentRepository) ListOverdueCandidates(asOf time.Time) ([]*models.Payment, error) {
	var payments []*models.Payment

	err := r.db.Preload("Resident").Preload("Resident.User").
		Where("status = ? AND due_date < ?", models.PaymentStatusPending, asOf).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// MarkPaid sets the payment to PAID with its paid date and optional gateway
// intent reference in a single row update
func (r *paymentRepository) MarkPaid(id uint, paidDate time.Time, intentID *string) error {
	updates := map[string]interface{}{
		"status":    models.PaymentStatusPaid,
		"paid_date": paidDate,
	}
	if intentID != nil {
		updates["stripe_payment_intent_id"] = *intentID
	}
	return r.db.Model(&models.Payment{}).Where("id = ?", id).Updates(updates).Error
}

// MarkOverdue sets the payment to OVERDUE in a single row update
func (r *paymentRepository) MarkOverdue(id uint) error {
	return r.db.Model(&models.Payment{}).Where("id = ?", id).
		Update("status", models.PaymentStatusOverdue).Error
}

// SetIntentID records the gateway payment intent reference on the payment
func (r *paymentRepository) SetIntentID(id uint, intentID string) error {
	return r.db.Model(&models.Payment{}).Where("id = ?", id).
		Update("stripe_payment_intent_id", intentID).Error
}

// Summary returns counts per status and the open amount for one resident
func (r *paymentRepository) Summary(residentID uint) (*response.PaymentSummaryResponse, error) {
	var summary response.PaymentSummaryResponse

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PENDING') as total_pending,
			COUNT(*) FILTER (WHERE status = 'PAID') as total_paid,
			COUNT(*) FILTER (WHERE status = 'OVERDUE') as total_overdue,
			COALESCE(SUM(amount) FILTER (WHERE status IN ('PENDING', 'OVERDUE')), 0) as pending_amount
		FROM payments
		WHERE resident_id = ?
	`

	err := r.db.Raw(query, residentID).
		Row().
		Scan(&summary.TotalPending, &summary.TotalPaid, &summary.TotalOverdue, &summary.PendingAmount)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// Stats returns global counts and summed amounts across all residents
func (r *paymentRepository) Stats() (*response.PaymentStatsResponse, error) {
	var stats response.PaymentStatsResponse

	query := `
		SELECT
			COUNT(*) as total_payments,
			COUNT(*) FILTER (WHERE status = 'PENDING') as total_pending,
			COUNT(*) FILTER (WHERE status = 'PAID') as total_paid,
			COUNT(*) FILTER (WHERE status = 'OVERDUE') as total_overdue,
			COALESCE(SUM(amount), 0) as total_amount,
			COALESCE(SUM(amount) FILTER (WHERE status IN ('PENDING', 'OVERDUE')), 0) as pending_amount,
			COALESCE(SUM(amount) FILTER (WHERE status = 'PAID'), 0) as paid_amount
		FROM payments
	`

	err := r.db.Raw(query).
		Row().
		Scan(&stats.TotalPayments, &stats.TotalPending, &stats.TotalPaid, &stats.TotalOverdue,
			&stats.TotalAmount, &stats.PendingAmount, &stats.PaidAmount)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// StatsByStatus returns the per-status count and amount breakdown
func (r *paymentRepository) StatsByStatus() ([]response.PaymentStatusCount, error) {
	var rows []response.PaymentStatusCount

	err := r.db.Model(&models.Payment{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Count returns the total number of payments
func (r *paymentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).Count(&count).Error
	return count, err
}
