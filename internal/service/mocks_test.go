package service

import (
	"time"

	"resi-be-svc/internal/models"
	"resi-be-svc/internal/models/response"
	"resi-be-svc/internal/repository"

	"gorm.io/gorm"
)

// Function-field mocks for the repository interfaces. Unset lookups report
// gorm.ErrRecordNotFound, unset writes succeed.

type mockPaymentRepo struct {
	createFn                func(payment *models.Payment) error
	getByIDFn               func(id uint) (*models.Payment, error)
	getByIDForResidentFn    func(id, residentID uint) (*models.Payment, error)
	listFn                  func(filter repository.PaymentFilter, page, limit int) ([]*models.Payment, int64, error)
	listAllFn               func(filter repository.PaymentFilter) ([]*models.Payment, error)
	listPendingFn           func(residentID uint) ([]*models.Payment, error)
	listRecentFn            func(residentID uint, limit int) ([]*models.Payment, error)
	listOverdueCandidatesFn func(asOf time.Time) ([]*models.Payment, error)
	markPaidFn              func(id uint, paidDate time.Time, intentID *string) error
	markOverdueFn           func(id uint) error
	setIntentIDFn           func(id uint, intentID string) error
	summaryFn               func(residentID uint) (*response.PaymentSummaryResponse, error)
	statsFn                 func() (*response.PaymentStatsResponse, error)
	statsByStatusFn         func() ([]response.PaymentStatusCount, error)
	countFn                 func() (int64, error)
}

func (m *mockPaymentRepo) Create(payment *models.Payment) error {
	if m.createFn != nil {
		return m.createFn(payment)
	}
	return nil
}

func (m *mockPaymentRepo) GetByID(id uint) (*models.Payment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) GetByIDForResident(id, residentID uint) (*models.Payment, error) {
	if m.getByIDForResidentFn != nil {
		return m.getByIDForResidentFn(id, residentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) List(filter repository.PaymentFilter, page, limit int) ([]*models.Payment, int64, error) {
	if m.listFn != nil {
		return m.listFn(filter, page, limit)
	}
	return nil, 0, nil
}

func (m *mockPaymentRepo) ListAll(filter repository.PaymentFilter) ([]*models.Payment, error) {
	if m.listAllFn != nil {
		return m.listAllFn(filter)
	}
	return nil, nil
}

func (m *mockPaymentRepo) ListPendingByResident(residentID uint) ([]*models.Payment, error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(residentID)
	}
	return nil, nil
}

func (m *mockPaymentRepo) ListRecentByResident(residentID uint, limit int) ([]*models.Payment, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(residentID, limit)
	}
	return nil, nil
}

func (m *mockPaymentRepo) ListOverdueCandidates(asOf time.Time) ([]*models.Payment, error) {
	if m.listOverdueCandidatesFn != nil {
		return m.listOverdueCandidatesFn(asOf)
	}
	return nil, nil
}

func (m *mockPaymentRepo) MarkPaid(id uint, paidDate time.Time, intentID *string) error {
	if m.markPaidFn != nil {
		return m.markPaidFn(id, paidDate, intentID)
	}
	return nil
}

func (m *mockPaymentRepo) MarkOverdue(id uint) error {
	if m.markOverdueFn != nil {
		return m.markOverdueFn(id)
	}
	return nil
}

func (m *mockPaymentRepo) SetIntentID(id uint, intentID string) error {
	if m.setIntentIDFn != nil {
		return m.setIntentIDFn(id, intentID)
	}
	return nil
}

func (m *mockPaymentRepo) Summary(residentID uint) (*response.PaymentSummaryResponse, error) {
	if m.summaryFn != nil {
		return m.summaryFn(residentID)
	}
	return &response.PaymentSummaryResponse{}, nil
}

func (m *mockPaymentRepo) Stats() (*response.PaymentStatsResponse, error) {
	if m.statsFn != nil {
		return m.statsFn()
	}
	return &response.PaymentStatsResponse{}, nil
}

func (m *mockPaymentRepo) StatsByStatus() ([]response.PaymentStatusCount, error) {
	if m.statsByStatusFn != nil {
		return m.statsByStatusFn()
	}
	return nil, nil
}

func (m *mockPaymentRepo) Count() (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

type mockResidentRepo struct {
	createFn           func(resident *models.Resident) error
	getByIDFn          func(id uint) (*models.Resident, error)
	getByIDWithUserFn  func(id uint) (*models.Resident, error)
	getByUserIDFn      func(userID uint) (*models.Resident, error)
	getByHouseNumberFn func(houseNumber string) (*models.Resident, error)
	listFn             func(filter repository.ResidentFilter, page, limit int) ([]*models.Resident, int64, error)
	listActiveFn       func() ([]*models.Resident, error)
	listActiveByIDsFn  func(ids []uint) ([]*models.Resident, error)
	updateStatusFn     func(id uint, isActive bool) error
	updatePhoneFn      func(id uint, phone string) error
	countFn            func() (int64, error)
	countActiveFn      func() (int64, error)
}

func (m *mockResidentRepo) Create(resident *models.Resident) error {
	if m.createFn != nil {
		return m.createFn(resident)
	}
	return nil
}

func (m *mockResidentRepo) GetByID(id uint) (*models.Resident, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResidentRepo) GetByIDWithUser(id uint) (*models.Resident, error) {
	if m.getByIDWithUserFn != nil {
		return m.getByIDWithUserFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResidentRepo) GetByUserID(userID uint) (*models.Resident, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResidentRepo) GetByHouseNumber(houseNumber string) (*models.Resident, error) {
	if m.getByHouseNumberFn != nil {
		return m.getByHouseNumberFn(houseNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResidentRepo) List(filter repository.ResidentFilter, page, limit int) ([]*models.Resident, int64, error) {
	if m.listFn != nil {
		return m.listFn(filter, page, limit)
	}
	return nil, 0, nil
}

func (m *mockResidentRepo) ListActive() ([]*models.Resident, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn()
	}
	return nil, nil
}

func (m *mockResidentRepo) ListActiveByIDs(ids []uint) ([]*models.Resident, error) {
	if m.listActiveByIDsFn != nil {
		return m.listActiveByIDsFn(ids)
	}
	return nil, nil
}

func (m *mockResidentRepo) UpdateStatus(id uint, isActive bool) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(id, isActive)
	}
	return nil
}

func (m *mockResidentRepo) UpdatePhone(id uint, phone string) error {
	if m.updatePhoneFn != nil {
		return m.updatePhoneFn(id, phone)
	}
	return nil
}

func (m *mockResidentRepo) Count() (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

func (m *mockResidentRepo) CountActive() (int64, error) {
	if m.countActiveFn != nil {
		return m.countActiveFn()
	}
	return 0, nil
}

type mockNotificationRepo struct {
	createFn      func(notification *models.Notification) error
	getByIDFn     func(id uint) (*models.Notification, error)
	listFn        func(userID uint, isRead *bool, page, limit int) ([]*models.Notification, int64, error)
	unreadCountFn func(userID uint) (int64, error)
	markReadFn    func(id uint) error
	markAllReadFn func(userID uint) error
	deleteFn      func(id uint) error
	countFn       func() (int64, error)
}

func (m *mockNotificationRepo) Create(notification *models.Notification) error {
	if m.createFn != nil {
		return m.createFn(notification)
	}
	return nil
}

func (m *mockNotificationRepo) GetByID(id uint) (*models.Notification, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) List(userID uint, isRead *bool, page, limit int) ([]*models.Notification, int64, error) {
	if m.listFn != nil {
		return m.listFn(userID, isRead, page, limit)
	}
	return nil, 0, nil
}

func (m *mockNotificationRepo) UnreadCount(userID uint) (int64, error) {
	if m.unreadCountFn != nil {
		return m.unreadCountFn(userID)
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkRead(id uint) error {
	if m.markReadFn != nil {
		return m.markReadFn(id)
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(userID uint) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(userID)
	}
	return nil
}

func (m *mockNotificationRepo) Delete(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockNotificationRepo) Count() (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

type mockUserRepo struct {
	createFn         func(user *models.User) error
	getByIDFn        func(id uint) (*models.User, error)
	getByEmailFn     func(email string) (*models.User, error)
	updateFn         func(user *models.User) error
	updatePasswordFn func(id uint, hashed string) error
	countFn          func() (int64, error)
}

func (m *mockUserRepo) Create(user *models.User) error {
	if m.createFn != nil {
		return m.createFn(user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(id uint) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(user *models.User) error {
	if m.updateFn != nil {
		return m.updateFn(user)
	}
	return nil
}

func (m *mockUserRepo) UpdatePassword(id uint, hashed string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(id, hashed)
	}
	return nil
}

func (m *mockUserRepo) Count() (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}

type mockDocumentRepo struct {
	createFn      func(document *models.Document) error
	getByIDFn     func(id uint) (*models.Document, error)
	listFn        func(filter repository.DocumentFilter, page, limit int) ([]*models.Document, int64, error)
	markReadFn    func(id uint) error
	statsByTypeFn func() ([]response.DocumentTypeCount, error)
	countFn       func() (int64, error)
}

func (m *mockDocumentRepo) Create(document *models.Document) error {
	if m.createFn != nil {
		return m.createFn(document)
	}
	return nil
}

func (m *mockDocumentRepo) GetByID(id uint) (*models.Document, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) List(filter repository.DocumentFilter, page, limit int) ([]*models.Document, int64, error) {
	if m.listFn != nil {
		return m.listFn(filter, page, limit)
	}
	return nil, 0, nil
}

func (m *mockDocumentRepo) MarkRead(id uint) error {
	if m.markReadFn != nil {
		return m.markReadFn(id)
	}
	return nil
}

func (m *mockDocumentRepo) StatsByType() ([]response.DocumentTypeCount, error) {
	if m.statsByTypeFn != nil {
		return m.statsByTypeFn()
	}
	return nil, nil
}

func (m *mockDocumentRepo) Count() (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return 0, nil
}
