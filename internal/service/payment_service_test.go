package service

import (
	"errors"
	"testing"
	"time"

	"resi-be-svc/internal/models"
	"resi-be-svc/internal/repository"
	"resi-be-svc/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("error", "text")
}

func activeResident(id, userID uint) *models.Resident {
	return &models.Resident{
		ID:          id,
		HouseNumber: "A-101",
		IsActive:    true,
		UserID:      userID,
		User:        &models.User{ID: userID, Name: "Juan Perez", Email: "juan@example.com"},
	}
}

func TestCreatePayment_ResidentNotFound(t *testing.T) {
	svc := NewPaymentService(&mockPaymentRepo{}, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	_, err := svc.CreatePayment(99, models.PaymentTypeWater, 800, time.Now(), "", 1)
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

func TestCreatePayment_InactiveResidentWritesNothing(t *testing.T) {
	resident := activeResident(1, 10)
	resident.IsActive = false

	created := 0
	paymentRepo := &mockPaymentRepo{
		createFn: func(payment *models.Payment) error {
			created++
			return nil
		},
	}
	residentRepo := &mockResidentRepo{
		getByIDWithUserFn: func(id uint) (*models.Resident, error) { return resident, nil },
	}

	svc := NewPaymentService(paymentRepo, residentRepo, &mockNotificationRepo{}, testLogger())

	_, err := svc.CreatePayment(1, models.PaymentTypeMaintenance, 500, time.Now(), "", 1)
	assert.ErrorIs(t, err, ErrResidentInactive)
	assert.Zero(t, created)
}

func TestCreatePayment_PendingWithNotification(t *testing.T) {
	dueDate := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	var createdPayment *models.Payment
	var createdNotification *models.Notification
	paymentRepo := &mockPaymentRepo{
		createFn: func(payment *models.Payment) error {
			payment.ID = 7
			createdPayment = payment
			return nil
		},
	}
	residentRepo := &mockResidentRepo{
		getByIDWithUserFn: func(id uint) (*models.Resident, error) { return activeResident(1, 10), nil },
	}
	notificationRepo := &mockNotificationRepo{
		createFn: func(notification *models.Notification) error {
			createdNotification = notification
			return nil
		},
	}

	svc := NewPaymentService(paymentRepo, residentRepo, notificationRepo, testLogger())

	payment, err := svc.CreatePayment(1, models.PaymentTypeWater, 800, dueDate, "", 2)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Nil(t, payment.PaidDate)
	assert.Equal(t, "Payment for water - September 2026", createdPayment.Description)
	assert.Equal(t, uint(2), createdPayment.UserID)

	require.NotNil(t, createdNotification)
	assert.Equal(t, uint(10), createdNotification.UserID)
	assert.Equal(t, models.NotificationTypePaymentDue, createdNotification.Type)
}

func TestCreatePayment_PastDueDateAllowed(t *testing.T) {
	residentRepo := &mockResidentRepo{
		getByIDWithUserFn: func(id uint) (*models.Resident, error) { return activeResident(1, 10), nil },
	}
	svc := NewPaymentService(&mockPaymentRepo{}, residentRepo, &mockNotificationRepo{}, testLogger())

	_, err := svc.CreatePayment(1, models.PaymentTypeGate, 100, time.Now().AddDate(0, -1, 0), "late charge", 2)
	assert.NoError(t, err)
}

func TestMarkPaidByAdmin_SetsPaidDate(t *testing.T) {
	var recordedPaidDate time.Time
	paymentRepo := &mockPaymentRepo{
		getByIDFn: func(id uint) (*models.Payment, error) {
			return &models.Payment{ID: id, ResidentID: 1, Type: models.PaymentTypeWater, Amount: 800, Status: models.PaymentStatusOverdue, Resident: activeResident(1, 10)}, nil
		},
		markPaidFn: func(id uint, paidDate time.Time, intentID *string) error {
			recordedPaidDate = paidDate
			assert.Nil(t, intentID)
			return nil
		},
	}

	svc := NewPaymentService(paymentRepo, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	payment, err := svc.MarkPaidByAdmin(3)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	require.NotNil(t, payment.PaidDate)
	assert.WithinDuration(t, time.Now(), recordedPaidDate, 2*time.Second)
}

func TestMarkPaidByAdmin_AlreadyPaidUnchanged(t *testing.T) {
	originalPaidDate := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	stored := &models.Payment{ID: 3, Status: models.PaymentStatusPaid, PaidDate: &originalPaidDate}

	markPaidCalls := 0
	paymentRepo := &mockPaymentRepo{
		getByIDFn: func(id uint) (*models.Payment, error) { return stored, nil },
		markPaidFn: func(id uint, paidDate time.Time, intentID *string) error {
			markPaidCalls++
			return nil
		},
	}

	svc := NewPaymentService(paymentRepo, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	_, err := svc.MarkPaidByAdmin(3)
	assert.ErrorIs(t, err, ErrInvalidPaymentState)
	assert.Zero(t, markPaidCalls)
	assert.Equal(t, originalPaidDate, *stored.PaidDate)
}

func TestMarkPaidByAdmin_NotFound(t *testing.T) {
	svc := NewPaymentService(&mockPaymentRepo{}, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	_, err := svc.MarkPaidByAdmin(99)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestMarkPaidByResident_CrossResidentReadsNotFound(t *testing.T) {
	paymentRepo := &mockPaymentRepo{
		getByIDForResidentFn: func(id, residentID uint) (*models.Payment, error) {
			// Scoped lookup misses rows owned by other residents
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewPaymentService(paymentRepo, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	_, err := svc.MarkPaidByResident(3, 2)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestMarkPaidByResident_PaidReadsNotFound(t *testing.T) {
	paymentRepo := &mockPaymentRepo{
		getByIDForResidentFn: func(id, residentID uint) (*models.Payment, error) {
			return &models.Payment{ID: id, ResidentID: residentID, Status: models.PaymentStatusPaid}, nil
		},
	}

	svc := NewPaymentService(paymentRepo, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	_, err := svc.MarkPaidByResident(3, 1)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestMarkPaidByResident_SettlesOwnPayment(t *testing.T) {
	paymentRepo := &mockPaymentRepo{
		getByIDForResidentFn: func(id, residentID uint) (*models.Payment, error) {
			return &models.Payment{ID: id, ResidentID: residentID, Type: models.PaymentTypeGate, Amount: 150, Status: models.PaymentStatusPending, Resident: activeResident(residentID, 10)}, nil
		},
	}

	svc := NewPaymentService(paymentRepo, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	payment, err := svc.MarkPaidByResident(3, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.NotNil(t, payment.PaidDate)
}

func TestCreateMassPayments_NoActiveResidents(t *testing.T) {
	created := 0
	paymentRepo := &mockPaymentRepo{
		createFn: func(payment *models.Payment) error {
			created++
			return nil
		},
	}
	residentRepo := &mockResidentRepo{
		listActiveFn: func() ([]*models.Resident, error) { return nil, nil },
	}

	svc := NewPaymentService(paymentRepo, residentRepo, &mockNotificationRepo{}, testLogger())

	_, err := svc.CreateMassPayments(models.PaymentTypeMaintenance, 500, time.Now(), "", 1)
	assert.ErrorIs(t, err, ErrNoActiveResidents)
	assert.Zero(t, created)
}

func TestCreateMassPayments_PartialFailureKeepsEarlierWrites(t *testing.T) {
	residents := []*models.Resident{
		activeResident(1, 10),
		activeResident(2, 11),
		activeResident(3, 12),
	}

	var createdFor []uint
	paymentRepo := &mockPaymentRepo{
		createFn: func(payment *models.Payment) error {
			if payment.ResidentID == 2 {
				return errors.New("insert failed")
			}
			createdFor = append(createdFor, payment.ResidentID)
			return nil
		},
	}
	residentRepo := &mockResidentRepo{
		listActiveFn: func() ([]*models.Resident, error) { return residents, nil },
	}

	svc := NewPaymentService(paymentRepo, residentRepo, &mockNotificationRepo{}, testLogger())

	result, err := svc.CreateMassPayments(models.PaymentTypeMaintenance, 500, time.Now(), "", 1)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalResidents)
	assert.Equal(t, 2, result.PaymentsCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, []uint{1, 3}, createdFor)
}

func TestUpdateOverduePayments_TransitionsAndNotifies(t *testing.T) {
	candidates := []*models.Payment{
		{ID: 1, ResidentID: 1, Type: models.PaymentTypeWater, Amount: 800, Status: models.PaymentStatusPending, Resident: activeResident(1, 10)},
		{ID: 2, ResidentID: 2, Type: models.PaymentTypeMaintenance, Amount: 500, Status: models.PaymentStatusPending, Resident: activeResident(2, 11)},
	}

	var marked []uint
	notified := 0
	paymentRepo := &mockPaymentRepo{
		listOverdueCandidatesFn: func(asOf time.Time) ([]*models.Payment, error) { return candidates, nil },
		markOverdueFn: func(id uint) error {
			marked = append(marked, id)
			return nil
		},
	}
	notificationRepo := &mockNotificationRepo{
		createFn: func(notification *models.Notification) error {
			notified++
			assert.Equal(t, models.NotificationTypePaymentDue, notification.Type)
			return nil
		},
	}

	svc := NewPaymentService(paymentRepo, &mockResidentRepo{}, notificationRepo, testLogger())

	count, err := svc.UpdateOverduePayments(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []uint{1, 2}, marked)
	assert.Equal(t, 2, notified)
}

func TestUpdateOverduePayments_SecondRunIsNoop(t *testing.T) {
	// After a sweep the candidates are OVERDUE and no longer match
	paymentRepo := &mockPaymentRepo{
		listOverdueCandidatesFn: func(asOf time.Time) ([]*models.Payment, error) { return nil, nil },
	}

	svc := NewPaymentService(paymentRepo, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	count, err := svc.UpdateOverduePayments(time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUpdateOverduePayments_FirstErrorSurfacedAfterBatch(t *testing.T) {
	candidates := []*models.Payment{
		{ID: 1, ResidentID: 1, Status: models.PaymentStatusPending, Resident: activeResident(1, 10)},
		{ID: 2, ResidentID: 2, Status: models.PaymentStatusPending, Resident: activeResident(2, 11)},
	}

	updateErr := errors.New("row locked")
	var marked []uint
	paymentRepo := &mockPaymentRepo{
		listOverdueCandidatesFn: func(asOf time.Time) ([]*models.Payment, error) { return candidates, nil },
		markOverdueFn: func(id uint) error {
			if id == 1 {
				return updateErr
			}
			marked = append(marked, id)
			return nil
		},
	}

	svc := NewPaymentService(paymentRepo, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	count, err := svc.UpdateOverduePayments(time.Now())
	assert.ErrorIs(t, err, updateErr)
	assert.Equal(t, 1, count)
	assert.Equal(t, []uint{2}, marked)
}

func TestReport_SummarizesAmounts(t *testing.T) {
	paymentRepo := &mockPaymentRepo{
		listAllFn: func(filter repository.PaymentFilter) ([]*models.Payment, error) {
			return []*models.Payment{
				{ID: 1, Amount: 800, Status: models.PaymentStatusPaid},
				{ID: 2, Amount: 500, Status: models.PaymentStatusPending},
				{ID: 3, Amount: 150, Status: models.PaymentStatusOverdue},
			}, nil
		},
	}

	svc := NewPaymentService(paymentRepo, &mockResidentRepo{}, &mockNotificationRepo{}, testLogger())

	payments, summary, err := svc.Report(repository.PaymentFilter{})
	require.NoError(t, err)
	assert.Len(t, payments, 3)
	assert.Equal(t, 3, summary.TotalPayments)
	assert.InDelta(t, 1450.0, summary.TotalAmount, 0.001)
	assert.InDelta(t, 800.0, summary.PaidAmount, 0.001)
	assert.InDelta(t, 650.0, summary.PendingAmount, 0.001)
}
