package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resi-be-svc/internal/middleware"
	"resi-be-svc/internal/models"
	"resi-be-svc/internal/models/response"
	"resi-be-svc/internal/repository"
	"resi-be-svc/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResidentService is a function-field service.ResidentService
type mockResidentService struct {
	listFn         func(filter repository.ResidentFilter, page, limit int) ([]*models.Resident, int64, error)
	getFn          func(id uint) (*models.Resident, error)
	updateStatusFn func(id uint, isActive bool) (*models.Resident, error)
	createAdminFn  func(email, password, name string) (*models.User, error)
}

func (m *mockResidentService) List(filter repository.ResidentFilter, page, limit int) ([]*models.Resident, int64, error) {
	return m.listFn(filter, page, limit)
}

func (m *mockResidentService) Get(id uint) (*models.Resident, error) {
	return m.getFn(id)
}

func (m *mockResidentService) UpdateStatus(id uint, isActive bool) (*models.Resident, error) {
	return m.updateStatusFn(id, isActive)
}

func (m *mockResidentService) CreateAdmin(email, password, name string) (*models.User, error) {
	return m.createAdminFn(email, password, name)
}

// mockNotificationService is a function-field service.NotificationService
type mockNotificationService struct {
	listFn        func(userID uint, isRead *bool, page, limit int) ([]*models.Notification, int64, error)
	unreadCountFn func(userID uint) (int64, error)
	markReadFn    func(notificationID, userID uint) error
	markAllReadFn func(userID uint) error
	deleteFn      func(notificationID, userID uint) error
	sendMassFn    func(title, message, notificationType string, residentIDs []uint) (*service.MassNotificationResponse, error)
}

func (m *mockNotificationService) List(userID uint, isRead *bool, page, limit int) ([]*models.Notification, int64, error) {
	return m.listFn(userID, isRead, page, limit)
}

func (m *mockNotificationService) UnreadCount(userID uint) (int64, error) {
	return m.unreadCountFn(userID)
}

func (m *mockNotificationService) MarkRead(notificationID, userID uint) error {
	return m.markReadFn(notificationID, userID)
}

func (m *mockNotificationService) MarkAllRead(userID uint) error {
	return m.markAllReadFn(userID)
}

func (m *mockNotificationService) Delete(notificationID, userID uint) error {
	return m.deleteFn(notificationID, userID)
}

func (m *mockNotificationService) SendMass(title, message, notificationType string, residentIDs []uint) (*service.MassNotificationResponse, error) {
	return m.sendMassFn(title, message, notificationType, residentIDs)
}

// mockDashboardService is a function-field service.DashboardService
type mockDashboardService struct {
	adminStatsFn func() (*response.AdminStatsResponse, error)
}

func (m *mockDashboardService) AdminStats() (*response.AdminStatsResponse, error) {
	return m.adminStatsFn()
}

func adminRouter(paymentSvc service.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewAdminHandler(&mockResidentService{}, paymentSvc, &mockNotificationService{}, &mockDashboardService{}, testLogger())

	admin := router.Group("/api/v1/admin", identity(1, 0, models.RoleAdmin), middleware.AdminOnly())
	admin.POST("/create-payment", h.CreatePayment)
	admin.POST("/create-mass-payments", h.CreateMassPayments)

	return router
}

func TestCreatePayment_ZeroAmountAccepted(t *testing.T) {
	var gotAmount float64
	svc := &mockPaymentService{
		createPaymentFn: func(residentID uint, paymentType string, amount float64, dueDate time.Time, description string, issuerID uint) (*models.Payment, error) {
			gotAmount = amount
			return &models.Payment{ID: 7, ResidentID: residentID, Type: paymentType, Amount: amount, Status: models.PaymentStatusPending}, nil
		},
	}
	router := adminRouter(svc)

	body, _ := json.Marshal(gin.H{
		"residentId": 3,
		"type":       models.PaymentTypeWater,
		"amount":     0,
		"dueDate":    "2026-09-15",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/create-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Zero(t, gotAmount)
}

func TestCreatePayment_MissingAmountRejected(t *testing.T) {
	svc := &mockPaymentService{
		createPaymentFn: func(residentID uint, paymentType string, amount float64, dueDate time.Time, description string, issuerID uint) (*models.Payment, error) {
			t.Fatal("service must not be called when validation fails")
			return nil, nil
		},
	}
	router := adminRouter(svc)

	body, _ := json.Marshal(gin.H{
		"residentId": 3,
		"type":       models.PaymentTypeWater,
		"dueDate":    "2026-09-15",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/create-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "errors")
}

func TestCreatePayment_NegativeAmountRejected(t *testing.T) {
	svc := &mockPaymentService{
		createPaymentFn: func(residentID uint, paymentType string, amount float64, dueDate time.Time, description string, issuerID uint) (*models.Payment, error) {
			t.Fatal("service must not be called when validation fails")
			return nil, nil
		},
	}
	router := adminRouter(svc)

	body, _ := json.Marshal(gin.H{
		"residentId": 3,
		"type":       models.PaymentTypeWater,
		"amount":     -10.5,
		"dueDate":    "2026-09-15",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/create-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMassPayments_ZeroAmountAccepted(t *testing.T) {
	svc := &mockPaymentService{
		createMassPaymentsFn: func(paymentType string, amount float64, dueDate time.Time, description string, issuerID uint) (*service.MassPaymentResponse, error) {
			assert.Zero(t, amount)
			return &service.MassPaymentResponse{PaymentsCount: 2}, nil
		},
	}
	router := adminRouter(svc)

	body, _ := json.Marshal(gin.H{
		"type":    models.PaymentTypeMaintenance,
		"amount":  0,
		"dueDate": "2026-09-15",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/create-mass-payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
