package service

import (
	"fmt"

	"resi-be-svc/internal/models/response"
	"resi-be-svc/internal/repository"
	"resi-be-svc/pkg/logger"
)

// DashboardService defines the interface for admin dashboard aggregates
type DashboardService interface {
	AdminStats() (*response.AdminStatsResponse, error)
}

// dashboardService implements DashboardService
type dashboardService struct {
	residentRepo     repository.ResidentRepository
	userRepo         repository.UserRepository
	paymentRepo      repository.PaymentRepository
	documentRepo     repository.DocumentRepository
	notificationRepo repository.NotificationRepository
	logger           *logger.Logger
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(
	residentRepo repository.ResidentRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	documentRepo repository.DocumentRepository,
	notificationRepo repository.NotificationRepository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		residentRepo:     residentRepo,
		userRepo:         userRepo,
		paymentRepo:      paymentRepo,
		documentRepo:     documentRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// AdminStats aggregates entity counts with payment and document breakdowns
func (s *dashboardService) AdminStats() (*response.AdminStatsResponse, error) {
	stats := &response.AdminStatsResponse{}

	var err error
	if stats.TotalResidents, err = s.residentRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count residents: %w", err)
	}
	if stats.ActiveResidents, err = s.residentRepo.CountActive(); err != nil {
		return nil, fmt.Errorf("failed to count active residents: %w", err)
	}
	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalPayments, err = s.paymentRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}
	if stats.TotalDocuments, err = s.documentRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	if stats.TotalNotifications, err = s.notificationRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	if stats.PaymentStats, err = s.paymentRepo.StatsByStatus(); err != nil {
		return nil, fmt.Errorf("failed to get payment stats: %w", err)
	}
	if stats.DocumentStats, err = s.documentRepo.StatsByType(); err != nil {
		return nil, fmt.Errorf("failed to get document stats: %w", err)
	}

	return stats, nil
}
