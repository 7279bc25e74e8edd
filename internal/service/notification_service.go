package service

import (
	"errors"

	"resi-be-svc/internal/models"
	"resi-be-svc/internal/repository"
	"resi-be-svc/pkg/logger"

	"gorm.io/gorm"
)

// MassNotificationResponse reports the outcome of a broadcast
type MassNotificationResponse struct {
	TotalUsers int      `json:"total_users"`
	SentCount  int      `json:"sentCount"`
	Errors     []string `json:"errors,omitempty"`
}

// NotificationService defines the interface for notification outbox operations
type NotificationService interface {
	List(userID uint, isRead *bool, page, limit int) ([]*models.Notification, int64, error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(notificationID, userID uint) error
	MarkAllRead(userID uint) error
	Delete(notificationID, userID uint) error
	SendMass(title, message, notificationType string, residentIDs []uint) (*MassNotificationResponse, error)
}

// notificationService implements NotificationService
type notificationService struct {
	notificationRepo repository.NotificationRepository
	residentRepo     repository.ResidentRepository
	logger           *logger.Logger
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	residentRepo repository.ResidentRepository,
	logger *logger.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		residentRepo:     residentRepo,
		logger:           logger,
	}
}

// List retrieves one account's notifications newest first with pagination
func (s *notificationService) List(userID uint, isRead *bool, page, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.List(userID, isRead, page, limit)
}

// UnreadCount returns the number of unread notifications for one account
func (s *notificationService) UnreadCount(userID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(userID)
}

// MarkRead marks one notification read on behalf of its owner
func (s *notificationService) MarkRead(notificationID, userID uint) error {
	notification, err := s.lookupOwned(notificationID, userID)
	if err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(notification.ID)
}

// MarkAllRead marks every notification for one account read
func (s *notificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

// Delete removes one notification on behalf of its owner
func (s *notificationService) Delete(notificationID, userID uint) error {
	notification, err := s.lookupOwned(notificationID, userID)
	if err != nil {
		return err
	}
	return s.notificationRepo.Delete(notification.ID)
}

func (s *notificationService) lookupOwned(notificationID, userID uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, ErrNotAllowed
	}
	return notification, nil
}

// SendMass broadcasts a notification to active residents as independent
// writes. An empty residentIDs list targets every active resident.
func (s *notificationService) SendMass(title, message, notificationType string, residentIDs []uint) (*MassNotificationResponse, error) {
	var residents []*models.Resident
	var err error
	if len(residentIDs) > 0 {
		residents, err = s.residentRepo.ListActiveByIDs(residentIDs)
	} else {
		residents, err = s.residentRepo.ListActive()
	}
	if err != nil {
		return nil, err
	}

	if len(residents) == 0 {
		return nil, ErrNoActiveResidents
	}

	if notificationType == "" {
		notificationType = models.NotificationTypeGeneral
	}

	result := &MassNotificationResponse{
		TotalUsers: len(residents),
	}

	for _, resident := range residents {
		notification := &models.Notification{
			UserID:  resident.UserID,
			Title:   title,
			Message: message,
			Type:    notificationType,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			s.logger.WithError(err).WithField("user_id", resident.UserID).Error("Failed to create broadcast notification")
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.SentCount++
	}

	s.logger.WithFields(map[string]interface{}{
		"total_users": result.TotalUsers,
		"sent_count":  result.SentCount,
	}).Info("Mass notification sent")

	return result, nil
}
