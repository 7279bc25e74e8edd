package repository

import (
	"resi-be-svc/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	List(userID uint, isRead *bool, page, limit int) ([]*models.Notification, int64, error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) error
	Delete(id uint) error
	Count() (int64, error)
}

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create inserts a new notification
func (r *notificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByID retrieves a notification by ID
func (r *notificationRepository) GetByID(id uint) (*models.Notification, error) {
	var notification models.Notification

	err := r.db.Where("id = ?", id).First(&notification).Error
	if err != nil {
		return nil, err
	}

	return &notification, nil
}

// List retrieves one account's notifications newest first with pagination
func (r *notificationRepository) List(userID uint, isRead *bool, page, limit int) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// UnreadCount returns the number of unread notifications for one account
func (r *notificationRepository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead sets the notification read flag
func (r *notificationRepository) MarkRead(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

// MarkAllRead sets the read flag on every unread notification of an account
func (r *notificationRepository) MarkAllRead(userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// Delete removes a notification
func (r *notificationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Notification{}, id).Error
}

// Count returns the total number of notifications
func (r *notificationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Count(&count).Error
	return count, err
}
