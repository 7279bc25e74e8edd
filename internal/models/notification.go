package models

import (
	"time"
)

// Notification types
const (
	NotificationTypePaymentDue      = "PAYMENT_DUE"
	NotificationTypePaymentReceived = "PAYMENT_RECEIVED"
	NotificationTypeDocumentSent    = "DOCUMENT_SENT"
	NotificationTypeGeneral         = "GENERAL"
)

// Notification represents the notifications table
type Notification struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"column:user_id;not null;index"`
	Title     string    `json:"title" gorm:"column:title;not null"`
	Message   string    `json:"message" gorm:"column:message;not null"`
	Type      string    `json:"type" gorm:"column:type;default:GENERAL"`
	IsRead    bool      `json:"is_read" gorm:"column:is_read;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the insert table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
