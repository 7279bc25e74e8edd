package models

import (
	"time"
)

// Document types
const (
	DocumentTypeInvoice   = "INVOICE"
	DocumentTypeReceipt   = "RECEIPT"
	DocumentTypeNotice    = "NOTICE"
	DocumentTypeStatement = "STATEMENT"
)

// Document represents the documents table: a generated artifact linked to a
// resident. Immutable after creation except for the read flag.
type Document struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ResidentID uint      `json:"resident_id" gorm:"column:resident_id;not null;index"`
	UserID     uint      `json:"user_id" gorm:"column:user_id;not null"`
	Type       string    `json:"type" gorm:"column:type;not null"`
	Title      string    `json:"title" gorm:"column:title;not null"`
	Content    string    `json:"content" gorm:"column:content"`
	FilePath   *string   `json:"file_path" gorm:"column:file_path"`
	IsRead     bool      `json:"is_read" gorm:"column:is_read;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Resident *Resident `json:"resident,omitempty" gorm:"foreignKey:ResidentID"`
}

// TableName sets the insert table name for Document
func (Document) TableName() string {
	return "documents"
}
