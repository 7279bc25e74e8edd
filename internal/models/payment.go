package models

import (
	"time"
)

// Payment types
const (
	PaymentTypeMaintenance = "MAINTENANCE"
	PaymentTypeWater       = "WATER"
	PaymentTypeGate        = "GATE"
)

// Payment statuses. A payment moves from PENDING to PAID or OVERDUE, and
// from OVERDUE to PAID; PAID and CANCELLED are terminal.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusPaid      = "PAID"
	PaymentStatusOverdue   = "OVERDUE"
	PaymentStatusCancelled = "CANCELLED"
)

// Payment represents the payments table: one billable obligation owed by a
// resident. PaidDate is set if and only if Status is PAID.
type Payment struct {
	ID                    uint       `json:"id" gorm:"primarykey"`
	ResidentID            uint       `json:"resident_id" gorm:"column:resident_id;not null;index"`
	UserID                uint       `json:"user_id" gorm:"column:user_id;not null"`
	Type                  string     `json:"type" gorm:"column:type;not null"`
	Amount                float64    `json:"amount" gorm:"column:amount;not null"`
	Status                string     `json:"status" gorm:"column:status;default:PENDING;index"`
	DueDate               time.Time  `json:"due_date" gorm:"column:due_date;not null"`
	PaidDate              *time.Time `json:"paid_date" gorm:"column:paid_date"`
	Description           string     `json:"description" gorm:"column:description"`
	StripePaymentIntentID *string    `json:"stripe_payment_intent_id" gorm:"column:stripe_payment_intent_id"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	Resident *Resident `json:"resident,omitempty" gorm:"foreignKey:ResidentID"`
}

// TableName sets the insert table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// IsPayable reports whether the payment can still be settled
func (p *Payment) IsPayable() bool {
	return p.Status == PaymentStatusPending || p.Status == PaymentStatusOverdue
}
