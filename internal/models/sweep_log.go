package models

import (
	"time"
)

// Sweep run statuses
const (
	SweepStatusStart   = "START"
	SweepStatusSuccess = "SUCCESS"
	SweepStatusFailed  = "FAILED"
)

// SweepLog represents the sweep_logs table, one row per scheduled overdue
// sweep run transition.
type SweepLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	RunID     string    `json:"run_id" gorm:"column:run_id"`
	Message   string    `json:"message" gorm:"column:message"`
	Status    string    `json:"status" gorm:"column:status"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the insert table name for SweepLog
func (SweepLog) TableName() string {
	return "sweep_logs"
}
