package repository

import (
	"resi-be-svc/internal/models"

	"gorm.io/gorm"
)

// SweepLogRepository defines the interface for sweep run log operations
type SweepLogRepository interface {
	Create(log *models.SweepLog) error
}

// sweepLogRepository implements SweepLogRepository
type sweepLogRepository struct {
	db *gorm.DB
}

// NewSweepLogRepository creates a new instance of SweepLogRepository
func NewSweepLogRepository(db *gorm.DB) SweepLogRepository {
	return &sweepLogRepository{
		db: db,
	}
}

// Create inserts a new sweep log row
func (r *sweepLogRepository) Create(log *models.SweepLog) error {
	return r.db.Create(log).Error
}
