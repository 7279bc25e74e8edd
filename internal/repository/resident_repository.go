package repository

import (
	"resi-be-svc/internal/models"

	"gorm.io/gorm"
)

// ResidentFilter narrows resident list queries
type ResidentFilter struct {
	IsActive *bool
	Search   string
}

// ResidentRepository defines the interface for resident data operations
type ResidentRepository interface {
	Create(resident *models.Resident) error
	GetByID(id uint) (*models.Resident, error)
	GetByIDWithUser(id uint) (*models.Resident, error)
	GetByUserID(userID uint) (*models.Resident, error)
	GetByHouseNumber(houseNumber string) (*models.Resident, error)
	List(filter ResidentFilter, page, limit int) ([]*models.Resident, int64, error)
	ListActive() ([]*models.Resident, error)
	ListActiveByIDs(ids []uint) ([]*models.Resident, error)
	UpdateStatus(id uint, isActive bool) error
	UpdatePhone(id uint, phone string) error
	Count() (int64, error)
	CountActive() (int64, error)
}

// residentRepository implements ResidentRepository
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new instance of ResidentRepository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// Create inserts a new resident
func (r *residentRepository) Create(resident *models.Resident) error {
	return r.db.Create(resident).Error
}

// GetByID retrieves a resident by ID
func (r *residentRepository) GetByID(id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetByIDWithUser retrieves a resident by ID with its owning account
func (r *residentRepository) GetByIDWithUser(id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Preload("User").Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetByUserID retrieves the resident owned by the given account
func (r *residentRepository) GetByUserID(userID uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("user_id = ?", userID).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetByHouseNumber retrieves a resident by its dwelling identifier
func (r *residentRepository) GetByHouseNumber(houseNumber string) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("house_number = ?", houseNumber).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// List retrieves residents with pagination and optional active/search filters
func (r *residentRepository) List(filter ResidentFilter, page, limit int) ([]*models.Resident, int64, error) {
	var residents []*models.Resident

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.Model(&models.Resident{}).
		Joins("JOIN users ON users.id = residents.user_id")

	if filter.IsActive != nil {
		query = query.Where("residents.is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"residents.house_number ILIKE ? OR users.name ILIKE ? OR users.email ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("residents.house_number ASC").
		Limit(limit).
		Offset(offset).
		Find(&residents).Error
	if err != nil {
		return nil, 0, err
	}

	return residents, total, nil
}

// ListActive retrieves all active residents with their accounts
func (r *residentRepository) ListActive() ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Preload("User").Where("is_active = ?", true).Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// ListActiveByIDs retrieves the active residents among the given IDs
func (r *residentRepository) ListActiveByIDs(ids []uint) ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Preload("User").
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// UpdateStatus toggles the resident active flag
func (r *residentRepository) UpdateStatus(id uint, isActive bool) error {
	return r.db.Model(&models.Resident{}).Where("id = ?", id).Update("is_active", isActive).Error
}

// UpdatePhone updates the resident contact phone
func (r *residentRepository) UpdatePhone(id uint, phone string) error {
	return r.db.Model(&models.Resident{}).Where("id = ?", id).Update("phone", phone).Error
}

// Count returns the total number of residents
func (r *residentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Resident{}).Count(&count).Error
	return count, err
}

// CountActive returns the number of active residents
func (r *residentRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Resident{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
