package service

import (
	"errors"
	"fmt"

	"resi-be-svc/internal/models"
	"resi-be-svc/internal/repository"
	"resi-be-svc/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ResidentService defines the interface for resident registry operations
type ResidentService interface {
	List(filter repository.ResidentFilter, page, limit int) ([]*models.Resident, int64, error)
	Get(id uint) (*models.Resident, error)
	UpdateStatus(id uint, isActive bool) (*models.Resident, error)
	CreateAdmin(email, password, name string) (*models.User, error)
}

// residentService implements ResidentService
type residentService struct {
	residentRepo repository.ResidentRepository
	userRepo     repository.UserRepository
	logger       *logger.Logger
}

// NewResidentService creates a new instance of ResidentService
func NewResidentService(residentRepo repository.ResidentRepository, userRepo repository.UserRepository, logger *logger.Logger) ResidentService {
	return &residentService{
		residentRepo: residentRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// List retrieves residents ordered by house number with pagination
func (s *residentService) List(filter repository.ResidentFilter, page, limit int) ([]*models.Resident, int64, error) {
	return s.residentRepo.List(filter, page, limit)
}

// Get retrieves one resident with its account
func (s *residentService) Get(id uint) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByIDWithUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return resident, nil
}

// UpdateStatus toggles a resident between active and inactive. Deactivation
// blocks new charges but leaves existing payments untouched.
func (s *residentService) UpdateStatus(id uint, isActive bool) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByIDWithUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}

	if err := s.residentRepo.UpdateStatus(id, isActive); err != nil {
		return nil, err
	}
	resident.IsActive = isActive

	s.logger.WithFields(map[string]interface{}{
		"resident_id": id,
		"is_active":   isActive,
	}).Info("Resident status updated")

	return resident, nil
}

// CreateAdmin registers an ADMIN account with no resident profile
func (s *residentService) CreateAdmin(email, password, name string) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Name:     name,
		Role:     models.RoleAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("Admin account created")
	return user, nil
}
