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

// UserService defines the interface for account operations
type UserService interface {
	Profile(userID uint) (*models.User, error)
	UpdateProfile(userID uint, name, phone string) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

// userService implements UserService
type userService struct {
	userRepo     repository.UserRepository
	residentRepo repository.ResidentRepository
	logger       *logger.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, residentRepo repository.ResidentRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepo:     userRepo,
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// Profile retrieves the account with its resident profile
func (s *userService) Profile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the account name and, for residents, the phone number
func (s *userService) UpdateProfile(userID uint, name, phone string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if name != "" {
		user.Name = name
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	if phone != "" && user.Resident != nil {
		if err := s.residentRepo.UpdatePhone(user.Resident.ID, phone); err != nil {
			return nil, err
		}
		user.Resident.Phone = phone
	}

	return user, nil
}

// ChangePassword verifies the current password before storing the new hash
func (s *userService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(userID, string(hashed)); err != nil {
		return err
	}

	s.logger.WithField("user_id", userID).Info("Password changed")
	return nil
}
