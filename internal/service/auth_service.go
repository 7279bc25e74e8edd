package service

import (
	"errors"
	"fmt"
	"time"

	"resi-be-svc/internal/config"
	"resi-be-svc/internal/models"
	"resi-be-svc/internal/repository"
	"resi-be-svc/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthResponse carries the signed token and the authenticated account
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Claims is the JWT payload issued at login
type Claims struct {
	UserID     uint   `json:"user_id"`
	Role       string `json:"role"`
	ResidentID uint   `json:"resident_id,omitempty"`
	jwt.RegisteredClaims
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(email, password, name, houseNumber, phone string) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// authService implements AuthService
type authService struct {
	userRepo     repository.UserRepository
	residentRepo repository.ResidentRepository
	config       config.JWTConfig
	logger       *logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	residentRepo repository.ResidentRepository,
	cfg config.JWTConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		residentRepo: residentRepo,
		config:       cfg,
		logger:       logger,
	}
}

// Register creates a RESIDENT account together with its resident profile.
// Email and house number must both be unclaimed.
func (s *authService) Register(email, password, name, houseNumber, phone string) (*AuthResponse, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.residentRepo.GetByHouseNumber(houseNumber); err == nil {
		return nil, ErrHouseNumberTaken
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
		Role:     models.RoleResident,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resident := &models.Resident{
		HouseNumber: houseNumber,
		Phone:       phone,
		IsActive:    true,
		UserID:      user.ID,
	}
	if err := s.residentRepo.Create(resident); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to create resident profile")
		return nil, err
	}
	user.Resident = resident

	token, err := s.issueToken(user, resident.ID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":      user.ID,
		"house_number": houseNumber,
	}).Info("Resident registered")

	return &AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token. A missing account and a
// wrong password are indistinguishable to the caller.
func (s *authService) Login(email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	var residentID uint
	if user.Resident != nil {
		residentID = user.Resident.ID
	}

	token, err := s.issueToken(user, residentID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// ValidateToken parses and verifies a signed token
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) issueToken(user *models.User, residentID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:     user.ID,
		Role:       user.Role,
		ResidentID: residentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.ExpiryHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
