package service

import (
	"testing"

	"resi-be-svc/internal/config"
	"resi-be-svc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", ExpiryHours: 24}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestRegister_CreatesResidentAccount(t *testing.T) {
	var createdUser *models.User
	var createdResident *models.Resident
	userRepo := &mockUserRepo{
		createFn: func(user *models.User) error {
			user.ID = 1
			createdUser = user
			return nil
		},
	}
	residentRepo := &mockResidentRepo{
		createFn: func(resident *models.Resident) error {
			resident.ID = 5
			createdResident = resident
			return nil
		},
	}

	svc := NewAuthService(userRepo, residentRepo, testJWTConfig(), testLogger())

	response, err := svc.Register("juan@example.com", "secret123", "Juan Perez", "A-101", "+52 555 123 4567")
	require.NoError(t, err)

	assert.Equal(t, models.RoleResident, createdUser.Role)
	assert.NotEqual(t, "secret123", createdUser.Password)
	assert.Equal(t, uint(1), createdResident.UserID)
	assert.True(t, createdResident.IsActive)
	assert.NotEmpty(t, response.Token)

	claims, err := svc.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, models.RoleResident, claims.Role)
	assert.Equal(t, uint(5), claims.ResidentID)
}

func TestRegister_EmailTaken(t *testing.T) {
	userRepo := &mockUserRepo{
		getByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email}, nil
		},
	}

	svc := NewAuthService(userRepo, &mockResidentRepo{}, testJWTConfig(), testLogger())

	_, err := svc.Register("juan@example.com", "secret123", "Juan", "A-101", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_HouseNumberTaken(t *testing.T) {
	residentRepo := &mockResidentRepo{
		getByHouseNumberFn: func(houseNumber string) (*models.Resident, error) {
			return &models.Resident{ID: 1, HouseNumber: houseNumber}, nil
		},
	}

	svc := NewAuthService(&mockUserRepo{}, residentRepo, testJWTConfig(), testLogger())

	_, err := svc.Register("new@example.com", "secret123", "Ana", "A-101", "")
	assert.ErrorIs(t, err, ErrHouseNumberTaken)
}

func TestLogin_Success(t *testing.T) {
	hashed := hashPassword(t, "secret123")
	userRepo := &mockUserRepo{
		getByEmailFn: func(email string) (*models.User, error) {
			return &models.User{
				ID:       1,
				Email:    email,
				Password: hashed,
				Role:     models.RoleResident,
				Resident: &models.Resident{ID: 5},
			}, nil
		},
	}

	svc := NewAuthService(userRepo, &mockResidentRepo{}, testJWTConfig(), testLogger())

	response, err := svc.Login("juan@example.com", "secret123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.ResidentID)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := &mockUserRepo{
		getByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Password: hashPassword(t, "secret123")}, nil
		},
	}

	svc := NewAuthService(userRepo, &mockResidentRepo{}, testJWTConfig(), testLogger())

	_, err := svc.Login("juan@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockResidentRepo{}, testJWTConfig(), testLogger())

	_, err := svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockResidentRepo{}, testJWTConfig(), testLogger())

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewAuthService(&mockUserRepo{createFn: func(user *models.User) error {
		user.ID = 1
		return nil
	}}, &mockResidentRepo{}, config.JWTConfig{Secret: "other-secret", ExpiryHours: 1}, testLogger())

	response, err := issuer.Register("a@example.com", "secret123", "A", "B-202", "")
	require.NoError(t, err)

	verifier := NewAuthService(&mockUserRepo{}, &mockResidentRepo{}, testJWTConfig(), testLogger())
	_, err = verifier.ValidateToken(response.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
