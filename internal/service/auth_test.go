package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
	"bloodlink-backend/internal/security"
	"bloodlink-backend/internal/service"
)

const testSecret = "test-secret-key-that-is-long-enough!"

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	tm := security.NewTokenManager(testSecret, 60, 10080)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tm, nil)

		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, access, refresh, err := svc.Register(ctx, service.RegisterInput{
			Name:       "New Donor",
			Email:      "donor@test.com",
			Password:   "secret123",
			BloodGroup: "O+",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleDonor, user.Role)
		assert.Equal(t, domain.UserStatusActive, user.Status)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		// Password is stored hashed, never verbatim.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tm, nil)

		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(repository.ErrDuplicate)

		_, _, _, err := svc.Register(ctx, service.RegisterInput{
			Name:       "Dup",
			Email:      "donor@test.com",
			Password:   "secret123",
			BloodGroup: "O+",
		})
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})

	t.Run("InvalidBloodGroup", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tm, nil)

		_, _, _, err := svc.Register(ctx, service.RegisterInput{
			Name:       "Bad",
			Email:      "bad@test.com",
			Password:   "secret123",
			BloodGroup: "Z-",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		userRepo.AssertNotCalled(t, "Create")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tm := security.NewTokenManager(testSecret, 60, 10080)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	user := &domain.User{
		ID:           1,
		Email:        "donor@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleDonor,
		Status:       domain.UserStatusActive,
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tm, nil)

		userRepo.On("GetByEmail", ctx, "donor@test.com").Return(user, nil)

		access, refresh, err := svc.Login(ctx, "donor@test.com", "correct-password")
		assert.NoError(t, err)

		claims, err := tm.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)

		refreshClaims, err := tm.ValidateToken(refresh)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, refreshClaims.Type)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tm, nil)

		userRepo.On("GetByEmail", ctx, "donor@test.com").Return(user, nil)

		_, _, err := svc.Login(ctx, "donor@test.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tm, nil)

		userRepo.On("GetByEmail", ctx, "nobody@test.com").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "nobody@test.com", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_ExchangeIdentityToken(t *testing.T) {
	ctx := context.Background()
	tm := security.NewTokenManager(testSecret, 60, 10080)

	t.Run("ProvisionsDonorOnFirstSight", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		verifier := new(MockIdentityVerifier)
		svc := service.NewAuthService(userRepo, tm, verifier)

		verifier.On("Verify", ctx, "firebase-token").Return(&security.Identity{
			Email: "fresh@test.com",
			Name:  "Fresh User",
		}, nil)
		userRepo.On("GetByEmail", ctx, "fresh@test.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, access, _, err := svc.ExchangeIdentityToken(ctx, "firebase-token")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleDonor, user.Role)
		assert.NotEmpty(t, access)
		userRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*domain.User"))
	})

	t.Run("ExistingUserKeepsRole", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		verifier := new(MockIdentityVerifier)
		svc := service.NewAuthService(userRepo, tm, verifier)

		verifier.On("Verify", ctx, "firebase-token").Return(&security.Identity{Email: "admin@test.com"}, nil)
		userRepo.On("GetByEmail", ctx, "admin@test.com").
			Return(&domain.User{ID: 1, Email: "admin@test.com", Role: domain.RoleAdmin, Status: domain.UserStatusActive}, nil)

		user, access, _, err := svc.ExchangeIdentityToken(ctx, "firebase-token")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)

		claims, err := tm.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("UnverifiedTokenRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		verifier := new(MockIdentityVerifier)
		svc := service.NewAuthService(userRepo, tm, verifier)

		verifier.On("Verify", ctx, "bad-token").Return(nil, security.ErrUnverifiedIdentity)

		_, _, _, err := svc.ExchangeIdentityToken(ctx, "bad-token")
		assert.ErrorIs(t, err, security.ErrUnverifiedIdentity)
		userRepo.AssertNotCalled(t, "Create")
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	tm := security.NewTokenManager(testSecret, 60, 10080)

	t.Run("PicksUpRoleChange", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, tm, nil)

		// User was promoted since the refresh token was minted.
		userRepo.On("GetByID", ctx, int32(1)).
			Return(&domain.User{ID: 1, Email: "user@test.com", Role: domain.RoleVolunteer, Status: domain.UserStatusActive}, nil)

		access, _, err := svc.Refresh(ctx, 1)
		assert.NoError(t, err)

		claims, err := tm.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleVolunteer, claims.Role)
	})
}
