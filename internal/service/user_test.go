package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/service"
)

func TestUserService_SetRoleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("SelfTargetRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewUserService(userRepo, nil)

		userRepo.On("GetByID", ctx, int32(1)).Return(activeUser(1, domain.RoleAdmin), nil)

		err := svc.SetRoleStatus(ctx, 1, 1, domain.RoleDonor, domain.UserStatusActive)
		assert.ErrorIs(t, err, service.ErrSelfTarget)
		userRepo.AssertNotCalled(t, "UpdateRoleStatus")
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewUserService(userRepo, nil)

		userRepo.On("GetByID", ctx, int32(2)).Return(activeUser(2, domain.RoleVolunteer), nil)

		err := svc.SetRoleStatus(ctx, 2, 3, domain.RoleVolunteer, domain.UserStatusActive)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("BlockingSendsNotification", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewUserService(userRepo, emailSvc)

		admin := activeUser(1, domain.RoleAdmin)
		target := &domain.User{ID: 3, Name: "Target", Email: "target@test.com", Role: domain.RoleDonor, Status: domain.UserStatusActive}

		userRepo.On("GetByID", ctx, int32(1)).Return(admin, nil)
		userRepo.On("GetByID", ctx, int32(3)).Return(target, nil)
		userRepo.On("UpdateRoleStatus", ctx, int32(3), domain.RoleDonor, domain.UserStatusBlocked).Return(nil)
		emailSvc.On("SendAccountStatusNotification", ctx, "target@test.com", "Target", "blocked").Return(nil)

		err := svc.SetRoleStatus(ctx, 1, 3, domain.RoleDonor, domain.UserStatusBlocked)
		assert.NoError(t, err)
		emailSvc.AssertExpectations(t)
	})

	t.Run("UnknownPrincipalForbidden", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewUserService(userRepo, nil)

		// The principal row vanished; the write path fails closed.
		userRepo.On("GetByID", ctx, int32(9)).Return(nil, sql.ErrNoRows)

		err := svc.SetRoleStatus(ctx, 9, 3, domain.RoleDonor, domain.UserStatusActive)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}

func TestUserService_ResolveRole(t *testing.T) {
	ctx := context.Background()

	t.Run("KnownUser", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewUserService(userRepo, nil)

		userRepo.On("GetByEmail", ctx, "admin@test.com").
			Return(&domain.User{Email: "admin@test.com", Role: domain.RoleAdmin, Status: domain.UserStatusActive}, nil)

		role, status, err := svc.ResolveRole(ctx, "admin@test.com")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, role)
		assert.Equal(t, domain.UserStatusActive, status)
	})

	t.Run("UnknownEmailGetsInterimDefault", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewUserService(userRepo, nil)

		userRepo.On("GetByEmail", ctx, "nobody@test.com").Return(nil, sql.ErrNoRows)

		role, status, err := svc.ResolveRole(ctx, "nobody@test.com")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleDonor, role)
		assert.Equal(t, domain.UserStatusActive, status)
	})
}

func TestUserService_SearchDonors(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := service.NewUserService(userRepo, nil)

	t.Run("InvalidBloodGroup", func(t *testing.T) {
		_, _, err := svc.SearchDonors(ctx, "Z+", "", "", 1, 20)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("EmptyFiltersAllowed", func(t *testing.T) {
		userRepo.On("SearchDonors", ctx, "", "Dhaka", "", int32(1), int32(20)).
			Return([]domain.User{{ID: 1}}, int32(1), nil)

		donors, count, err := svc.SearchDonors(ctx, "", "Dhaka", "", 1, 20)
		assert.NoError(t, err)
		assert.Len(t, donors, 1)
		assert.Equal(t, int32(1), count)
	})
}
