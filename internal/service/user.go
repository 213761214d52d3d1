package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository"
)

var ErrSelfTarget = errors.New("cannot change own role or status")

type userService struct {
	userRepo repository.UserRepository
	emailSvc EmailService
}

func NewUserService(userRepo repository.UserRepository, emailSvc EmailService) UserService {
	return &userService{userRepo: userRepo, emailSvc: emailSvc}
}

// principal loads a fresh user record for authorization. Any failure is a
// closed gate: a lookup error never degrades to a default role.
func principal(ctx context.Context, repo repository.UserRepository, id int32) (*domain.User, error) {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("failed to load principal: %w", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, input ProfileInput) (*domain.User, error) {
	user, err := principal(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountBlocked
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.PhoneNumber = input.Phone
	}
	if input.BloodGroup != "" {
		bg := domain.BloodGroup(input.BloodGroup)
		if !bg.Valid() {
			return nil, fmt.Errorf("%w: blood group %q", ErrInvalidInput, input.BloodGroup)
		}
		user.BloodGroup = bg
	}
	if input.District != "" {
		user.District = input.District
	}
	if input.Upazila != "" {
		user.Upazila = input.Upazila
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	if input.LastDonationDate != "" {
		if err := s.userRepo.UpdateLastDonationDate(ctx, userID, input.LastDonationDate); err != nil {
			return nil, err
		}
		user.LastDonationDate = &input.LastDonationDate
	}

	return user, nil
}

// ResolveRole answers the public role lookup. An unknown email yields the
// interim donor/active default so a transient miss never locks the caller
// out of the read paths; writes always re-resolve through principal().
func (s *userService) ResolveRole(ctx context.Context, email string) (domain.Role, domain.UserStatus, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RoleDonor, domain.UserStatusActive, nil
		}
		logger.Warn("Role lookup failed, returning interim default", "email", email, "error", err)
		return domain.RoleDonor, domain.UserStatusActive, nil
	}
	return user.Role, user.Status, nil
}

func (s *userService) SearchDonors(ctx context.Context, bloodGroup, district, upazila string, page, pageSize int32) ([]domain.User, int32, error) {
	if bloodGroup != "" && !domain.BloodGroup(bloodGroup).Valid() {
		return nil, 0, fmt.Errorf("%w: blood group %q", ErrInvalidInput, bloodGroup)
	}
	return s.userRepo.SearchDonors(ctx, bloodGroup, district, upazila, page, pageSize)
}

func (s *userService) ListUsers(ctx context.Context, adminID int32, page, pageSize int32) ([]domain.User, int32, error) {
	admin, err := principal(ctx, s.userRepo, adminID)
	if err != nil {
		return nil, 0, err
	}
	if !admin.IsActive() || admin.Role != domain.RoleAdmin {
		return nil, 0, ErrForbidden
	}
	return s.userRepo.List(ctx, page, pageSize)
}

func (s *userService) SetRoleStatus(ctx context.Context, adminID, targetID int32, role domain.Role, status domain.UserStatus) error {
	admin, err := principal(ctx, s.userRepo, adminID)
	if err != nil {
		return err
	}
	if !admin.IsActive() {
		return ErrAccountBlocked
	}
	// Self-targeting is rejected before the admin check so the error is
	// stable regardless of what the caller's own role currently is.
	if adminID == targetID {
		return ErrSelfTarget
	}
	if !domain.CanManageUsers(admin, targetID) {
		return ErrForbidden
	}
	if !role.Valid() || !status.Valid() {
		return fmt.Errorf("%w: role %q or status %q", ErrInvalidInput, role, status)
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.userRepo.UpdateRoleStatus(ctx, targetID, role, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if target.Status != status && s.emailSvc != nil {
		_ = s.emailSvc.SendAccountStatusNotification(ctx, target.Email, target.Name, string(status))
	}

	logger.Info("Role/status updated", "admin", admin.Email, "target", target.Email, "role", role, "status", status)
	return nil
}
