package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bloodlink-backend/internal/domain"
)

func user(role domain.Role, status domain.UserStatus) *domain.User {
	return &domain.User{ID: 1, Email: "user@test.com", Role: role, Status: status}
}

func TestCanCreateRequest(t *testing.T) {
	assert.False(t, domain.CanCreateRequest(user(domain.RoleDonor, domain.UserStatusActive)))
	assert.True(t, domain.CanCreateRequest(user(domain.RoleVolunteer, domain.UserStatusActive)))
	assert.True(t, domain.CanCreateRequest(user(domain.RoleAdmin, domain.UserStatusActive)))
	assert.False(t, domain.CanCreateRequest(user(domain.RoleAdmin, domain.UserStatusBlocked)))
}

func TestCanVolunteer(t *testing.T) {
	donor := user(domain.RoleDonor, domain.UserStatusActive)
	req := &domain.DonationRequest{
		RequesterEmail: "requester@test.com",
		Status:         domain.RequestStatusPending,
	}

	assert.True(t, domain.CanVolunteer(donor, req))

	t.Run("OwnRequest", func(t *testing.T) {
		own := &domain.DonationRequest{RequesterEmail: donor.Email, Status: domain.RequestStatusPending}
		assert.False(t, domain.CanVolunteer(donor, own))
	})

	t.Run("AlreadyClaimed", func(t *testing.T) {
		email := "someone@test.com"
		claimed := &domain.DonationRequest{
			RequesterEmail: "requester@test.com",
			Status:         domain.RequestStatusInProgress,
			DonorEmail:     &email,
		}
		assert.False(t, domain.CanVolunteer(donor, claimed))
	})

	t.Run("Blocked", func(t *testing.T) {
		assert.False(t, domain.CanVolunteer(user(domain.RoleDonor, domain.UserStatusBlocked), req))
	})
}

func TestCanManageUsers(t *testing.T) {
	admin := user(domain.RoleAdmin, domain.UserStatusActive)
	assert.True(t, domain.CanManageUsers(admin, 2))
	// Never against themselves.
	assert.False(t, domain.CanManageUsers(admin, admin.ID))
	assert.False(t, domain.CanManageUsers(user(domain.RoleVolunteer, domain.UserStatusActive), 2))
	assert.False(t, domain.CanManageUsers(user(domain.RoleAdmin, domain.UserStatusBlocked), 2))
}

func TestCanPublishContent(t *testing.T) {
	assert.True(t, domain.CanPublishContent(user(domain.RoleAdmin, domain.UserStatusActive)))
	assert.False(t, domain.CanPublishContent(user(domain.RoleVolunteer, domain.UserStatusActive)))
	assert.False(t, domain.CanPublishContent(user(domain.RoleDonor, domain.UserStatusActive)))
}

func TestCanTriageContent(t *testing.T) {
	assert.True(t, domain.CanTriageContent(user(domain.RoleAdmin, domain.UserStatusActive)))
	assert.True(t, domain.CanTriageContent(user(domain.RoleVolunteer, domain.UserStatusActive)))
	assert.False(t, domain.CanTriageContent(user(domain.RoleDonor, domain.UserStatusActive)))
}

func TestCanDeleteRequest(t *testing.T) {
	req := &domain.DonationRequest{RequesterID: 1, Status: domain.RequestStatusInProgress}

	t.Run("AdminAlways", func(t *testing.T) {
		admin := user(domain.RoleAdmin, domain.UserStatusActive)
		admin.ID = 9
		assert.True(t, domain.CanDeleteRequest(admin, req))
	})

	t.Run("RequesterNotMidDonation", func(t *testing.T) {
		requester := user(domain.RoleVolunteer, domain.UserStatusActive)
		assert.False(t, domain.CanDeleteRequest(requester, req))

		pending := &domain.DonationRequest{RequesterID: 1, Status: domain.RequestStatusPending}
		assert.True(t, domain.CanDeleteRequest(requester, pending))
	})

	t.Run("StrangerNever", func(t *testing.T) {
		other := user(domain.RoleVolunteer, domain.UserStatusActive)
		other.ID = 5
		pending := &domain.DonationRequest{RequesterID: 1, Status: domain.RequestStatusPending}
		assert.False(t, domain.CanDeleteRequest(other, pending))
	})
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, domain.RequestStatusPending.Terminal())
	assert.False(t, domain.RequestStatusInProgress.Terminal())
	assert.True(t, domain.RequestStatusDone.Terminal())
	assert.True(t, domain.RequestStatusCanceled.Terminal())
}
