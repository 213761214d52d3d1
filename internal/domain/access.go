package domain

// Authorization predicates. These are pure functions over already-loaded
// records: the service layer fetches the principal fresh from the store
// before calling them, so a stale or defaulted role can never authorize
// a write. The HTTP layer may mirror these checks for UX, but this is the
// enforcement boundary.

// CanCreateRequest reports whether the principal may open a new donation
// request. Donors receive blood through requests; they do not raise them.
func CanCreateRequest(principal *User) bool {
	return principal.IsActive() && principal.Role != RoleDonor
}

// CanVolunteer reports whether the principal may claim the given request
// as its donor. The requester can never claim their own request, and only
// an unclaimed pending request is claimable.
func CanVolunteer(principal *User, req *DonationRequest) bool {
	if !principal.IsActive() {
		return false
	}
	if req.RequesterEmail == principal.Email {
		return false
	}
	return req.Status == RequestStatusPending && !req.Claimed()
}

// CanManageUsers reports whether the principal may change another user's
// role or status. Self-targeting is rejected so an admin can neither
// demote nor unblock themselves through this path.
func CanManageUsers(principal *User, targetID int32) bool {
	return principal.IsActive() && principal.Role == RoleAdmin && principal.ID != targetID
}

// CanManageAllRequests reports whether the principal may triage the full
// donation-request list and drive transitions on requests they do not own.
func CanManageAllRequests(principal *User) bool {
	return principal.IsActive() && (principal.Role == RoleAdmin || principal.Role == RoleVolunteer)
}

// CanTriageContent reports whether the principal may see unpublished posts.
func CanTriageContent(principal *User) bool {
	return principal.IsActive() && (principal.Role == RoleAdmin || principal.Role == RoleVolunteer)
}

// CanPublishContent reports whether the principal may create, edit, delete,
// duplicate, or change the status of blog posts. Destructive and publish
// actions are admin-only.
func CanPublishContent(principal *User) bool {
	return principal.IsActive() && principal.Role == RoleAdmin
}

// CanTransitionRequest reports whether the principal may move the request
// to done or canceled: the requester themselves, or an admin/volunteer.
func CanTransitionRequest(principal *User, req *DonationRequest) bool {
	if !principal.IsActive() {
		return false
	}
	if req.RequesterID == principal.ID {
		return true
	}
	return principal.Role == RoleAdmin || principal.Role == RoleVolunteer
}

// CanEditRequest reports whether the principal may edit request fields.
// Only the requester may edit, and only while the request is still pending.
func CanEditRequest(principal *User, req *DonationRequest) bool {
	return principal.IsActive() && req.RequesterID == principal.ID && req.Status == RequestStatusPending
}

// CanDeleteRequest reports whether the principal may remove the record.
// The requester may purge their own request unless a donor is mid-donation;
// an admin may always delete.
func CanDeleteRequest(principal *User, req *DonationRequest) bool {
	if !principal.IsActive() {
		return false
	}
	if principal.Role == RoleAdmin {
		return true
	}
	if req.RequesterID != principal.ID {
		return false
	}
	return req.Status != RequestStatusInProgress
}
