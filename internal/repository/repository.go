package repository

import (
	"context"
	"errors"

	"bloodlink-backend/internal/domain"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint
// (user email, fund transaction id).
var ErrDuplicate = errors.New("duplicate record")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	// UpdateRoleStatus touches only the role and status columns.
	UpdateRoleStatus(ctx context.Context, id int32, role domain.Role, status domain.UserStatus) error
	UpdateLastDonationDate(ctx context.Context, id int32, date string) error
	List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error)
	SearchDonors(ctx context.Context, bloodGroup, district, upazila string, page, pageSize int32) ([]domain.User, int32, error)
	ListEligibleDonors(ctx context.Context, lastDonationBefore string) ([]domain.User, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.DonationRequest) error
	GetByID(ctx context.Context, id int32) (*domain.DonationRequest, error)
	// UpdateFields edits the mutable request fields, guarded on the row
	// still being pending and owned by the requester. Returns false when
	// the guard failed and no row changed.
	UpdateFields(ctx context.Context, req *domain.DonationRequest) (bool, error)
	// Assign claims the request for a donor with a conditional update:
	// the write succeeds only if the row is still pending. Returns false
	// when another donor got there first.
	Assign(ctx context.Context, id int32, donorName, donorEmail string) (bool, error)
	// Transition moves status from one of the given states to the target
	// state in a single conditional update. Returns false on no-op.
	Transition(ctx context.Context, id int32, from []domain.RequestStatus, to domain.RequestStatus) (bool, error)
	Delete(ctx context.Context, id int32) error
	ListByRequester(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error)
	ListPending(ctx context.Context, page, pageSize int32) ([]domain.DonationRequest, int32, error)
	ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error)
	// ListDueOn returns requests in the given status whose donation date
	// equals the given day. Used by the reminder job.
	ListDueOn(ctx context.Context, date string, status domain.RequestStatus) ([]domain.DonationRequest, error)
	// CancelStalePending cancels pending requests whose donation date
	// passed before the cutoff. Returns the number of rows changed.
	CancelStalePending(ctx context.Context, before string) (int64, error)
}

type BlogRepository interface {
	Create(ctx context.Context, post *domain.BlogPost) error
	GetByID(ctx context.Context, id int32) (*domain.BlogPost, error)
	Update(ctx context.Context, post *domain.BlogPost) error
	UpdateStatus(ctx context.Context, id int32, status domain.BlogStatus) error
	Delete(ctx context.Context, id int32) error
	ListPublished(ctx context.Context, page, pageSize int32) ([]domain.BlogPost, int32, error)
	ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.BlogPost, int32, error)
}

type FundRepository interface {
	// Create appends one confirmed payment. A reused transaction id
	// surfaces as ErrDuplicate.
	Create(ctx context.Context, record *domain.FundRecord) error
	List(ctx context.Context, page, pageSize int32) ([]domain.FundRecord, int32, error)
	// Total is a sum reduction over all records, computed on read.
	Total(ctx context.Context) (int64, error)
}
