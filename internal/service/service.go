package service

import (
	"context"
	"errors"

	"bloodlink-backend/internal/domain"
)

// Errors shared across services. The HTTP layer maps these to status codes.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	// ErrAccountBlocked rejects every write from a blocked principal,
	// regardless of role.
	ErrAccountBlocked = errors.New("account is blocked")
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	// ExchangeIdentityToken verifies a provider-issued ID token and
	// returns API tokens for the matching (or newly provisioned) user.
	ExchangeIdentityToken(ctx context.Context, idToken string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, userID int32) (string, string, error)
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	BloodGroup string
	District   string
	Upazila    string
	AvatarURL  string
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, input ProfileInput) (*domain.User, error)
	// ResolveRole is the public identity resolver. Unknown emails degrade
	// to the donor/active default; that default is interim and is never
	// consulted for authorization.
	ResolveRole(ctx context.Context, email string) (domain.Role, domain.UserStatus, error)
	SearchDonors(ctx context.Context, bloodGroup, district, upazila string, page, pageSize int32) ([]domain.User, int32, error)
	ListUsers(ctx context.Context, adminID int32, page, pageSize int32) ([]domain.User, int32, error)
	SetRoleStatus(ctx context.Context, adminID, targetID int32, role domain.Role, status domain.UserStatus) error
}

type ProfileInput struct {
	Name             string
	Phone            string
	BloodGroup       string
	District         string
	Upazila          string
	AvatarURL        string
	LastDonationDate string
}

type RequestService interface {
	Create(ctx context.Context, principalID int32, req *domain.DonationRequest) error
	Get(ctx context.Context, id int32) (*domain.DonationRequest, error)
	MyRequests(ctx context.Context, principalID int32, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error)
	ListPending(ctx context.Context, page, pageSize int32) ([]domain.DonationRequest, int32, error)
	ListAll(ctx context.Context, principalID int32, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error)
	Edit(ctx context.Context, principalID int32, req *domain.DonationRequest) (*domain.DonationRequest, error)
	// Claim volunteers the principal as donor for a pending request.
	Claim(ctx context.Context, principalID, requestID int32) (*domain.DonationRequest, error)
	MarkDone(ctx context.Context, principalID, requestID int32) (*domain.DonationRequest, error)
	Cancel(ctx context.Context, principalID, requestID int32) (*domain.DonationRequest, error)
	Delete(ctx context.Context, principalID, requestID int32) error
}

type BlogService interface {
	Create(ctx context.Context, principalID int32, post *domain.BlogPost) error
	GetPublished(ctx context.Context, id int32) (*domain.BlogPost, error)
	ListPublished(ctx context.Context, page, pageSize int32) ([]domain.BlogPost, int32, error)
	ListAll(ctx context.Context, principalID int32, status string, page, pageSize int32) ([]domain.BlogPost, int32, error)
	Update(ctx context.Context, principalID int32, post *domain.BlogPost) (*domain.BlogPost, error)
	SetStatus(ctx context.Context, principalID, postID int32, status domain.BlogStatus) error
	Duplicate(ctx context.Context, principalID, postID int32) (*domain.BlogPost, error)
	Delete(ctx context.Context, principalID, postID int32) error
}

type FundService interface {
	// CreatePaymentIntent validates the amount and opens an intent with
	// the gateway. Amounts are minor units; below the minimum nothing is
	// sent to the gateway at all.
	CreatePaymentIntent(ctx context.Context, principalID int32, amountCents int64) (string, string, error)
	// RecordFund appends a ledger row for a payment the gateway has
	// confirmed as captured. It never writes on unconfirmed payments.
	RecordFund(ctx context.Context, principalID int32, transactionID string) (*domain.FundRecord, error)
	ListFunds(ctx context.Context, principalID int32, page, pageSize int32) ([]domain.FundRecord, int64, int32, error)
}

// PaymentGateway abstracts the external payment processor.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, donorEmail string) (id, clientSecret string, err error)
	// IntentStatus reports whether the intent succeeded and for what amount.
	IntentStatus(ctx context.Context, id string) (succeeded bool, amountCents int64, err error)
}

type EmailService interface {
	SendDonorAssignedNotification(ctx context.Context, requesterEmail, requesterName, donorName, recipientName string) error
	SendRequestStatusNotification(ctx context.Context, email, name, recipientName, status string) error
	SendAccountStatusNotification(ctx context.Context, email, name, status string) error
	SendDonationReminder(ctx context.Context, donorEmail, donorName, hospitalName, donationDate, donationTime string) error
	SendEligibilityReminder(ctx context.Context, donorEmail, donorName string) error
}
