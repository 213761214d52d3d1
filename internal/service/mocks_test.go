package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/security"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateRoleStatus(ctx context.Context, id int32, role domain.Role, status domain.UserStatus) error {
	args := m.Called(ctx, id, role, status)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateLastDonationDate(ctx context.Context, id int32, date string) error {
	args := m.Called(ctx, id, date)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}
func (m *MockUserRepo) SearchDonors(ctx context.Context, bloodGroup, district, upazila string, page, pageSize int32) ([]domain.User, int32, error) {
	args := m.Called(ctx, bloodGroup, district, upazila, page, pageSize)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}
func (m *MockUserRepo) ListEligibleDonors(ctx context.Context, lastDonationBefore string) ([]domain.User, error) {
	args := m.Called(ctx, lastDonationBefore)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.DonationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.DonationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DonationRequest), args.Error(1)
}
func (m *MockRequestRepo) UpdateFields(ctx context.Context, req *domain.DonationRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}
func (m *MockRequestRepo) Assign(ctx context.Context, id int32, donorName, donorEmail string) (bool, error) {
	args := m.Called(ctx, id, donorName, donorEmail)
	return args.Bool(0), args.Error(1)
}
func (m *MockRequestRepo) Transition(ctx context.Context, id int32, from []domain.RequestStatus, to domain.RequestStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockRequestRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRequestRepo) ListByRequester(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error) {
	args := m.Called(ctx, requesterID, status, page, pageSize)
	return args.Get(0).([]domain.DonationRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRequestRepo) ListPending(ctx context.Context, page, pageSize int32) ([]domain.DonationRequest, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.DonationRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRequestRepo) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.DonationRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRequestRepo) ListDueOn(ctx context.Context, date string, status domain.RequestStatus) ([]domain.DonationRequest, error) {
	args := m.Called(ctx, date, status)
	return args.Get(0).([]domain.DonationRequest), args.Error(1)
}
func (m *MockRequestRepo) CancelStalePending(ctx context.Context, before string) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockBlogRepo
type MockBlogRepo struct {
	mock.Mock
}

func (m *MockBlogRepo) Create(ctx context.Context, post *domain.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}
func (m *MockBlogRepo) GetByID(ctx context.Context, id int32) (*domain.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}
func (m *MockBlogRepo) Update(ctx context.Context, post *domain.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}
func (m *MockBlogRepo) UpdateStatus(ctx context.Context, id int32, status domain.BlogStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBlogRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBlogRepo) ListPublished(ctx context.Context, page, pageSize int32) ([]domain.BlogPost, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.BlogPost), args.Get(1).(int32), args.Error(2)
}
func (m *MockBlogRepo) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.BlogPost, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.BlogPost), args.Get(1).(int32), args.Error(2)
}

// MockFundRepo
type MockFundRepo struct {
	mock.Mock
}

func (m *MockFundRepo) Create(ctx context.Context, record *domain.FundRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
func (m *MockFundRepo) List(ctx context.Context, page, pageSize int32) ([]domain.FundRecord, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.FundRecord), args.Get(1).(int32), args.Error(2)
}
func (m *MockFundRepo) Total(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDonorAssignedNotification(ctx context.Context, requesterEmail, requesterName, donorName, recipientName string) error {
	args := m.Called(ctx, requesterEmail, requesterName, donorName, recipientName)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestStatusNotification(ctx context.Context, email, name, recipientName, status string) error {
	args := m.Called(ctx, email, name, recipientName, status)
	return args.Error(0)
}
func (m *MockEmailService) SendAccountStatusNotification(ctx context.Context, email, name, status string) error {
	args := m.Called(ctx, email, name, status)
	return args.Error(0)
}
func (m *MockEmailService) SendDonationReminder(ctx context.Context, donorEmail, donorName, hospitalName, donationDate, donationTime string) error {
	args := m.Called(ctx, donorEmail, donorName, hospitalName, donationDate, donationTime)
	return args.Error(0)
}
func (m *MockEmailService) SendEligibilityReminder(ctx context.Context, donorEmail, donorName string) error {
	args := m.Called(ctx, donorEmail, donorName)
	return args.Error(0)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, amountCents int64, donorEmail string) (string, string, error) {
	args := m.Called(ctx, amountCents, donorEmail)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockPaymentGateway) IntentStatus(ctx context.Context, id string) (bool, int64, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

// MockIdentityVerifier
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, idToken string) (*security.Identity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Identity), args.Error(1)
}
