package service

import (
	"context"
	"database/sql"
	"errors"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository"
)

var (
	// ErrRequestNotAvailable is the losing side of a claim race: the
	// request left pending between read and write.
	ErrRequestNotAvailable = errors.New("request is no longer available")
	ErrSelfAssign          = errors.New("cannot volunteer for own request")
	ErrNotEditable         = errors.New("request can only be edited while pending")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

type requestService struct {
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
}

func NewRequestService(requestRepo repository.RequestRepository, userRepo repository.UserRepository, emailSvc EmailService) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

func (s *requestService) Create(ctx context.Context, principalID int32, req *domain.DonationRequest) error {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return err
	}
	if !user.IsActive() {
		return ErrAccountBlocked
	}
	if !domain.CanCreateRequest(user) {
		return ErrForbidden
	}

	req.RequesterID = user.ID
	req.RequesterName = user.Name
	req.RequesterEmail = user.Email

	return s.requestRepo.Create(ctx, req)
}

func (s *requestService) Get(ctx context.Context, id int32) (*domain.DonationRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return req, err
}

func (s *requestService) MyRequests(ctx context.Context, principalID int32, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error) {
	return s.requestRepo.ListByRequester(ctx, principalID, status, page, pageSize)
}

func (s *requestService) ListPending(ctx context.Context, page, pageSize int32) ([]domain.DonationRequest, int32, error) {
	return s.requestRepo.ListPending(ctx, page, pageSize)
}

func (s *requestService) ListAll(ctx context.Context, principalID int32, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error) {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return nil, 0, err
	}
	if !domain.CanManageAllRequests(user) {
		return nil, 0, ErrForbidden
	}
	return s.requestRepo.ListAll(ctx, status, page, pageSize)
}

// Edit updates request fields through the pending-only path. Status and
// donor columns are not reachable from here no matter what the payload
// carried.
func (s *requestService) Edit(ctx context.Context, principalID int32, req *domain.DonationRequest) (*domain.DonationRequest, error) {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountBlocked
	}

	current, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if current.RequesterID != user.ID {
		return nil, ErrForbidden
	}
	if !domain.CanEditRequest(user, current) {
		return nil, ErrNotEditable
	}

	req.RequesterID = user.ID
	ok, err := s.requestRepo.UpdateFields(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Guard lost the race: the request left pending after the check.
		return nil, ErrNotEditable
	}

	return s.requestRepo.GetByID(ctx, req.ID)
}

// Claim volunteers the principal as donor. The repository performs the
// conditional update; a zero-row result means someone else claimed it
// first and is surfaced as a conflict, never silently ignored.
func (s *requestService) Claim(ctx context.Context, principalID, requestID int32) (*domain.DonationRequest, error) {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountBlocked
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.RequesterEmail == user.Email {
		return nil, ErrSelfAssign
	}
	if !domain.CanVolunteer(user, req) {
		return nil, ErrRequestNotAvailable
	}

	claimed, err := s.requestRepo.Assign(ctx, requestID, user.Name, user.Email)
	if err != nil {
		return nil, err
	}
	if !claimed {
		logger.Info("Claim lost race", "request_id", requestID, "donor", user.Email)
		return nil, ErrRequestNotAvailable
	}

	if s.emailSvc != nil {
		_ = s.emailSvc.SendDonorAssignedNotification(ctx, req.RequesterEmail, req.RequesterName, user.Name, req.RecipientName)
	}

	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *requestService) MarkDone(ctx context.Context, principalID, requestID int32) (*domain.DonationRequest, error) {
	user, req, err := s.loadForTransition(ctx, principalID, requestID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionRequest(user, req) {
		return nil, ErrForbidden
	}

	ok, err := s.requestRepo.Transition(ctx, requestID,
		[]domain.RequestStatus{domain.RequestStatusInProgress}, domain.RequestStatusDone)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	// A completed donation updates the donor's eligibility clock.
	if req.DonorEmail != nil {
		if donor, derr := s.userRepo.GetByEmail(ctx, *req.DonorEmail); derr == nil {
			_ = s.userRepo.UpdateLastDonationDate(ctx, donor.ID, req.DonationDate)
		}
		if s.emailSvc != nil {
			_ = s.emailSvc.SendRequestStatusNotification(ctx, req.RequesterEmail, req.RequesterName, req.RecipientName, string(domain.RequestStatusDone))
		}
	}

	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *requestService) Cancel(ctx context.Context, principalID, requestID int32) (*domain.DonationRequest, error) {
	user, req, err := s.loadForTransition(ctx, principalID, requestID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionRequest(user, req) {
		return nil, ErrForbidden
	}

	ok, err := s.requestRepo.Transition(ctx, requestID,
		[]domain.RequestStatus{domain.RequestStatusPending, domain.RequestStatusInProgress}, domain.RequestStatusCanceled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	// Let an assigned donor know the donation is off.
	if req.DonorEmail != nil && req.DonorName != nil && s.emailSvc != nil {
		_ = s.emailSvc.SendRequestStatusNotification(ctx, *req.DonorEmail, *req.DonorName, req.RecipientName, string(domain.RequestStatusCanceled))
	}

	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *requestService) Delete(ctx context.Context, principalID, requestID int32) error {
	user, req, err := s.loadForTransition(ctx, principalID, requestID)
	if err != nil {
		return err
	}
	if !domain.CanDeleteRequest(user, req) {
		return ErrForbidden
	}
	return s.requestRepo.Delete(ctx, requestID)
}

func (s *requestService) loadForTransition(ctx context.Context, principalID, requestID int32) (*domain.User, *domain.DonationRequest, error) {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive() {
		return nil, nil, ErrAccountBlocked
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return user, req, nil
}
