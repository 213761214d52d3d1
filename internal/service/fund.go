package service

import (
	"context"
	"errors"
	"fmt"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository"
)

var (
	ErrAmountTooSmall       = errors.New("amount below the 1.00 minimum")
	ErrPaymentNotConfirmed  = errors.New("payment has not been confirmed by the gateway")
	ErrDuplicateTransaction = errors.New("transaction already recorded")
)

type fundService struct {
	fundRepo repository.FundRepository
	userRepo repository.UserRepository
	gateway  PaymentGateway
}

func NewFundService(fundRepo repository.FundRepository, userRepo repository.UserRepository, gateway PaymentGateway) FundService {
	return &fundService{
		fundRepo: fundRepo,
		userRepo: userRepo,
		gateway:  gateway,
	}
}

// CreatePaymentIntent opens an intent with the gateway. The minimum check
// runs first: a sub-minimum amount never reaches the gateway.
func (s *fundService) CreatePaymentIntent(ctx context.Context, principalID int32, amountCents int64) (string, string, error) {
	if amountCents < domain.MinimumFundCents {
		return "", "", ErrAmountTooSmall
	}

	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return "", "", err
	}
	if !user.IsActive() {
		return "", "", ErrAccountBlocked
	}

	logger.ExternalServiceCall("stripe", "CreateIntent", "amount_cents", amountCents, "donor", user.Email)
	id, clientSecret, err := s.gateway.CreateIntent(ctx, amountCents, user.Email)
	logger.ExternalServiceResult("stripe", "CreateIntent", err, "intent_id", id)
	if err != nil {
		return "", "", fmt.Errorf("payment gateway error: %w", err)
	}
	return id, clientSecret, nil
}

// RecordFund writes the ledger row for a confirmed payment. The gateway is
// the source of truth: the intent must report succeeded, and the recorded
// amount is the gateway's, not the caller's.
func (s *fundService) RecordFund(ctx context.Context, principalID int32, transactionID string) (*domain.FundRecord, error) {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountBlocked
	}

	logger.ExternalServiceCall("stripe", "IntentStatus", "intent_id", transactionID)
	succeeded, amountCents, err := s.gateway.IntentStatus(ctx, transactionID)
	logger.ExternalServiceResult("stripe", "IntentStatus", err, "succeeded", succeeded)
	if err != nil {
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}
	if !succeeded {
		return nil, ErrPaymentNotConfirmed
	}

	record := &domain.FundRecord{
		DonorID:       user.ID,
		DonorName:     user.Name,
		DonorEmail:    user.Email,
		AmountCents:   amountCents,
		TransactionID: transactionID,
	}
	if err := s.fundRepo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateTransaction
		}
		return nil, err
	}

	logger.Info("Fund recorded", "donor", user.Email, "amount_cents", amountCents, "transaction_id", transactionID)
	return record, nil
}

// ListFunds returns the ledger page plus the on-read sum of all records.
func (s *fundService) ListFunds(ctx context.Context, principalID int32, page, pageSize int32) ([]domain.FundRecord, int64, int32, error) {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return nil, 0, 0, err
	}
	if user.Role != domain.RoleAdmin && user.Role != domain.RoleVolunteer {
		return nil, 0, 0, ErrForbidden
	}

	records, count, err := s.fundRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}
	total, err := s.fundRepo.Total(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	return records, total, count, nil
}
