package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository/postgres"
)

func TestRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		req := &domain.DonationRequest{
			RequesterID:    1,
			RequesterName:  "Requester",
			RequesterEmail: "requester@test.com",
			RecipientName:  "Recipient",
			BloodGroup:     domain.BloodGroupAPos,
			HospitalName:   "City Hospital",
			DonationDate:   "2026-09-15",
			DonationTime:   "10:00",
			Status:         domain.RequestStatusDone, // forged, must be reset
		}

		mock.ExpectQuery("INSERT INTO donation_requests").
			WithArgs(req.RequesterID, req.RequesterName, req.RequesterEmail, req.RecipientName, req.RecipientEmail,
				req.BloodGroup, req.RecipientDistrict, req.RecipientUpazila, req.HospitalName, req.Address,
				req.DonationDate, req.DonationTime, req.RequestMessage, domain.RequestStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), req.ID)
		assert.Equal(t, domain.RequestStatusPending, req.Status)
		assert.Nil(t, req.DonorEmail)
	})
}

func TestRequestRepository_Assign(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	t.Run("ClaimsPendingRow", func(t *testing.T) {
		mock.ExpectExec("UPDATE donation_requests").
			WithArgs("Donor", "donor@test.com", int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Assign(ctx, 10, "Donor", "donor@test.com")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("LoserAffectsZeroRows", func(t *testing.T) {
		mock.ExpectExec("UPDATE donation_requests").
			WithArgs("Donor", "donor@test.com", int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Assign(ctx, 10, "Donor", "donor@test.com")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRequestRepository_Transition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	t.Run("FromMatchingState", func(t *testing.T) {
		mock.ExpectExec("UPDATE donation_requests").
			WithArgs(domain.RequestStatusDone, int32(10), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Transition(ctx, 10,
			[]domain.RequestStatus{domain.RequestStatusInProgress}, domain.RequestStatusDone)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("TerminalStateRejected", func(t *testing.T) {
		mock.ExpectExec("UPDATE donation_requests").
			WithArgs(domain.RequestStatusCanceled, int32(10), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Transition(ctx, 10,
			[]domain.RequestStatus{domain.RequestStatusPending, domain.RequestStatusInProgress}, domain.RequestStatusCanceled)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRequestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	t.Run("UnclaimedHasNilDonor", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "requester_id", "requester_name", "requester_email",
			"recipient_name", "recipient_email", "blood_group", "recipient_district", "recipient_upazila",
			"hospital_name", "address", "donation_date", "donation_time", "request_message", "status",
			"donor_name", "donor_email", "created_on", "updated_on"}).
			AddRow(1, 2, "Requester", "requester@test.com", "Recipient", "", "A+", "Dhaka", "",
				"City Hospital", "", time.Now(), "10:00", "", "pending", nil, nil, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM donation_requests WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		req, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestStatusPending, req.Status)
		assert.Nil(t, req.DonorName)
		assert.Nil(t, req.DonorEmail)
		assert.False(t, req.Claimed())
	})
}

func TestRequestRepository_CancelStalePending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRequestRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE donation_requests").
		WithArgs("2026-08-26").
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.CancelStalePending(ctx, "2026-08-26")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
