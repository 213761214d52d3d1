package postgres

import (
	"context"
	"database/sql"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository"

	"github.com/lib/pq"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, requester_id, requester_name, requester_email, recipient_name, recipient_email,
	blood_group, recipient_district, recipient_upazila, hospital_name, address,
	donation_date, donation_time, COALESCE(request_message, ''), status, donor_name, donor_email, created_on, updated_on`

func scanRequest(row interface{ Scan(...any) error }) (*domain.DonationRequest, error) {
	req := &domain.DonationRequest{}
	var donorName, donorEmail sql.NullString
	var donationDate, createdOn, updatedOn time.Time
	err := row.Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.RequesterEmail,
		&req.RecipientName, &req.RecipientEmail, &req.BloodGroup, &req.RecipientDistrict,
		&req.RecipientUpazila, &req.HospitalName, &req.Address, &donationDate, &req.DonationTime,
		&req.RequestMessage, &req.Status, &donorName, &donorEmail, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	req.DonationDate = donationDate.Format(dateLayout)
	if donorName.Valid {
		req.DonorName = &donorName.String
	}
	if donorEmail.Valid {
		req.DonorEmail = &donorEmail.String
	}
	req.CreatedOn = createdOn.Format(dateLayout)
	req.UpdatedOn = updatedOn.Format(dateLayout)
	return req, nil
}

// Create inserts a new request. Donor columns are left NULL: a request is
// born pending and unclaimed.
func (r *requestRepository) Create(ctx context.Context, req *domain.DonationRequest) error {
	query := `INSERT INTO donation_requests
	          (requester_id, requester_name, requester_email, recipient_name, recipient_email,
	           blood_group, recipient_district, recipient_upazila, hospital_name, address,
	           donation_date, donation_time, request_message, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	          RETURNING id`
	req.Status = domain.RequestStatusPending
	req.DonorName = nil
	req.DonorEmail = nil
	return r.db.QueryRowContext(ctx, query,
		req.RequesterID, req.RequesterName, req.RequesterEmail, req.RecipientName, req.RecipientEmail,
		req.BloodGroup, req.RecipientDistrict, req.RecipientUpazila, req.HospitalName, req.Address,
		req.DonationDate, req.DonationTime, req.RequestMessage, req.Status).Scan(&req.ID)
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.DonationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM donation_requests WHERE id = $1`
	return scanRequest(r.db.QueryRowContext(ctx, query, id))
}

// UpdateFields edits the request body. The status guard is part of the
// statement: once a request leaves pending the edit path cannot reach it,
// even if the caller bypassed the form.
func (r *requestRepository) UpdateFields(ctx context.Context, req *domain.DonationRequest) (bool, error) {
	query := `UPDATE donation_requests SET
	          recipient_name=$1, recipient_email=$2, blood_group=$3, recipient_district=$4,
	          recipient_upazila=$5, hospital_name=$6, address=$7, donation_date=$8,
	          donation_time=$9, request_message=$10, updated_on=NOW()
	          WHERE id=$11 AND requester_id=$12 AND status='pending'`
	res, err := r.db.ExecContext(ctx, query,
		req.RecipientName, req.RecipientEmail, req.BloodGroup, req.RecipientDistrict,
		req.RecipientUpazila, req.HospitalName, req.Address, req.DonationDate,
		req.DonationTime, req.RequestMessage, req.ID, req.RequesterID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Assign is the claim: a compare-and-swap on the status column. Two donors
// racing for the same request serialize here; the loser affects zero rows.
func (r *requestRepository) Assign(ctx context.Context, id int32, donorName, donorEmail string) (bool, error) {
	logger.DatabaseCall("UPDATE", "donation_requests claim", "id", id, "donor", donorEmail)
	query := `UPDATE donation_requests
	          SET status='inprogress', donor_name=$1, donor_email=$2, updated_on=NOW()
	          WHERE id=$3 AND status='pending'`
	res, err := r.db.ExecContext(ctx, query, donorName, donorEmail, id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "id", id)
		return false, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err, "id", id)
	return n > 0, err
}

func (r *requestRepository) Transition(ctx context.Context, id int32, from []domain.RequestStatus, to domain.RequestStatus) (bool, error) {
	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}
	query := `UPDATE donation_requests SET status=$1, updated_on=NOW()
	          WHERE id=$2 AND status = ANY($3)`
	res, err := r.db.ExecContext(ctx, query, to, id, pq.Array(states))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *requestRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM donation_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error) {
	where := `WHERE requester_id = $1 AND ($2 = '' OR status = $2)`
	offset := (page - 1) * pageSize
	query := `SELECT ` + requestColumns + ` FROM donation_requests ` + where + ` ORDER BY created_on DESC, id DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, requesterID, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reqs, err := collectRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM donation_requests ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, requesterID, status).Scan(&count); err != nil {
		return nil, 0, err
	}
	return reqs, count, nil
}

func (r *requestRepository) ListPending(ctx context.Context, page, pageSize int32) ([]domain.DonationRequest, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + requestColumns + ` FROM donation_requests WHERE status = 'pending' ORDER BY donation_date, donation_time LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reqs, err := collectRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM donation_requests WHERE status = 'pending'`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return reqs, count, nil
}

func (r *requestRepository) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.DonationRequest, int32, error) {
	where := `WHERE ($1 = '' OR status = $1)`
	offset := (page - 1) * pageSize
	query := `SELECT ` + requestColumns + ` FROM donation_requests ` + where + ` ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reqs, err := collectRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM donation_requests ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, status).Scan(&count); err != nil {
		return nil, 0, err
	}
	return reqs, count, nil
}

func (r *requestRepository) ListDueOn(ctx context.Context, date string, status domain.RequestStatus) ([]domain.DonationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM donation_requests WHERE donation_date = $1 AND status = $2`
	rows, err := r.db.QueryContext(ctx, query, date, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *requestRepository) CancelStalePending(ctx context.Context, before string) (int64, error) {
	query := `UPDATE donation_requests SET status='canceled', updated_on=NOW()
	          WHERE status='pending' AND donation_date < $1`
	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func collectRequests(rows *sql.Rows) ([]domain.DonationRequest, error) {
	var reqs []domain.DonationRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}
