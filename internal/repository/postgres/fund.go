package postgres

import (
	"context"
	"database/sql"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type fundRepository struct {
	db *sql.DB
}

func NewFundRepository(db *sql.DB) repository.FundRepository {
	return &fundRepository{db: db}
}

// Create appends one row to the ledger. The unique index on transaction_id
// makes replayed gateway confirmations idempotent.
func (r *fundRepository) Create(ctx context.Context, f *domain.FundRecord) error {
	query := `INSERT INTO funds (donor_id, donor_name, donor_email, amount_cents, transaction_id, funded_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, f.DonorID, f.DonorName, f.DonorEmail, f.AmountCents, f.TransactionID).Scan(&f.ID)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *fundRepository) List(ctx context.Context, page, pageSize int32) ([]domain.FundRecord, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, donor_id, donor_name, donor_email, amount_cents, transaction_id, funded_on
	          FROM funds ORDER BY funded_on DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []domain.FundRecord
	for rows.Next() {
		var f domain.FundRecord
		var fundedOn time.Time
		if err := rows.Scan(&f.ID, &f.DonorID, &f.DonorName, &f.DonorEmail, &f.AmountCents, &f.TransactionID, &fundedOn); err != nil {
			return nil, 0, err
		}
		f.FundedOn = fundedOn.Format(dateLayout)
		records = append(records, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM funds`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return records, count, nil
}

func (r *fundRepository) Total(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM funds`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}
