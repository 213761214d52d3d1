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

const dateLayout = "2006-01-02"

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, phone_number, password_hash, blood_group, district, upazila, role, status, last_donation_date, COALESCE(avatar_url, ''), created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var lastDonation sql.NullTime
	var createdOn, updatedOn time.Time
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhoneNumber, &u.PasswordHash, &u.BloodGroup,
		&u.District, &u.Upazila, &u.Role, &u.Status, &lastDonation, &u.AvatarURL, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	if lastDonation.Valid {
		d := lastDonation.Time.Format(dateLayout)
		u.LastDonationDate = &d
	}
	u.CreatedOn = createdOn.Format(dateLayout)
	u.UpdatedOn = updatedOn.Format(dateLayout)
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, name, phone_number, password_hash, blood_group, district, upazila, role, status, avatar_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, u.Email, u.Name, u.PhoneNumber, u.PasswordHash,
		u.BloodGroup, u.District, u.Upazila, u.Role, u.Status, u.AvatarURL).Scan(&u.ID)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// UpdateProfile never touches email, role, or status. Email is immutable and
// role/status changes go through UpdateRoleStatus only.
func (r *userRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, phone_number=$2, blood_group=$3, district=$4, upazila=$5, avatar_url=$6, updated_on=NOW() WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, u.Name, u.PhoneNumber, u.BloodGroup, u.District, u.Upazila, u.AvatarURL, u.ID)
	return err
}

func (r *userRepository) UpdateRoleStatus(ctx context.Context, id int32, role domain.Role, status domain.UserStatus) error {
	query := `UPDATE users SET role=$1, status=$2, updated_on=NOW() WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, role, status, id)
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

func (r *userRepository) UpdateLastDonationDate(ctx context.Context, id int32, date string) error {
	query := `UPDATE users SET last_donation_date=$1, updated_on=NOW() WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, date, id)
	return err
}

func (r *userRepository) List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_on DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (r *userRepository) SearchDonors(ctx context.Context, bloodGroup, district, upazila string, page, pageSize int32) ([]domain.User, int32, error) {
	logger.EnterMethod("userRepository.SearchDonors", "bloodGroup", bloodGroup, "district", district, "upazila", upazila)

	where := `WHERE role = 'donor' AND status = 'active'
	          AND ($1 = '' OR blood_group = $1)
	          AND ($2 = '' OR district ILIKE $2)
	          AND ($3 = '' OR upazila ILIKE $3)`
	offset := (page - 1) * pageSize

	query := `SELECT ` + userColumns + ` FROM users ` + where + ` ORDER BY name LIMIT $4 OFFSET $5`
	rows, err := r.db.QueryContext(ctx, query, bloodGroup, district, upazila, pageSize, offset)
	if err != nil {
		logger.ExitMethodWithError("userRepository.SearchDonors", err)
		return nil, 0, err
	}
	defer rows.Close()

	var donors []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			logger.ExitMethodWithError("userRepository.SearchDonors", err)
			return nil, 0, err
		}
		donors = append(donors, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM users ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, bloodGroup, district, upazila).Scan(&count); err != nil {
		return nil, 0, err
	}

	logger.ExitMethod("userRepository.SearchDonors", "count", len(donors))
	return donors, count, nil
}

func (r *userRepository) ListEligibleDonors(ctx context.Context, lastDonationBefore string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE role = 'donor' AND status = 'active' AND last_donation_date IS NOT NULL AND last_donation_date <= $1`
	rows, err := r.db.QueryContext(ctx, query, lastDonationBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donors []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		donors = append(donors, *u)
	}
	return donors, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
