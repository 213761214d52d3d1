package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
	"bloodlink-backend/internal/repository/postgres"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "name", "phone_number", "password_hash",
		"blood_group", "district", "upazila", "role", "status", "last_donation_date",
		"avatar_url", "created_on", "updated_on"})
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Email:      "donor@test.com",
		Name:       "Donor",
		BloodGroup: domain.BloodGroupOPos,
		Role:       domain.RoleDonor,
		Status:     domain.UserStatusActive,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Email, user.Name, user.PhoneNumber, user.PasswordHash,
				user.BloodGroup, user.District, user.Upazila, user.Role, user.Status, user.AvatarURL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, user)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.Email, user.Name, user.PhoneNumber, user.PasswordHash,
				user.BloodGroup, user.District, user.Upazila, user.Role, user.Status, user.AvatarURL).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, user)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("CaseInsensitive", func(t *testing.T) {
		rows := userRows().
			AddRow(1, "donor@test.com", "Donor", "", "", "O+", "Dhaka", "", "donor", "active", nil, "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("Donor@Test.com").
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "Donor@Test.com")
		assert.NoError(t, err)
		assert.Equal(t, "donor@test.com", user.Email)
		assert.Nil(t, user.LastDonationDate)
	})
}

func TestUserRepository_SearchDonors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("FiltersApplied", func(t *testing.T) {
		rows := userRows().
			AddRow(1, "a@test.com", "A", "", "", "O+", "Dhaka", "Savar", "donor", "active", time.Now(), "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE role = 'donor'").
			WithArgs("O+", "Dhaka", "Savar", int32(20), int32(0)).
			WillReturnRows(rows)
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM users").
			WithArgs("O+", "Dhaka", "Savar").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		donors, count, err := repo.SearchDonors(ctx, "O+", "Dhaka", "Savar", 1, 20)
		assert.NoError(t, err)
		assert.Len(t, donors, 1)
		assert.Equal(t, int32(1), count)
	})
}

func TestUserRepository_UpdateRoleStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("MissingUser", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET role").
			WithArgs(domain.RoleVolunteer, domain.UserStatusActive, int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateRoleStatus(ctx, 99, domain.RoleVolunteer, domain.UserStatusActive)
		assert.Error(t, err)
	})
}
