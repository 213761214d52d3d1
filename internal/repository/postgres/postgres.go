package postgres

import (
	"database/sql"

	"bloodlink-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.RequestRepository
	repository.BlogRepository
	repository.FundRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		UserRepository:    NewUserRepository(db),
		RequestRepository: NewRequestRepository(db),
		BlogRepository:    NewBlogRepository(db),
		FundRepository:    NewFundRepository(db),
	}
}
