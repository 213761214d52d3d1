package postgres

import (
	"context"
	"database/sql"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type blogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) repository.BlogRepository {
	return &blogRepository{db: db}
}

const blogColumns = `id, title, COALESCE(thumbnail, ''), content, status, author_id, author_name, author_email, created_on, updated_on`

func scanPost(row interface{ Scan(...any) error }) (*domain.BlogPost, error) {
	p := &domain.BlogPost{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&p.ID, &p.Title, &p.Thumbnail, &p.Content, &p.Status,
		&p.AuthorID, &p.AuthorName, &p.AuthorEmail, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	p.CreatedOn = createdOn.Format(dateLayout)
	p.UpdatedOn = updatedOn.Format(dateLayout)
	return p, nil
}

func (r *blogRepository) Create(ctx context.Context, p *domain.BlogPost) error {
	query := `INSERT INTO blog_posts (title, thumbnail, content, status, author_id, author_name, author_email, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.Title, p.Thumbnail, p.Content, p.Status,
		p.AuthorID, p.AuthorName, p.AuthorEmail).Scan(&p.ID)
}

func (r *blogRepository) GetByID(ctx context.Context, id int32) (*domain.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE id = $1`
	return scanPost(r.db.QueryRowContext(ctx, query, id))
}

func (r *blogRepository) Update(ctx context.Context, p *domain.BlogPost) error {
	query := `UPDATE blog_posts SET title=$1, thumbnail=$2, content=$3, updated_on=NOW() WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, p.Title, p.Thumbnail, p.Content, p.ID)
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

func (r *blogRepository) UpdateStatus(ctx context.Context, id int32, status domain.BlogStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE blog_posts SET status=$1, updated_on=NOW() WHERE id=$2`, status, id)
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

func (r *blogRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
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

// ListPublished serves the public read path. The status filter is part of
// the query, not the caller's responsibility.
func (r *blogRepository) ListPublished(ctx context.Context, page, pageSize int32) ([]domain.BlogPost, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE status = 'published' ORDER BY created_on DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM blog_posts WHERE status = 'published'`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *blogRepository) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.BlogPost, int32, error) {
	where := `WHERE ($1 = '' OR status = $1)`
	offset := (page - 1) * pageSize
	query := `SELECT ` + blogColumns + ` FROM blog_posts ` + where + ` ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM blog_posts ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, status).Scan(&count); err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func collectPosts(rows *sql.Rows) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}
