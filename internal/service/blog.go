package service

import (
	"context"
	"database/sql"
	"errors"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type blogService struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
}

func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository) BlogService {
	return &blogService{blogRepo: blogRepo, userRepo: userRepo}
}

func (s *blogService) Create(ctx context.Context, principalID int32, post *domain.BlogPost) error {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return err
	}
	if !user.IsActive() {
		return ErrAccountBlocked
	}
	if !domain.CanPublishContent(user) {
		return ErrForbidden
	}

	if !post.Status.Valid() {
		post.Status = domain.BlogStatusDraft
	}
	post.AuthorID = user.ID
	post.AuthorName = user.Name
	post.AuthorEmail = user.Email
	return s.blogRepo.Create(ctx, post)
}

// GetPublished serves the public detail path. Anything not published is
// indistinguishable from a missing record.
func (s *blogService) GetPublished(ctx context.Context, id int32) (*domain.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.Status != domain.BlogStatusPublished {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *blogService) ListPublished(ctx context.Context, page, pageSize int32) ([]domain.BlogPost, int32, error) {
	return s.blogRepo.ListPublished(ctx, page, pageSize)
}

func (s *blogService) ListAll(ctx context.Context, principalID int32, status string, page, pageSize int32) ([]domain.BlogPost, int32, error) {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return nil, 0, err
	}
	if !domain.CanTriageContent(user) {
		return nil, 0, ErrForbidden
	}
	return s.blogRepo.ListAll(ctx, status, page, pageSize)
}

func (s *blogService) Update(ctx context.Context, principalID int32, post *domain.BlogPost) (*domain.BlogPost, error) {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountBlocked
	}
	if !domain.CanPublishContent(user) {
		return nil, ErrForbidden
	}

	if err := s.blogRepo.Update(ctx, post); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, post.ID)
}

func (s *blogService) SetStatus(ctx context.Context, principalID, postID int32, status domain.BlogStatus) error {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return err
	}
	if !user.IsActive() {
		return ErrAccountBlocked
	}
	if !domain.CanPublishContent(user) {
		return ErrForbidden
	}
	if !status.Valid() {
		return ErrInvalidTransition
	}

	if err := s.blogRepo.UpdateStatus(ctx, postID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Duplicate copies a post into a fresh draft. The copy is always a draft
// regardless of the source status; the source is untouched.
func (s *blogService) Duplicate(ctx context.Context, principalID, postID int32) (*domain.BlogPost, error) {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountBlocked
	}
	if !domain.CanPublishContent(user) {
		return nil, ErrForbidden
	}

	src, err := s.blogRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dup := &domain.BlogPost{
		Title:       src.Title,
		Thumbnail:   src.Thumbnail,
		Content:     src.Content,
		Status:      domain.BlogStatusDraft,
		AuthorID:    user.ID,
		AuthorName:  user.Name,
		AuthorEmail: user.Email,
	}
	if err := s.blogRepo.Create(ctx, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

func (s *blogService) Delete(ctx context.Context, principalID, postID int32) error {
	user, err := principal(ctx, s.userRepo, principalID)
	if err != nil {
		return err
	}
	if !user.IsActive() {
		return ErrAccountBlocked
	}
	if !domain.CanPublishContent(user) {
		return ErrForbidden
	}

	if err := s.blogRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
