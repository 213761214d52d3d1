package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository"
	"bloodlink-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	verifier security.IdentityVerifier
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, verifier security.IdentityVerifier) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		verifier: verifier,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	bg := domain.BloodGroup(input.BloodGroup)
	if !bg.Valid() {
		return nil, "", "", fmt.Errorf("%w: blood group %q", ErrInvalidInput, input.BloodGroup)
	}

	// Every registration starts as an active donor. Promotion to
	// volunteer or admin happens only through the admin path.
	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PhoneNumber:  input.Phone,
		PasswordHash: string(hash),
		BloodGroup:   bg,
		District:     input.District,
		Upazila:      input.Upazila,
		Role:         domain.RoleDonor,
		Status:       domain.UserStatusActive,
		AvatarURL:    input.AvatarURL,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", "", ErrEmailTaken
		}
		return nil, "", "", err
	}

	access, refresh, err := s.tokenPair(user)
	return user, access, refresh, err
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	return s.tokenPair(user)
}

// ExchangeIdentityToken turns a verified provider identity into API tokens.
// First sight of an email provisions a donor profile, mirroring Register.
func (s *authService) ExchangeIdentityToken(ctx context.Context, idToken string) (*domain.User, string, string, error) {
	if s.verifier == nil {
		return nil, "", "", security.ErrUnverifiedIdentity
	}

	ident, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.userRepo.GetByEmail(ctx, ident.Email)
	if errors.Is(err, sql.ErrNoRows) {
		user = &domain.User{
			Email:     ident.Email,
			Name:      ident.Name,
			Role:      domain.RoleDonor,
			Status:    domain.UserStatusActive,
			AvatarURL: ident.PhotoURL,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", "", err
		}
		logger.Info("Provisioned user from identity provider", "email", ident.Email)
	} else if err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.tokenPair(user)
	return user, access, refresh, err
}

func (s *authService) Refresh(ctx context.Context, userID int32) (string, string, error) {
	// Re-load the user so a role or status change since the refresh token
	// was minted lands in the new access token.
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	return s.tokenPair(user)
}

func (s *authService) tokenPair(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
