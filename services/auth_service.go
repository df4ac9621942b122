package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/dto"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/fync-dev/fync-auth/internal/audit"
	"github.com/fync-dev/fync-auth/internal/metrics"
	"github.com/rs/zerolog/log"
)

// TokenIssuer mints access tokens outside the code grant. Implemented by
// OAuthService.
type TokenIssuer interface {
	IssueDirectToken(ctx context.Context, userID string) (*domain.AccessToken, error)
}

// AuthService implements first-party registration and login on email and
// password.
type AuthService struct {
	userRepo domain.UserRepository
	hasher   PasswordHasher
	assets   AssetStore
	issuer   TokenIssuer
}

func NewAuthService(userRepo domain.UserRepository, hasher PasswordHasher, assets AssetStore, issuer TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		assets:   assets,
		issuer:   issuer,
	}
}

// RegisterEmailUser creates a user from the email registration form. A
// collision on email or username is rejected with a message naming the
// field that collided. avatar, when non-empty, goes through the asset
// pipeline and the resulting URL is stored.
func (s *AuthService) RegisterEmailUser(ctx context.Context, req *dto.RegisterEmailRequest, avatar []byte) (*domain.User, *domain.AccessToken, error) {
	existing, err := s.userRepo.GetUserByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil && !stderrors.Is(err, errors.ErrUserNotFound) {
		return nil, nil, err
	}
	if existing != nil {
		field := "Username"
		if existing.Email == req.Email {
			field = "Email"
		}
		return nil, nil, errors.NewDuplicateUser(field)
	}

	var imgURL string
	if len(avatar) > 0 {
		name := fmt.Sprintf("prof%s%d", req.Name, time.Now().UnixMilli())
		imgURL, err = s.assets.OptimizeAndStore(ctx, avatar, name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to store profile picture: %w", err)
		}
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:       req.Username,
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hashed,
		Providers:      []domain.Provider{domain.ProviderEmail},
		ProfilePicture: imgURL,
		PhoneNumber:    req.PhoneNumber,
		Birthdate:      req.Birthdate,
		Verified:       false,
	}
	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	token, err := s.issuer.IssueDirectToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(string(domain.ProviderEmail)).Inc()
	audit.Log(audit.ActionRegister, user.ID, "", nil)
	log.Info().Str("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user.Sanitized(), token, nil
}

// LoginEmail verifies an email/password pair and mints a direct token. A
// missing user and a user without a password hash fail the same way.
func (s *AuthService) LoginEmail(ctx context.Context, email, password string) (*domain.User, *domain.AccessToken, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		metrics.LoginFailureTotal.Inc()
		audit.Log(audit.ActionLogin, "", "", err)
		return nil, nil, err
	}
	if user.PasswordHash == "" {
		metrics.LoginFailureTotal.Inc()
		audit.Log(audit.ActionLogin, user.ID, "", errors.ErrUserNotFound)
		return nil, nil, errors.ErrUserNotFound
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		metrics.LoginFailureTotal.Inc()
		audit.Log(audit.ActionLogin, user.ID, "", errors.ErrInvalidPassword)
		return nil, nil, errors.ErrInvalidPassword
	}

	token, err := s.issuer.IssueDirectToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginSuccessTotal.Inc()
	audit.Log(audit.ActionLogin, user.ID, "", nil)
	log.Info().Str("userID", user.ID).Msg("User logged in")
	return user.Sanitized(), token, nil
}

// EmailAvailable reports whether no user holds the given email yet.
func (s *AuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
