package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/fync-dev/fync-auth/cache"
	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/rs/zerolog/log"
)

// TokenService validates bearer tokens for downstream consumers. Expiry is
// evaluated lazily at validation time; no reaper runs anywhere.
type TokenService struct {
	tokenRepo  domain.TokenRepository
	tokenCache cache.TokenCache

	now func() time.Time
}

// NewTokenService creates a new TokenService. tokenCache may be nil.
func NewTokenService(tokenRepo domain.TokenRepository, tokenCache cache.TokenCache) *TokenService {
	return &TokenService{
		tokenRepo:  tokenRepo,
		tokenCache: tokenCache,
		now:        time.Now,
	}
}

// ValidateAccessToken resolves a bearer token value to its stored record,
// consulting the cache before the store. Expired tokens fail with
// ErrTokenExpired regardless of where they were found.
func (s *TokenService) ValidateAccessToken(ctx context.Context, value string) (*domain.AccessToken, error) {
	if value == "" {
		return nil, errors.ErrInvalidRequest
	}

	token, err := s.lookup(ctx, value)
	if err != nil {
		return nil, err
	}

	if token.Expired(s.now()) {
		return nil, errors.ErrTokenExpired
	}
	return token, nil
}

func (s *TokenService) lookup(ctx context.Context, value string) (*domain.AccessToken, error) {
	if s.tokenCache != nil {
		token, err := s.tokenCache.Get(ctx, value)
		if err == nil {
			return token, nil
		}
		if !stderrors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Msg("Token cache lookup failed, falling back to store")
		}
	}

	token, err := s.tokenRepo.GetTokenByValue(ctx, value)
	if err != nil {
		return nil, err
	}

	if s.tokenCache != nil {
		if cacheErr := s.tokenCache.Set(ctx, token); cacheErr != nil {
			log.Warn().Err(cacheErr).Msg("Failed to cache token after store lookup")
		}
	}
	return token, nil
}
