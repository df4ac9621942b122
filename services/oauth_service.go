package services

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/fync-dev/fync-auth/cache"
	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/dto"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/fync-dev/fync-auth/internal/audit"
	"github.com/fync-dev/fync-auth/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OAuthService implements the authorization-code grant: code issuance,
// code-to-token exchange, direct token issuance and client verification.
type OAuthService struct {
	userRepo   domain.UserRepository
	appRepo    domain.AppRepository
	codeRepo   domain.AuthCodeRepository
	tokenRepo  domain.TokenRepository
	devRepo    domain.DeveloperRepository
	tokenCache cache.TokenCache

	// now is the clock; tests pin it.
	now func() time.Time
}

// NewOAuthService creates a new OAuthService. tokenCache may be nil when
// no cache backend is configured.
func NewOAuthService(
	userRepo domain.UserRepository,
	appRepo domain.AppRepository,
	codeRepo domain.AuthCodeRepository,
	tokenRepo domain.TokenRepository,
	devRepo domain.DeveloperRepository,
	tokenCache cache.TokenCache,
) *OAuthService {
	return &OAuthService{
		userRepo:   userRepo,
		appRepo:    appRepo,
		codeRepo:   codeRepo,
		tokenRepo:  tokenRepo,
		devRepo:    devRepo,
		tokenCache: tokenCache,
		now:        time.Now,
	}
}

// ValidateClient verifies application credentials: the app must exist and
// its stored secret must exactly match the supplied one. The comparison is
// constant-time.
func (s *OAuthService) ValidateClient(ctx context.Context, clientID, clientSecret string) (*domain.App, error) {
	app, err := s.appRepo.GetAppByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(app.ClientSecret), []byte(clientSecret)) != 1 {
		return nil, errors.ErrInvalidClientSecret
	}
	return app, nil
}

// Authorize records an application's intent to act for a user: it verifies
// that both exist, then persists a single-use code expiring in ten
// minutes. The scope set is stored verbatim; scope-name policing happens
// at the API boundary.
func (s *OAuthService) Authorize(ctx context.Context, clientID, userID string, scopes []domain.Scope) (string, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return "", err
	}
	if _, err := s.appRepo.GetAppByClientID(ctx, clientID); err != nil {
		return "", err
	}

	code := &domain.AuthCode{
		ClientID:  clientID,
		UserID:    userID,
		Scopes:    scopes,
		ExpiresAt: s.now().Add(domain.AuthCodeTTL),
		Used:      false,
	}
	id, err := s.codeRepo.CreateAuthCode(ctx, code)
	if err != nil {
		return "", err
	}

	metrics.AuthCodesIssuedTotal.Inc()
	audit.Log(audit.ActionAuthorize, userID, clientID, nil)
	log.Info().Str("clientID", clientID).Str("userID", userID).Msg("Auth code created")
	return id, nil
}

// ExchangeParams carries the token-exchange inputs. ClientSecret may have
// arrived in the request body or in a Basic Authorization header; by this
// point the two channels are equivalent.
type ExchangeParams struct {
	Code         string
	ClientID     string
	ClientSecret string
	GrantType    string
}

// ExchangeCode redeems an authorization code for an access token. The
// gates run in a fixed order and each failure short-circuits with its
// specific error; nothing is committed before the code is atomically
// claimed, except the idempotent developer promotion.
func (s *OAuthService) ExchangeCode(ctx context.Context, params ExchangeParams) (*dto.TokenResponse, error) {
	resp, err := s.exchangeCode(ctx, params)
	audit.Log(audit.ActionExchangeCode, "", params.ClientID, err)
	if err != nil {
		metrics.ExchangeFailuresTotal.WithLabelValues(errors.AsError(err).Code).Inc()
		return nil, err
	}
	metrics.TokensIssuedTotal.WithLabelValues(metrics.GrantAuthorizationCode).Inc()
	return resp, nil
}

func (s *OAuthService) exchangeCode(ctx context.Context, params ExchangeParams) (*dto.TokenResponse, error) {
	if params.Code == "" || params.ClientID == "" || params.GrantType == "" {
		return nil, errors.ErrInvalidRequest
	}

	code, err := s.codeRepo.GetAuthCode(ctx, params.Code, params.ClientID)
	if err != nil {
		return nil, err
	}

	if code.Used {
		return nil, errors.ErrCodeAlreadyUsed
	}
	if code.Expired(s.now()) {
		return nil, errors.ErrCodeExpired
	}

	if domain.ContainsScope(code.Scopes, domain.ScopeDevAdmin) {
		if err := s.ensureDeveloper(ctx, code.UserID); err != nil {
			return nil, err
		}
	}

	app, err := s.appRepo.GetAppByClientID(ctx, params.ClientID)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(app.ClientSecret), []byte(params.ClientSecret)) != 1 {
		return nil, errors.ErrInvalidClientSecret
	}

	if _, err := s.userRepo.GetUserByID(ctx, code.UserID); err != nil {
		return nil, err
	}

	// Claim before minting: the conditional flip is the only mutation that
	// decides the race, so the losing caller never sees a token.
	claimed, err := s.codeRepo.ClaimAuthCode(ctx, code.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, errors.ErrCodeAlreadyUsed
	}

	token, err := s.mintToken(ctx, code.ClientID, code.UserID, code.Scopes)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("clientID", code.ClientID).
		Str("userID", code.UserID).
		Str("scope", domain.JoinScopes(code.Scopes)).
		Msg("Auth code exchanged for access token")

	return dto.NewTokenResponse(token), nil
}

// IssueDirectToken mints an access token outside the code grant, used by
// the first-party registration and login paths. The token carries the
// default scope bundle and no client binding.
func (s *OAuthService) IssueDirectToken(ctx context.Context, userID string) (*domain.AccessToken, error) {
	token, err := s.mintToken(ctx, "", userID, domain.DefaultLoginScopes())
	if err != nil {
		return nil, err
	}
	metrics.TokensIssuedTotal.WithLabelValues(metrics.GrantDirect).Inc()
	return token, nil
}

// ensureDeveloper promotes the user: the developer record is created if
// absent (the store collapses concurrent creations to one) and back-linked
// on the user.
func (s *OAuthService) ensureDeveloper(ctx context.Context, userID string) error {
	dev, err := s.devRepo.EnsureDeveloper(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetDevID(ctx, userID, dev.ID); err != nil {
		return err
	}
	audit.Log(audit.ActionDevPromotion, userID, "", nil)
	log.Debug().Str("userID", userID).Str("devID", dev.ID).Msg("Developer promotion ensured")
	return nil
}

func (s *OAuthService) mintToken(ctx context.Context, clientID, userID string, scopes []domain.Scope) (*domain.AccessToken, error) {
	token := &domain.AccessToken{
		AccessToken: uuid.NewString(),
		TokenType:   domain.TokenTypeBearer,
		ClientID:    clientID,
		UserID:      userID,
		Scopes:      scopes,
		ExpiresAt:   s.now().Add(domain.AccessTokenTTL),
	}
	if err := s.tokenRepo.StoreToken(ctx, token); err != nil {
		return nil, err
	}

	if s.tokenCache != nil {
		if err := s.tokenCache.Set(ctx, token); err != nil {
			// Cache population is best effort; the store remains the
			// source of truth.
			log.Warn().Err(err).Msg("Failed to cache freshly minted token")
		}
	}
	return token, nil
}
