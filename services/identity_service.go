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

// discordCDNAvatar is the provider's CDN convention for profile pictures.
const discordCDNAvatar = "https://cdn.discordapp.com/avatars/%s/%s.png"

// IdentityService links third-party identity assertions to user accounts.
type IdentityService struct {
	userRepo domain.UserRepository
	assets   AssetStore
	issuer   TokenIssuer
}

func NewIdentityService(userRepo domain.UserRepository, assets AssetStore, issuer TokenIssuer) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
		assets:   assets,
		issuer:   issuer,
	}
}

// LoginDiscord resolves an external identity assertion against existing
// accounts, matching by email or by the recorded external id. An unknown
// identity is not an error: it returns (nil, nil, nil) and the caller
// decides whether to redirect to registration. When the matched account
// has no external id yet, the id is backfilled; the migration is one way
// and the id is never overwritten once set.
func (s *IdentityService) LoginDiscord(ctx context.Context, req *dto.DiscordLoginRequest) (*domain.User, *domain.AccessToken, error) {
	user, err := s.userRepo.GetUserByEmailOrDiscordID(ctx, req.Email, req.ID)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	if user.DiscordID == "" {
		if err := s.userRepo.SetDiscordID(ctx, user.ID, req.ID); err != nil {
			return nil, nil, err
		}
		user.DiscordID = req.ID
		log.Debug().Str("userID", user.ID).Msg("Backfilled discord id on user")
	}

	token, err := s.issuer.IssueDirectToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginSuccessTotal.Inc()
	audit.Log(audit.ActionLogin, user.ID, "", nil)
	log.Info().Str("userID", user.ID).Msg("User logged in via discord")
	return user.Sanitized(), token, nil
}

// RegisterDiscordUser creates a user from an external identity assertion.
// The profile picture defaults to the provider's CDN URL built from the
// external id and avatar hash; an uploaded image, when present, replaces
// it through the asset pipeline.
func (s *IdentityService) RegisterDiscordUser(ctx context.Context, req *dto.DiscordRegisterRequest, avatar []byte) (*domain.User, *domain.AccessToken, error) {
	user := &domain.User{
		Username:       req.Username,
		Name:           req.Name,
		Email:          req.Email,
		Providers:      []domain.Provider{domain.ProviderDiscord},
		DiscordID:      req.ID,
		ProfilePicture: fmt.Sprintf(discordCDNAvatar, req.ID, req.Avatar),
		Verified:       false,
	}
	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	if len(avatar) > 0 {
		name := fmt.Sprintf("prof%s%d", req.Name, time.Now().UnixMilli())
		imgURL, err := s.assets.OptimizeAndStore(ctx, avatar, name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to store profile picture: %w", err)
		}
		if err := s.userRepo.SetProfilePicture(ctx, user.ID, imgURL); err != nil {
			return nil, nil, err
		}
		user.ProfilePicture = imgURL
	}

	token, err := s.issuer.IssueDirectToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(string(domain.ProviderDiscord)).Inc()
	audit.Log(audit.ActionRegister, user.ID, "", nil)
	log.Info().Str("userID", user.ID).Str("username", user.Username).Msg("User registered via discord")
	return user.Sanitized(), token, nil
}
