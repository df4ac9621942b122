package dto

import (
	"strings"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/errors"
)

// AuthorizeRequest begins a code grant: the application asks for a code
// binding the user to the requested scopes.
type AuthorizeRequest struct {
	ClientID string   `json:"clientId"`
	UserID   string   `json:"userId"`
	Scopes   []string `json:"scopes"`
}

// Validate rejects unknown scope names at the boundary; the issuer itself
// stores whatever it is handed.
func (r *AuthorizeRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.NewValidation("clientId", "clientId is required")
	}
	if strings.TrimSpace(r.UserID) == "" {
		return errors.NewValidation("userId", "userId is required")
	}
	for _, name := range r.Scopes {
		if _, ok := domain.ResolveScope(name); !ok {
			return errors.NewValidation("scopes", "unknown scope: "+name)
		}
	}
	return nil
}

// ScopeSet converts the validated raw scope names.
func (r *AuthorizeRequest) ScopeSet() []domain.Scope {
	scopes := make([]domain.Scope, len(r.Scopes))
	for i, name := range r.Scopes {
		scopes[i] = domain.Scope(name)
	}
	return scopes
}

// AuthorizeResponse returns the authorization code id to be exchanged.
type AuthorizeResponse struct {
	Code string `json:"code"`
}

// TokenResponse is the standard grant response returned by token exchange
// and the direct-login paths.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// NewTokenResponse renders a stored access token as a grant response, with
// expires_in as the full validity window in seconds.
func NewTokenResponse(token *domain.AccessToken) *TokenResponse {
	return &TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   int(domain.AccessTokenTTL.Seconds()),
		Scope:       domain.JoinScopes(token.Scopes),
	}
}

// SessionResponse pairs a user summary with a freshly minted token, used
// by registration and login responses.
type SessionResponse struct {
	Message     string       `json:"message,omitempty"`
	User        *domain.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}
