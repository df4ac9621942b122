package domain

import "time"

// AccessTokenTTL is the validity window of every issued access token.
const AccessTokenTTL = 5 * 24 * time.Hour

// TokenTypeBearer is the only token type issued by this service.
const TokenTypeBearer = "Bearer"

// AccessToken is a bearer credential binding an application and a user to
// a set of granted scopes. The token value is opaque and unique across all
// issued tokens. Tokens are immutable after creation and expire passively;
// expiry is evaluated at validation time, never by a reaper.
type AccessToken struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	AccessToken string    `bson:"access_token"  json:"access_token"`
	TokenType   string    `bson:"token_type"    json:"token_type"`
	ClientID    string    `bson:"client_id"     json:"client_id"`
	UserID      string    `bson:"user_id"       json:"user_id"`
	Scopes      []Scope   `bson:"scopes"        json:"scopes"`
	ExpiresAt   time.Time `bson:"expires_at"    json:"expires_at"`
	CreatedAt   time.Time `bson:"created_at"    json:"created_at"`
}

// Expired reports whether the token is past its validity window at now.
func (t *AccessToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
