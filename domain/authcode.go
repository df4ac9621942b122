package domain

import "time"

// AuthCodeTTL is the validity window of an authorization code, fixed at
// creation and never extended.
const AuthCodeTTL = 10 * time.Minute

// AuthCode represents an in-flight authorization grant. Its id doubles as
// the code value handed to the client for later exchange.
//
// A code transitions from unused to used exactly once; the flip is
// performed as a conditional update so that concurrent redemptions collapse
// to a single winner. Used or expired codes are retained for audit.
type AuthCode struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ClientID  string    `bson:"client_id"     json:"client_id"`
	UserID    string    `bson:"user_id"       json:"user_id"`
	Scopes    []Scope   `bson:"scopes"        json:"scopes"`
	ExpiresAt time.Time `bson:"expires_at"    json:"expires_at"`
	Used      bool      `bson:"used"          json:"used"`
	CreatedAt time.Time `bson:"created_at"    json:"created_at"`
}

// Expired reports whether the code is past its validity window at now.
func (c *AuthCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
