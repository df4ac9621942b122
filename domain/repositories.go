package domain

import "context"

// UserRepository defines the storage contract for user records.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) (string, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// GetUserByEmailOrUsername resolves the duplicate-registration check;
	// either field matching an existing record returns it.
	GetUserByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
	// GetUserByEmailOrDiscordID resolves external logins, matching a linked
	// account by email or by the provider-specific external id.
	GetUserByEmailOrDiscordID(ctx context.Context, email, discordID string) (*User, error)
	// SetDiscordID backfills the external id on a user. The id is one-way:
	// once set it is never overwritten.
	SetDiscordID(ctx context.Context, userID, discordID string) error
	SetProfilePicture(ctx context.Context, userID, url string) error
	SetDevID(ctx context.Context, userID, devID string) error
}

// AppRepository defines the storage contract for OAuth applications.
// Apps are provisioned out of band and read-only to the issuance core.
type AppRepository interface {
	CreateApp(ctx context.Context, app *App) (string, error)
	GetAppByClientID(ctx context.Context, clientID string) (*App, error)
	ListApps(ctx context.Context) ([]*App, error)
}

// AuthCodeRepository defines the storage contract for authorization codes.
type AuthCodeRepository interface {
	CreateAuthCode(ctx context.Context, code *AuthCode) (string, error)
	// GetAuthCode looks a code up by id and client id together; a real code
	// queried with the wrong client id is indistinguishable from a missing
	// one.
	GetAuthCode(ctx context.Context, id, clientID string) (*AuthCode, error)
	// ClaimAuthCode flips used from false to true as a single conditional
	// update. It returns false when the code was already used, so at most
	// one concurrent caller observes true.
	ClaimAuthCode(ctx context.Context, id string) (bool, error)
}

// TokenRepository defines the storage contract for access tokens.
type TokenRepository interface {
	StoreToken(ctx context.Context, token *AccessToken) error
	GetTokenByValue(ctx context.Context, value string) (*AccessToken, error)
}

// DeveloperRepository defines the storage contract for developer records.
type DeveloperRepository interface {
	// EnsureDeveloper creates a developer record for userID if none exists
	// and returns it. Creation is guarded by a uniqueness constraint on
	// user_id, so concurrent calls converge on the same record.
	EnsureDeveloper(ctx context.Context, userID string) (*Developer, error)
	GetDeveloperByUserID(ctx context.Context, userID string) (*Developer, error)
}
