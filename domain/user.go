package domain

import "time"

// Provider names a linked identity source on a user record.
type Provider string

const (
	ProviderEmail   Provider = "email"
	ProviderDiscord Provider = "discord"
)

// User represents an end-user account.
//
// A user always has at least one provider. PasswordHash is set only when
// "email" is among the linked providers; externally registered users carry
// no password at all. DiscordID is backfilled once on the first external
// login that matches by email and is never overwritten afterwards.
type User struct {
	ID             string     `bson:"_id,omitempty"             json:"id"`
	Username       string     `bson:"username"                  json:"username"`
	Name           string     `bson:"name"                      json:"name"`
	Email          string     `bson:"email"                     json:"email"`
	PasswordHash   string     `bson:"password,omitempty"        json:"-"`
	Providers      []Provider `bson:"provider"                  json:"provider"`
	DiscordID      string     `bson:"discord_id,omitempty"      json:"discord_id,omitempty"`
	ProfilePicture string     `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	PhoneNumber    string     `bson:"phone_number,omitempty"    json:"phone_number,omitempty"`
	Birthdate      string     `bson:"birthdate,omitempty"       json:"birthdate,omitempty"`
	Verified       bool       `bson:"verified"                  json:"verified"`
	DevID          string     `bson:"dev_id,omitempty"          json:"dev_id,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"                json:"created_at"`
}

// HasProvider reports whether p is among the user's linked providers.
func (u *User) HasProvider(p Provider) bool {
	for _, lp := range u.Providers {
		if lp == p {
			return true
		}
	}
	return false
}

// Sanitized returns a copy of the user with confidential fields stripped,
// suitable for inclusion in API responses.
func (u *User) Sanitized() *User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}
