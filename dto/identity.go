package dto

import (
	"strings"

	"github.com/fync-dev/fync-auth/errors"
)

// DiscordLoginRequest carries an external identity assertion for login.
// Application credentials travel in the Basic Authorization header, not in
// the body.
type DiscordLoginRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (r *DiscordLoginRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.NewValidation("id", "external id is required")
	}
	if !validEmail(r.Email) {
		return errors.NewValidation("email", "a valid email is required")
	}
	return nil
}

// DiscordRegisterRequest carries the provider assertion for external
// registration. Avatar is the provider's avatar hash used to build the CDN
// profile-picture URL; an uploaded image, when present, overrides it.
type DiscordRegisterRequest struct {
	ID       string `json:"id" form:"id"`
	Avatar   string `json:"avatar,omitempty" form:"avatar"`
	Username string `json:"username" form:"username"`
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
}

func (r *DiscordRegisterRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.NewValidation("id", "external id is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		return errors.NewValidation("username", "username is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.NewValidation("name", "name is required")
	}
	if !validEmail(r.Email) {
		return errors.NewValidation("email", "a valid email is required")
	}
	return nil
}
