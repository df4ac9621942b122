// Package dto defines the request and response payloads of the auth API.
// Every inbound payload is a typed struct with explicit field validation;
// handlers never reach into dynamic request bodies.
package dto

import (
	"strings"

	"github.com/fync-dev/fync-auth/errors"
)

// RegisterEmailRequest is the payload for first-party registration. The
// optional profile image arrives as a separate multipart part, not here.
type RegisterEmailRequest struct {
	Username    string `json:"username" form:"username"`
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	PhoneNumber string `json:"phone_number,omitempty" form:"phone_number"`
	Birthdate   string `json:"birthdate,omitempty" form:"birthdate"`
}

func (r *RegisterEmailRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.NewValidation("username", "username is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.NewValidation("name", "name is required")
	}
	if !validEmail(r.Email) {
		return errors.NewValidation("email", "a valid email is required")
	}
	if len(r.Password) < 8 {
		return errors.NewValidation("password", "password must be at least 8 characters")
	}
	return nil
}

// LoginEmailRequest is the payload for first-party login.
type LoginEmailRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginEmailRequest) Validate() error {
	if !validEmail(r.Email) {
		return errors.NewValidation("email", "a valid email is required")
	}
	if r.Password == "" {
		return errors.NewValidation("password", "password is required")
	}
	return nil
}

// CheckEmailRequest asks whether an email is still available.
type CheckEmailRequest struct {
	Email string `json:"email"`
}

func (r *CheckEmailRequest) Validate() error {
	if !validEmail(r.Email) {
		return errors.NewValidation("email", "a valid email is required")
	}
	return nil
}

// CheckEmailResponse reports email availability.
type CheckEmailResponse struct {
	Available bool `json:"available"`
}

// validEmail applies the minimal shape check the API enforces; real
// verification happens out of band.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	dot := strings.LastIndex(email, ".")
	return at > 0 && dot > at+1 && dot < len(email)-1
}
