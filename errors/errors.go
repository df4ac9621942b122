// Package errors defines the error taxonomy of the credential issuance
// core. Every failure surfaced to a caller is one of five kinds; handlers
// map kinds to HTTP statuses and render the structured payload, never a
// stack trace or internal identifier.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindValidation covers malformed or missing input fields. Reported
	// with field-level detail, never logged as a server fault.
	KindValidation Kind = iota
	// KindNotFound covers absent users, apps and codes.
	KindNotFound
	// KindConflict covers duplicate users and already-used codes.
	KindConflict
	// KindAuthentication covers bad passwords and bad client secrets.
	KindAuthentication
	// KindStore covers unreachable or failing storage. Never retried
	// internally; surfaced as a generic server fault.
	KindStore
)

// Error is the structured error payload returned to callers.
type Error struct {
	Kind        Kind   `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
	// Field names the offending input field for validation and conflict
	// errors, e.g. "Email" vs "Username" on duplicate registration.
	Field string `json:"field,omitempty"`

	cause error
}

// Unwrap exposes the underlying cause for logging; it never reaches the
// payload.
func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is lets sentinel comparisons match wrapped copies carrying extra detail.
func (e *Error) Is(target error) bool {
	var te *Error
	if !errors.As(target, &te) {
		return false
	}
	return e.Code == te.Code
}

// Sentinel errors for the issuance core. Compare with errors.Is.
var (
	ErrInvalidRequest      = &Error{Kind: KindValidation, Code: "invalid_request", Description: "Invalid request"}
	ErrUserNotFound        = &Error{Kind: KindNotFound, Code: "user_not_found", Description: "User not found"}
	ErrAppNotFound         = &Error{Kind: KindNotFound, Code: "app_not_found", Description: "App not found"}
	ErrCodeNotFound        = &Error{Kind: KindNotFound, Code: "code_not_found", Description: "Auth code not found"}
	ErrCodeAlreadyUsed     = &Error{Kind: KindConflict, Code: "code_already_used", Description: "Auth code already used"}
	ErrCodeExpired         = &Error{Kind: KindConflict, Code: "code_expired", Description: "Auth code expired"}
	ErrDuplicateUser       = &Error{Kind: KindConflict, Code: "duplicate_user", Description: "User already exists"}
	ErrInvalidPassword     = &Error{Kind: KindAuthentication, Code: "invalid_password", Description: "Invalid password"}
	ErrInvalidClientSecret = &Error{Kind: KindAuthentication, Code: "invalid_client_secret", Description: "Invalid client secret"}
	ErrTokenNotFound       = &Error{Kind: KindNotFound, Code: "token_not_found", Description: "Token not found"}
	ErrTokenExpired        = &Error{Kind: KindAuthentication, Code: "token_expired", Description: "Token expired"}
)

// NewValidation builds a field-level validation error.
func NewValidation(field, description string) *Error {
	return &Error{
		Kind:        KindValidation,
		Code:        "invalid_request",
		Description: description,
		Field:       field,
	}
}

// NewDuplicateUser reports a duplicate registration, naming the field that
// collided so the caller can correct it.
func NewDuplicateUser(field string) *Error {
	return &Error{
		Kind:        KindConflict,
		Code:        "duplicate_user",
		Description: fmt.Sprintf("User already exists. Please change your %s or login.", field),
		Field:       field,
	}
}

// NewStore wraps a storage failure as a generic server fault. The
// underlying error is for logs only and is not part of the payload.
func NewStore(err error) *Error {
	return &Error{
		Kind:        KindStore,
		Code:        "server_error",
		Description: "Storage unavailable",
		cause:       err,
	}
}

// KindOf extracts the Kind from err, defaulting to KindStore for errors
// outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// AsError coerces err into the payload form, wrapping out-of-taxonomy
// errors as a generic server fault.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewStore(err)
}

// HTTPStatus maps an error kind to the HTTP status handlers respond with.
// Authentication failures share one status so callers cannot distinguish
// "wrong password" from "no such account" at status granularity.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return 400
	case KindNotFound:
		return 404
	case KindConflict:
		return 400
	case KindAuthentication:
		return 401
	default:
		return 500
	}
}
