package echo

import (
	"net/http"

	"github.com/fync-dev/fync-auth/dto"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/fync-dev/fync-auth/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RegisterEmailHandler handles first-party registration. The body is
// multipart form data with an optional profile image part.
func (a *AuthAPI) RegisterEmailHandler(c echo.Context) error {
	var req dto.RegisterEmailRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	avatar, err := profileImage(c, "profilePicture")
	if err != nil {
		return writeError(c, err)
	}

	user, token, err := a.authService.RegisterEmailUser(c.Request().Context(), &req, avatar)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.SessionResponse{
		Message:     "User created",
		User:        user,
		AccessToken: token.AccessToken,
	})
}

// LoginEmailHandler handles first-party login. A missing account and a
// wrong password both answer 401 so the two are not distinguishable at
// status granularity.
func (a *AuthAPI) LoginEmailHandler(c echo.Context) error {
	var req dto.LoginEmailRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	user, token, err := a.authService.LoginEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if kind := errors.KindOf(err); kind == errors.KindNotFound || kind == errors.KindAuthentication {
			return c.JSON(http.StatusUnauthorized, errors.AsError(err))
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SessionResponse{
		Message:     "User logged in",
		User:        user,
		AccessToken: token.AccessToken,
	})
}

// CheckEmailHandler reports whether an email is still available.
func (a *AuthAPI) CheckEmailHandler(c echo.Context) error {
	var req dto.CheckEmailRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	available, err := a.authService.EmailAvailable(c.Request().Context(), req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.CheckEmailResponse{Available: available})
}

// MeHandler resolves the bearer token attached by the authn middleware to
// its token record, serving downstream consumers that validate tokens.
func (a *AuthAPI) MeHandler(c echo.Context) error {
	token := middleware.TokenFromContext(c)
	if token == nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrInvalidRequest)
	}
	return c.JSON(http.StatusOK, token)
}
