package echo

import (
	stderrors "errors"
	"net/http"

	"github.com/fync-dev/fync-auth/dto"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DiscordLoginHandler resolves an external identity assertion. The calling
// application authenticates with a Basic Authorization header. An unknown
// identity answers 204 so the caller can redirect to registration; it is
// not an error.
func (a *AuthAPI) DiscordLoginHandler(c echo.Context) error {
	clientID, clientSecret := basicClientCredentials(c.Request())
	if _, err := a.oauthService.ValidateClient(c.Request().Context(), clientID, clientSecret); err != nil {
		// A wrong secret is indistinguishable from a missing app on this
		// surface.
		if stderrors.Is(err, errors.ErrInvalidClientSecret) {
			err = errors.ErrAppNotFound
		}
		return writeError(c, err)
	}

	var req dto.DiscordLoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	user, token, err := a.identityService.LoginDiscord(c.Request().Context(), &req)
	if err != nil {
		log.Warn().Err(err).Str("discordID", req.ID).Msg("Discord login failed")
		return writeError(c, err)
	}
	if user == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, dto.SessionResponse{
		User:        user,
		AccessToken: token.AccessToken,
	})
}

// DiscordRegisterHandler creates a user from an external identity
// assertion, with an optional uploaded profile image overriding the
// provider's CDN picture.
func (a *AuthAPI) DiscordRegisterHandler(c echo.Context) error {
	var req dto.DiscordRegisterRequest
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

	user, token, err := a.identityService.RegisterDiscordUser(c.Request().Context(), &req, avatar)
	if err != nil {
		log.Warn().Err(err).Str("discordID", req.ID).Msg("Discord registration failed")
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.SessionResponse{
		Message:     "User created",
		User:        user,
		AccessToken: token.AccessToken,
	})
}
