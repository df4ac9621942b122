package echo

import (
	"net/http"

	"github.com/fync-dev/fync-auth/dto"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/fync-dev/fync-auth/services"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthorizeHandler begins a code grant: it validates the request shape and
// scope names at the boundary, then asks the issuer for a code.
func (a *AuthAPI) AuthorizeHandler(c echo.Context) error {
	var req dto.AuthorizeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	code, err := a.oauthService.Authorize(c.Request().Context(), req.ClientID, req.UserID, req.ScopeSet())
	if err != nil {
		log.Warn().Err(err).Str("clientID", req.ClientID).Msg("Authorize failed")
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.AuthorizeResponse{Code: code})
}

// TokenHandler exchanges an authorization code for an access token. Client
// credentials may arrive as form fields or in a Basic Authorization
// header; the two channels are equivalent.
func (a *AuthAPI) TokenHandler(c echo.Context) error {
	params := services.ExchangeParams{
		Code:         c.FormValue("code"),
		ClientID:     c.FormValue("client_id"),
		ClientSecret: c.FormValue("client_secret"),
		GrantType:    c.FormValue("grant_type"),
	}

	basicID, basicSecret := basicClientCredentials(c.Request())
	if params.ClientID == "" {
		params.ClientID = basicID
	}
	if params.ClientSecret == "" {
		params.ClientSecret = basicSecret
	}

	resp, err := a.oauthService.ExchangeCode(c.Request().Context(), params)
	if err != nil {
		log.Warn().Err(err).Str("clientID", params.ClientID).Msg("Token exchange failed")
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}
