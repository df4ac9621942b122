// Package echo exposes the credential issuance core over HTTP.
package echo

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/fync-dev/fync-auth/errors"
	"github.com/fync-dev/fync-auth/middleware"
	"github.com/fync-dev/fync-auth/services"
	"github.com/labstack/echo/v4"
)

// maxProfileImageBytes bounds uploaded profile pictures.
const maxProfileImageBytes = 10 << 20

// AuthAPI holds the handler dependencies.
type AuthAPI struct {
	authService     *services.AuthService
	identityService *services.IdentityService
	oauthService    *services.OAuthService
	tokenService    *services.TokenService
}

// NewAuthAPI initializes the auth API.
func NewAuthAPI(
	authService *services.AuthService,
	identityService *services.IdentityService,
	oauthService *services.OAuthService,
	tokenService *services.TokenService,
) *AuthAPI {
	return &AuthAPI{
		authService:     authService,
		identityService: identityService,
		oauthService:    oauthService,
		tokenService:    tokenService,
	}
}

// RegisterRoutes registers the auth routes.
func (a *AuthAPI) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")
	g.POST("/email/register", a.RegisterEmailHandler)
	g.POST("/email", a.LoginEmailHandler)
	g.POST("/email/check", a.CheckEmailHandler)
	g.POST("/discord", a.DiscordLoginHandler)
	g.POST("/discord/register", a.DiscordRegisterHandler)
	g.POST("/authorize", a.AuthorizeHandler)
	g.POST("/access_token", a.TokenHandler)

	g.GET("/me", a.MeHandler, middleware.BearerAuth(a.tokenService))
}

// writeError renders an error as the structured payload with the status
// its kind maps to.
func writeError(c echo.Context, err error) error {
	e := errors.AsError(err)
	return c.JSON(errors.HTTPStatus(e), e)
}

// basicClientCredentials decodes a Basic Authorization header into a
// client id and secret pair. Both input channels, form fields and the
// header, are equivalent; the caller picks whichever is present.
func basicClientCredentials(r *http.Request) (clientID, clientSecret string) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", ""
	}
	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ""
	}
	pair := strings.SplitN(string(decoded), ":", 2)
	if len(pair) != 2 {
		return "", ""
	}
	return pair[0], pair[1]
}

// profileImage reads the optional multipart profile image, returning nil
// when the request carries none.
func profileImage(c echo.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fileHeader.Size > maxProfileImageBytes {
		return nil, errors.NewValidation(field, "profile image too large")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.NewValidation(field, "unreadable profile image")
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxProfileImageBytes+1))
	if err != nil {
		return nil, errors.NewValidation(field, "unreadable profile image")
	}
	if len(raw) > maxProfileImageBytes {
		return nil, errors.NewValidation(field, "profile image too large")
	}
	return raw, nil
}
