// Package middleware provides the bearer-token authentication layer used
// by routes that require a validated access token.
package middleware

import (
	"net/http"
	"strings"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/fync-dev/fync-auth/services"
	"github.com/labstack/echo/v4"
)

// tokenContextKey is the echo context key under which the validated token
// is stored.
const tokenContextKey = "auth_token"

// BearerAuth returns an echo middleware that validates the Authorization
// bearer token and attaches the resolved access token to the context.
func BearerAuth(tokenService *services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, errors.ErrInvalidRequest)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errors.ErrInvalidRequest)
			}

			token, err := tokenService.ValidateAccessToken(c.Request().Context(), parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errors.AsError(err))
			}

			c.Set(tokenContextKey, token)
			return next(c)
		}
	}
}

// TokenFromContext returns the access token attached by BearerAuth, or nil.
func TokenFromContext(c echo.Context) *domain.AccessToken {
	token, _ := c.Get(tokenContextKey).(*domain.AccessToken)
	return token
}
