package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/platformlab/auth-api/internal/core/domain"
)

// TokenKey is the context key under which the raw bearer token is stored.
const TokenKey = "token"

// BearerToken extracts the raw token from the Authorization header and puts
// it in the request context. It rejects a missing or malformed header with
// ErrUnauthenticated but does not verify the token itself — verification is
// the auth service's job, so expiry and signature failures carry the same
// error regardless of which layer caught them.
func BearerToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return domain.ErrUnauthenticated
			}

			c.Set(TokenKey, parts[1])
			return next(c)
		}
	}
}
