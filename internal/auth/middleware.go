package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"recicla/internal/model"
)

// identityKey is the echo context key the gate stores the caller under.
const identityKey = "identity"

// Identity is the resolved caller attached to the request context by the
// authentication gate. Handlers and services receive it explicitly; there is
// no module-level current user.
type Identity struct {
	UserID uuid.UUID
	Role   model.Role
}

// IdentityFrom returns the caller identity resolved by Authenticate.
func IdentityFrom(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityKey).(Identity)
	return ident, ok
}

// Authenticate extracts and verifies the bearer token, rejecting the request
// before any business logic runs. Expired and malformed tokens both yield 401
// with distinct messages.
func Authenticate(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication token missing or malformed")
			}

			claims, err := jwtService.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(identityKey, Identity{UserID: claims.UserID, Role: claims.Role})
			return next(c)
		}
	}
}

// RequireRoles rejects with 403 when the resolved role is not in the
// endpoint's allow-set. Must run after Authenticate.
func RequireRoles(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication token missing or malformed")
			}
			for _, role := range allowed {
				if ident.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "access denied: insufficient permissions for this action")
		}
	}
}
