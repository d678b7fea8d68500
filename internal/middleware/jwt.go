package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/store-rating-platform/internal/utils"
)

// identityKey is the context key under which JWTAuth stores the verified
// caller identity.
const identityKey = "identity"

// Identity is the verified caller attached to the request context after
// authentication. It carries the exact claims of the session token; no
// database lookup re-validates them — a token is trusted until it expires.
type Identity struct {
	ID    string
	Email string
	Role  string
	Name  string
}

// CurrentIdentity returns the Identity stored by JWTAuth, or false when the
// request never passed authentication (e.g. on an unprotected route).
func CurrentIdentity(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the typed caller identity into the request context. The
// provided secret must match the one used when issuing tokens. This
// middleware wraps every protected route; handlers read the caller via
// CurrentIdentity. A missing, malformed, tampered or expired token is
// rejected with 401 before any handler runs.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			// Store the typed identity plus the two flat keys older
			// middleware (cache keying) reads.
			c.Set(identityKey, Identity{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
				Name:  claims.Name,
			})
			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
