package middleware

import (
	"errors"
	"net/http"

	"github.com/anonto42/forum-server/internal/auth"
	"github.com/anonto42/forum-server/internal/models"
	"github.com/labstack/echo/v4"
)

// Context keys set by the guards
const (
	userKey          = "user"
	adminKey         = "admin"
	firebaseEmailKey = "firebaseEmail"
)

// JWTAuthMiddleware checks for a valid token in the cookie or Authorization header and stores
// the claims in the context.
func JWTAuthMiddleware(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := auth.FromRequest(c.Request())
			if err != nil {
				if errors.Is(err, auth.ErrTokenMissing) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Token not found")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			c.Set(userKey, claims)
			return next(c)
		}
	}
}

// Claims returns the claims stored by JWTAuthMiddleware
func Claims(c echo.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := c.Get(userKey).(*models.JwtCustomClaims)
	return claims, ok && claims != nil
}

// AdminUser returns the user loaded by AdminMiddleware
func AdminUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(adminKey).(*models.User)
	return user, ok && user != nil
}
