package middleware

import (
	"errors"
	"net/http"

	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AdminMiddleware lets the request through only when the authenticated user has the admin role.
// It must run after JWTAuthMiddleware.
func AdminMiddleware(users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Claims(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			user, err := users.GetUserByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
				}
				return err
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}

			c.Set(adminKey, user)
			return next(c)
		}
	}
}
