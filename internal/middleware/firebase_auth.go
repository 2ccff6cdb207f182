package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// IdentityVerifier proves which email a sign-in provider token belongs to
type IdentityVerifier interface {
	VerifyEmail(ctx context.Context, idToken string) (string, error)
}

// FirebaseIdentityMiddleware verifies the Firebase ID token in the Authorization header and
// stores the verified email in the context. A nil verifier disables the check.
func FirebaseIdentityMiddleware(verifier IdentityVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if verifier == nil {
			return next
		}
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.SplitN(authHeader, " ", 2)
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			email, err := verifier.VerifyEmail(c.Request().Context(), strings.TrimSpace(tokenParts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			c.Set(firebaseEmailKey, email)
			return next(c)
		}
	}
}

// VerifiedEmail returns the email proven by FirebaseIdentityMiddleware, if it ran
func VerifiedEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(firebaseEmailKey).(string)
	return email, ok && email != ""
}
