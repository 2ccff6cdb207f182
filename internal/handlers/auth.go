package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/forum-server/internal/auth"
	"github.com/anonto42/forum-server/internal/middleware"
	"github.com/anonto42/forum-server/internal/models"
	"github.com/labstack/echo/v4"
)

// Guards are the route-level middleware: Token verifies the cookie token, Admin additionally
// requires the admin role and is always applied after Token.
type Guards struct {
	Token    echo.MiddlewareFunc
	Admin    echo.MiddlewareFunc
	Identity echo.MiddlewareFunc
}

// AuthHandler issues and clears the session token
type AuthHandler struct {
	tokens *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, guards Guards) {
	if guards.Identity != nil {
		g.POST("/jwt", h.IssueToken, guards.Identity)
	} else {
		g.POST("/jwt", h.IssueToken)
	}
	g.GET("/logout", h.Logout)
}

// IssueToken signs a token for the email and sets it as an HttpOnly cookie. When a sign-in
// provider verified the caller, the body email must be the verified one.
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req models.TokenRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if verified, ok := middleware.VerifiedEmail(c); ok && !strings.EqualFold(verified, req.Email) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	}

	token, err := h.tokens.Sign(req.Email)
	if err != nil {
		return err
	}

	c.SetCookie(h.tokens.Cookie(token))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Logout expires the token cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.tokens.ClearCookie())
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// callerEmail returns the email of the verified token
func callerEmail(c echo.Context) (string, error) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	}
	return claims.Email, nil
}
