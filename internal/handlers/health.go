package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterHealthRoutes registers the liveness routes
func RegisterHealthRoutes(g *echo.Group) {
	g.GET("/", Root)
	g.GET("/health", HealthCheck)
}

// Root answers the plain-text liveness banner
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "forum server running")
}

// HealthCheck reports service health as JSON
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
