package handlers

import (
	"net/http"

	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the read-only category and tag lists
type CatalogHandler struct {
	catalogRepository repositories.CatalogRepository
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogRepo repositories.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalogRepository: catalogRepo}
}

// RegisterCatalogRoutes registers catalog routes
func (h *CatalogHandler) RegisterCatalogRoutes(g *echo.Group) {
	g.GET("/category", h.GetCategories)
	g.GET("/tags", h.GetTags)
}

// GetCategories lists the forum categories
func (h *CatalogHandler) GetCategories(c echo.Context) error {
	categories, err := h.catalogRepository.GetCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// GetTags lists the forum tags
func (h *CatalogHandler) GetTags(c echo.Context) error {
	tags, err := h.catalogRepository.GetTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}
