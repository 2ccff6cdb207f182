package handlers

import (
	"net/http"

	"github.com/anonto42/forum-server/internal/middleware"
	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AnnouncementHandler handles admin announcements
type AnnouncementHandler struct {
	announcementRepository repositories.AnnouncementRepository
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(announcementRepo repositories.AnnouncementRepository) *AnnouncementHandler {
	return &AnnouncementHandler{announcementRepository: announcementRepo}
}

// RegisterAnnouncementRoutes registers announcement routes
func (h *AnnouncementHandler) RegisterAnnouncementRoutes(g *echo.Group, guards Guards) {
	g.GET("/getAnn", h.GetAnnouncements)
	g.POST("/announcement", h.CreateAnnouncement, guards.Token, guards.Admin)
}

// GetAnnouncements lists announcements, newest first
func (h *AnnouncementHandler) GetAnnouncements(c echo.Context) error {
	announcements, err := h.announcementRepository.GetAnnouncements(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, announcements)
}

// CreateAnnouncement publishes an announcement signed by the calling admin
func (h *AnnouncementHandler) CreateAnnouncement(c echo.Context) error {
	admin, ok := middleware.AdminUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
	}

	var req models.CreateAnnouncementRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	ann := &models.Announcement{
		AdminID:       admin.ID,
		Title:         req.Title,
		Announcements: req.Announcements,
		Image:         req.Image,
	}
	if err := h.announcementRepository.CreateAnnouncement(c.Request().Context(), ann); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inserted(ann.ObjectID, ann.ID))
}
