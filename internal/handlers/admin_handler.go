package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// StatsReader reports the dashboard document counts
type StatsReader interface {
	Stats(ctx context.Context) (*repositories.Stats, error)
}

// AdminHandler serves the admin dashboard and user privilege management
type AdminHandler struct {
	userRepository repositories.UserRepository
	stats          StatsReader
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository, stats StatsReader) *AdminHandler {
	return &AdminHandler{userRepository: userRepo, stats: stats}
}

// RegisterAdminRoutes registers admin-only routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group, guards Guards) {
	g.GET("/getDataAdmin", h.GetStats, guards.Token, guards.Admin)
	g.PATCH("/adminPriv", h.UpdatePrivileges, guards.Token, guards.Admin)
	g.DELETE("/adminPriv/:id", h.DeleteUser, guards.Token, guards.Admin)
}

// GetStats returns estimated counts of posts, users, comments and reports
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.stats.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// UpdatePrivileges changes a user's membership and/or role. Fields sent empty are left alone.
func (h *AdminHandler) UpdatePrivileges(c echo.Context) error {
	var req models.AdminPrivilegeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	set, err := privilegeUpdate(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userRepository.UpdatePrivileges(c.Request().Context(), req.ID, set); err != nil {
		return notFoundOr(err, "User not found")
	}
	return c.JSON(http.StatusOK, updatedOne())
}

// DeleteUser removes a user by id
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.userRepository.DeleteUser(c.Request().Context(), id); err != nil {
		return notFoundOr(err, "User not found")
	}
	return c.JSON(http.StatusOK, deletedOne())
}

// privilegeUpdate builds the $set document from the non-empty request fields. Empty strings,
// nulls and empty arrays are dropped; the role is stored lowercase.
func privilegeUpdate(req models.AdminPrivilegeRequest) (bson.M, error) {
	set := bson.M{}

	membership, err := privilegeValue("membershipStatus", req.MembershipStatus)
	if err != nil {
		return nil, err
	}
	if membership != "" {
		set["membershipStatus"] = membership
	}

	role, err := privilegeValue("role", req.Role)
	if err != nil {
		return nil, err
	}
	if role != "" {
		set["role"] = models.CanonicalRole(role)
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("nothing to update: membershipStatus or role is required")
	}
	return set, nil
}

func privilegeValue(field string, raw interface{}) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case []interface{}:
		if len(v) == 0 {
			return "", nil
		}
	}
	return "", fmt.Errorf("%s must be a string", field)
}
