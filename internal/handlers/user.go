package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, guards Guards) {
	g.GET("/users", h.GetUsers)
	g.POST("/addUser", h.CreateUser)
	g.GET("/getDataA", h.GetProfile, guards.Token)
	g.GET("/api/check-auth/:email", h.CheckAdmin, guards.Token)
}

// GetUsers lists every user
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser registers a user the first time an email signs in. Repeat sign-ins are not errors.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		ProfileImage: req.ProfileImage,
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return c.JSON(http.StatusOK, echo.Map{"message": "User already exists", "insertedId": nil})
		}
		return err
	}

	return c.JSON(http.StatusOK, inserted(user.ObjectID, user.ID))
}

// GetProfile returns the authenticated user's own document
func (h *UserHandler) GetProfile(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		return notFoundOr(err, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

// CheckAdmin reports whether the authenticated user is an admin. Callers may only ask about
// themselves.
func (h *UserHandler) CheckAdmin(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}
	if pathParam(c, "email") != email {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"admin": false})
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": user.IsAdmin()})
}
