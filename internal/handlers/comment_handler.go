package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, guards Guards) {
	g.GET("/comments", h.GetComments)
	g.POST("/addComments", h.CreateComment, guards.Token)
	g.DELETE("/deleteComment/:id", h.DeleteComment, guards.Token)
}

// GetComments lists every comment
func (h *CommentHandler) GetComments(c echo.Context) error {
	comments, err := h.commentRepository.GetAllComments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateComment adds a comment by the authenticated user to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	comment := &models.Comment{
		PostID:         req.PostID,
		CommenterEmail: email,
		CommenterName:  req.CommenterName,
		Comment:        req.Comment,
	}
	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return notFoundOr(err, "Post not found")
	}

	return c.JSON(http.StatusOK, inserted(comment.ObjectID, comment.ID))
}

// DeleteComment deletes a comment and unlinks it from its post. Only the commenter or an admin
// may delete it.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	comment, err := h.commentRepository.GetCommentByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Comment not found")
	}
	if !strings.EqualFold(comment.CommenterEmail, email) {
		caller, err := h.userRepository.GetUserByEmail(ctx, email)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if caller == nil || !caller.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
		}
	}

	if err := h.commentRepository.DeleteComment(ctx, id); err != nil {
		return notFoundOr(err, "Comment not found")
	}
	return c.JSON(http.StatusOK, deletedOne())
}
