package handlers

import (
	"net/http"

	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, guards Guards) {
	g.GET("/posts", h.GetPosts)
	g.POST("/addPosts", h.CreatePost, guards.Token)
	g.PATCH("/updateLikes", h.Vote, guards.Token)
}

// GetPosts lists every post without joins
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post authored by the signed-in user and links it to them
func (h *PostHandler) CreatePost(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	author, err := h.userRepository.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		return notFoundOr(err, "Author not found")
	}
	if req.AuthorID != 0 && req.AuthorID != author.ID {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
	}

	post := &models.Post{
		AuthorID:    author.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return notFoundOr(err, "Author not found")
	}

	return c.JSON(http.StatusOK, inserted(post.ObjectID, post.ID))
}

// Vote adds one up or down vote to a post
func (h *PostHandler) Vote(c echo.Context) error {
	var req models.VoteRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if err := h.postRepository.IncrementVote(c.Request().Context(), req.ID, req.Vote); err != nil {
		return notFoundOr(err, "Post not found")
	}
	return c.JSON(http.StatusOK, updatedOne())
}
