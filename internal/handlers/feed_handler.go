package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/forum-server/internal/feed"
	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the joined post listings
type FeedHandler struct {
	feedRepository repositories.FeedRepository
	userRepository repositories.UserRepository
	settings       feed.Settings
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedRepo repositories.FeedRepository, userRepo repositories.UserRepository, settings feed.Settings) *FeedHandler {
	return &FeedHandler{
		feedRepository: feedRepo,
		userRepository: userRepo,
		settings:       settings,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, guards Guards) {
	g.GET("/mergedAllData", h.MergedFeed)
	g.POST("/posts/popularity", h.PostsByVotes)
	g.GET("/myPost/:email", h.PostsByAuthor, guards.Token)
}

// MergedFeed returns posts joined with author and comments in the mode the query selects
func (h *FeedHandler) MergedFeed(c echo.Context) error {
	q, err := h.settings.Resolve(c.QueryParams())
	if err != nil {
		return queryError(err)
	}

	posts, err := h.feedRepository.MergedFeed(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// PostsByVotes returns every post ordered by net votes, most liked or most disliked first
func (h *FeedHandler) PostsByVotes(c echo.Context) error {
	sort, err := feed.ParseVoteSort(c.QueryParam("filter"))
	if err != nil {
		return queryError(err)
	}

	posts, err := h.feedRepository.PostsByVotes(c.Request().Context(), sort)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// PostsByAuthor returns the joined posts of the user with the given email
func (h *FeedHandler) PostsByAuthor(c echo.Context) error {
	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), pathParam(c, "email"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusOK, []models.FeedPost{})
		}
		return err
	}

	posts, err := h.feedRepository.PostsByAuthor(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func queryError(err error) error {
	if errors.Is(err, feed.ErrInvalidQuery) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}
