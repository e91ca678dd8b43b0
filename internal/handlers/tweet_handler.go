package handlers

import (
	"net/http"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// TweetHandler handles HTTP requests related to tweets
type TweetHandler struct {
	tweetService *services.TweetService
}

// NewTweetHandler creates a new TweetHandler
func NewTweetHandler(tweetService *services.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// RegisterTweetRoutes registers tweet routes; writes are guarded by requireAuth
func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/tweets", h.CreateTweet, requireAuth)
	g.GET("/tweets/:id", h.GetTweet)
	g.PATCH("/tweets/:id", h.UpdateTweet, requireAuth)
	g.GET("/users/:username/tweets", h.GetUserTweets)
}

func (h *TweetHandler) CreateTweet(c echo.Context) error {
	var req models.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet, err := h.tweetService.Create(c.Request().Context(), getUserIDFromContext(c), req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, tweet)
}

func (h *TweetHandler) GetTweet(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return toHTTPError(services.ErrTweetNotFound)
	}
	tweet, err := h.tweetService.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tweet)
}

func (h *TweetHandler) GetUserTweets(c echo.Context) error {
	tweets, err := h.tweetService.ListByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tweets)
}

// UpdateTweet edits the content of the actor's own tweet. Any owner field in the body is ignored.
func (h *TweetHandler) UpdateTweet(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return toHTTPError(services.ErrTweetNotFound)
	}

	var req models.UpdateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet, err := h.tweetService.UpdateContent(c.Request().Context(), getUserIDFromContext(c), id, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tweet)
}
