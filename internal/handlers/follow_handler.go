package handlers

import (
	"net/http"

	"github.com/anonto42/tweeter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/users/:username/follow", h.ToggleUserFollow, requireAuth)
	g.POST("/artists/:pk/follow", h.ToggleArtistFollow, requireAuth)
}

// ToggleUserFollow follows the named user, or unfollows them if already followed
func (h *FollowHandler) ToggleUserFollow(c echo.Context) error {
	user, err := h.followService.ToggleUserFollow(c.Request().Context(), getUserIDFromContext(c), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ToggleArtistFollow follows the artist, or unfollows it if already followed
func (h *FollowHandler) ToggleArtistFollow(c echo.Context) error {
	artistID, ok := parseID(c.Param("pk"))
	if !ok {
		return toHTTPError(services.ErrArtistNotFound)
	}

	artist, err := h.followService.ToggleArtistFollow(c.Request().Context(), getUserIDFromContext(c), artistID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, artist)
}
