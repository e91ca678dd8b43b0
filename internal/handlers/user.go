package handlers

import (
	"net/http"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user routes. g must run the Authenticate middleware;
// requireAuth guards the current-user routes.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/me", h.GetProfile, requireAuth)
	g.PUT("/users/me", h.ReplaceProfile, requireAuth)
	g.PATCH("/users/me", h.UpdateProfile, requireAuth)
	g.GET("/users/:username", h.GetUser)
	g.GET("/users/:username/followings", h.GetFollowings)
	g.GET("/users/:username/followers", h.GetFollowers)
	g.GET("/users/:username/artists", h.GetFollowedArtists)
}

// SearchUsers lists users, followed ones first for an authenticated actor
func (h *UserHandler) SearchUsers(c echo.Context) error {
	filter := models.UserSearchFilter{
		FirstNameContains: c.QueryParam("first_name__icontains"),
		UsernameContains:  c.QueryParam("username__icontains"),
		Ordering:          c.QueryParam("ordering"),
	}

	users, err := h.userService.Search(c.Request().Context(), getUserIDFromContext(c), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns the full record of the named user
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetFollowings(c echo.Context) error {
	users, err := h.userService.ListFollowings(c.Request().Context(), getUserIDFromContext(c), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetFollowers(c echo.Context) error {
	users, err := h.userService.ListFollowers(c.Request().Context(), getUserIDFromContext(c), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetFollowedArtists(c echo.Context) error {
	artists, err := h.userService.ListFollowedArtists(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, artists)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetProfile(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return h.applyProfile(c, req)
}

// ReplaceProfile replaces every editable field of the authenticated user's profile
func (h *UserHandler) ReplaceProfile(c echo.Context) error {
	var req models.ReplaceProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return h.applyProfile(c, req.ToUpdate())
}

func (h *UserHandler) applyProfile(c echo.Context, req models.UpdateProfileRequest) error {
	user, err := h.userService.UpdateProfile(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}
