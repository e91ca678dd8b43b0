package handlers

import (
	"strconv"

	"github.com/anonto42/tweeter/backend/internal/middleware"
	"github.com/anonto42/tweeter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

func getUserIDFromContext(c echo.Context) uint {
	return middleware.UserID(c)
}

// toHTTPError maps a service error onto an echo.HTTPError. Unmapped errors become 500s
// with the cause kept internal.
func toHTTPError(err error) error {
	code := services.StatusCode(err)
	if code >= 500 {
		return echo.NewHTTPError(code, "Internal server error").SetInternal(err)
	}
	return echo.NewHTTPError(code, err.Error())
}

// parseID parses a positive numeric path parameter
func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
