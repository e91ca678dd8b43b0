package handlers

import (
	"net/http"

	"github.com/anonto42/tweeter/backend/internal/timezones"
	"github.com/labstack/echo/v4"
)

// GetAllTimezones returns the precomputed timezone listing
func GetAllTimezones(c echo.Context) error {
	return c.JSON(http.StatusOK, timezones.All())
}
