package config

import (
	"github.com/anonto42/tweeter/backend/pkg/logger"
	"github.com/anonto42/tweeter/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// SetupMiddleware configures global Echo middleware. m may be nil.
func SetupMiddleware(e *echo.Echo, log *logrus.Entry, m *metrics.Metrics) {
	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if m != nil {
		e.Use(m.EchoMiddleware())
	}
}
