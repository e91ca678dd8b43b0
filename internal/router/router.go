package router

import (
	"github.com/anonto42/tweeter/backend/internal/handlers"
	"github.com/anonto42/tweeter/backend/internal/middleware"
	"github.com/anonto42/tweeter/backend/internal/pubsub"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/anonto42/tweeter/backend/internal/services"
	"github.com/anonto42/tweeter/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the routes are built from.
// Notifications defaults to the PostgreSQL sink; Publisher and Metrics may be nil.
type Dependencies struct {
	Postgres      *gorm.DB
	Notifications repositories.NotificationRepository
	Publisher     pubsub.NotificationPublisher
	Verifiers     []middleware.TokenVerifier
	Metrics       *metrics.Metrics
	Log           *logrus.Entry
}

// SetupRoutes migrates the schema, then configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	log := deps.Log
	if err := repositories.AutoMigrate(deps.Postgres); err != nil {
		return err
	}
	log.Info("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(deps.Postgres)
	artistRepo := repositories.NewPostgresArtistRepository(deps.Postgres)
	tweetRepo := repositories.NewPostgresTweetRepository(deps.Postgres)
	notificationRepo := deps.Notifications
	if notificationRepo == nil {
		notificationRepo = repositories.NewPostgresNotificationRepository(deps.Postgres)
	}

	// --- Initialize Services ---
	notificationService := services.NewNotificationService(notificationRepo, deps.Publisher, deps.Metrics, log)
	userService := services.NewUserService(userRepo, followRepo)
	followService := services.NewFollowService(userRepo, artistRepo, followRepo, notificationService, deps.Metrics)
	tweetService := services.NewTweetService(tweetRepo, userRepo)

	// Every /api/v1 route resolves the actor when a token is present; requireAuth rejects anonymous callers.
	api := e.Group("/api/v1", middleware.Authenticate(deps.Verifiers...))
	requireAuth := middleware.RequireAuth()

	api.GET("/timezones", handlers.GetAllTimezones)
	log.Info("Timezone routes configured.")

	handlers.NewUserHandler(userService).RegisterUserRoutes(api, requireAuth)
	log.Info("User routes configured.")

	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api, requireAuth)
	log.Info("Follow routes configured.")

	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api, requireAuth)
	log.Info("Notification routes configured.")

	handlers.NewTweetHandler(tweetService).RegisterTweetRoutes(api, requireAuth)
	log.Info("Tweet routes configured.")

	log.Info("All routes configured.")
	return nil
}
