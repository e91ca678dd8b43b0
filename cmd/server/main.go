package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/tweeter/backend/internal/middleware"
	"github.com/anonto42/tweeter/backend/internal/pubsub"
	"github.com/anonto42/tweeter/backend/internal/repositories"
	"github.com/anonto42/tweeter/backend/internal/router"
	"github.com/anonto42/tweeter/backend/internal/validators"
	"github.com/anonto42/tweeter/backend/pkg/config"
	"github.com/anonto42/tweeter/backend/pkg/firebase"
	"github.com/anonto42/tweeter/backend/pkg/logger"
	"github.com/anonto42/tweeter/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New("tweeter-api", "info").WithError(err).Fatal("Failed to load configuration")
	}
	log := logger.New("tweeter-api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize databases")
	}
	defer db.CloseDB()

	m := metrics.NewMetrics()
	deps := router.Dependencies{
		Postgres:  db.Postgres,
		Verifiers: []middleware.TokenVerifier{middleware.NewJWTVerifier(cfg.JWTSecret)},
		Metrics:   m,
		Log:       log,
	}

	if cfg.NotificationStore == config.NotificationStoreMongo {
		mongoRepo := repositories.NewMongoNotificationRepository(db.Mongo.Database(cfg.MongoDatabase))
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			log.WithError(err).Fatal("Failed to prepare MongoDB notification store")
		}
		deps.Notifications = mongoRepo
		log.Info("Notifications stored in MongoDB.")
	}

	if cfg.RedisURL != "" {
		publisher, err := pubsub.NewRedisPublisher(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize Redis publisher")
		}
		defer publisher.Close()
		deps.Publisher = publisher
		log.Info("Notifications published to Redis.")
	}

	// Firebase ID tokens are accepted alongside local JWTs when credentials are configured
	if cfg.FirebaseCredentialsPath != "" {
		authClient, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize Firebase")
		}
		userRepo := repositories.NewPostgresUserRepository(db.Postgres)
		deps.Verifiers = append(deps.Verifiers, middleware.NewFirebaseVerifier(authClient, userRepo))
		log.Info("Firebase ID tokens accepted.")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, log, m)
	if err := router.SetupRoutes(e, deps); err != nil {
		log.WithError(err).Fatal("Failed to set up routes")
	}

	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: m.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server stopped")
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Metrics server shutdown failed")
	}
}
