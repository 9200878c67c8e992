// Package main provides the entry point for the HTTP server.
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/festhive/registration/internal/blob"
	appConfig "github.com/festhive/registration/internal/config"
	"github.com/festhive/registration/internal/database"
	"github.com/festhive/registration/internal/database/migrate"
	"github.com/festhive/registration/internal/health"
	joinrequestRouter "github.com/festhive/registration/internal/joinrequest/router"
	"github.com/festhive/registration/internal/middleware"
	participationRouter "github.com/festhive/registration/internal/participation/router"
	reconcilerRouter "github.com/festhive/registration/internal/reconciler/router"
	teamRouter "github.com/festhive/registration/internal/team/router"
	"github.com/festhive/registration/pkg/logger"
)

func main() {
	// Missing .env is fine; the environment may be set by the deployment.
	_ = godotenv.Load()

	cfg := appConfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	db, err := database.New()
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			appLogger.Warnw("failed to close database connection", "error", closeErr)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		appLogger.Fatalw("failed to apply migrations", "error", err)
	}

	blobs, err := blob.NewS3Store(cfg.Blob)
	if err != nil {
		appLogger.Fatalw("failed to create blob store", "error", err)
	}

	gin.SetMode(cfg.GinMode)
	if err := middleware.RegisterValidators(); err != nil {
		appLogger.Fatalw("failed to register validators", "error", err)
	}

	r := gin.New()
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Recovery(appLogger))

	healthHandler := health.New(db, appLogger)
	r.GET("/health", healthHandler.Check)

	public := r.Group("/")
	joinrequestRouter.RegisterPublicRoutes(public, db, appLogger)

	authenticated := r.Group("/")
	authenticated.Use(middleware.Identity())
	participationRouter.RegisterRoutes(authenticated, db, blobs, appLogger)
	reconciler := reconcilerRouter.RegisterRoutes(authenticated, db, blobs, appLogger)
	teamRouter.RegisterRoutes(authenticated, db, reconciler, appLogger)
	joinrequestRouter.RegisterRoutes(authenticated, db, appLogger)

	address := cfg.Server.GetAddress()
	appLogger.Infow("starting server", "address", address)
	if err := r.Run(address); err != nil {
		appLogger.Fatalw("failed to start server", "error", err)
	}
}
