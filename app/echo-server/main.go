package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduPlatformReco/app/echo-server/router"
	"eduPlatformReco/business/recommend"
	"eduPlatformReco/domain"
	"eduPlatformReco/internal/middleware"
	"eduPlatformReco/internal/repository/csvfile"
	psqlRepo "eduPlatformReco/internal/repository/postgres"
	"eduPlatformReco/internal/rest"
	"eduPlatformReco/internal/scheduler"
	"eduPlatformReco/pkg/config"
	"eduPlatformReco/pkg/database"
	"eduPlatformReco/pkg/logger"
	"eduPlatformReco/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version, "env", cfg.App.Environment)

	manifest, err := config.LoadManifest(cfg.Dataset.ManifestPath)
	if err != nil {
		logger.Fatal("Failed to load dataset manifest", "error", err, "path", cfg.Dataset.ManifestPath)
	}

	source, err := datasetSource(cfg, manifest)
	if err != nil {
		logger.Fatal("Failed to init dataset source", "error", err, "source", cfg.Dataset.Source)
	}

	k := cfg.Dataset.NeighborsK
	if k == 0 {
		k = manifest.Neighbors
	}

	// Init service
	recommendService := recommend.NewService(source, k)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	err = recommendService.Reload(loadCtx)
	cancelLoad()
	if err != nil {
		logger.Fatal("Initial dataset load failed", "error", err)
	}

	var reloads *scheduler.ReloadScheduler
	if cfg.Dataset.ReloadCron != "" {
		reloads, err = scheduler.NewReloadScheduler(cfg.Dataset.ReloadCron, recommendService)
		if err != nil {
			logger.Fatal("Failed to schedule dataset reloads", "error", err)
		}
		reloads.Start()
	}

	metrics.Init()

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(recommendService)
	adminHandler := rest.NewAdminHandler(recommendService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", recommendationHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRecommendationRoutes(api, recommendationHandler)

	if cfg.JWT.SecretKey != "" {
		router.SetupAdminRoutes(api, adminHandler, middleware.AuthMiddleware(cfg.JWT.SecretKey), middleware.AdminOnly())
	} else {
		logger.Warn("JWT_SECRET not set, admin routes disabled")
	}

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if reloads != nil {
		reloads.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

func datasetSource(cfg *config.Config, manifest domain.DatasetManifest) (recommend.DatasetSource, error) {
	if cfg.Dataset.Source != config.SourcePostgres {
		if err := config.RequirePaths(manifest); err != nil {
			return nil, err
		}
		return csvfile.NewDatasetRepository(manifest), nil
	}

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Info("Database connected successfully")

	repo := psqlRepo.NewDatasetRepository(db, manifest)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}
