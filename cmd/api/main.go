package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/brewradar/brewradar/internal/adapters/catalog"
	"github.com/brewradar/brewradar/internal/adapters/http"
	natsadapter "github.com/brewradar/brewradar/internal/adapters/nats"
	"github.com/brewradar/brewradar/internal/adapters/postgres"
	"github.com/brewradar/brewradar/internal/adapters/push"
	temporaladapter "github.com/brewradar/brewradar/internal/adapters/temporal"
	"github.com/brewradar/brewradar/internal/adapters/valkey"
	"github.com/brewradar/brewradar/internal/core/ports"
	"github.com/brewradar/brewradar/internal/core/usecases"
	"github.com/brewradar/brewradar/internal/pkg/config"
	"github.com/brewradar/brewradar/internal/pkg/logging"
	"github.com/brewradar/brewradar/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("brewradar-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = cfg.Logging.Level
	}
	logging.Setup(logLevel, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	// NATS
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer nc.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Partner catalog
	catalogClient := catalog.New(cfg.Catalog.BaseURL)

	// Temporal: the stamp service starts the reward workflow here. Optional —
	// without it a completed album page simply issues no reward.
	var workflowStarter ports.WorkflowStarter
	starter, err := temporaladapter.NewStarter(cfg.Temporal.HostPort)
	if err != nil {
		slog.Warn("temporal unavailable, reward workflows disabled", "error", err)
	} else {
		defer starter.Close()
		workflowStarter = starter
	}

	// Repos
	storeRepo := postgres.NewStoreRepo(db)
	branchRepo := postgres.NewBranchRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	eventRepo := postgres.NewEventRepo(db)
	stampRepo := postgres.NewStampRepo(db)
	rewardRepo := postgres.NewRewardRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)

	// Use cases
	notifier := push.NewLogNotifier(slog.Default())
	branchSvc := usecases.NewBranchService(branchRepo, catalogClient, cache)
	storeSvc := usecases.NewStoreService(storeRepo, cache)
	reviewSvc := usecases.NewReviewService(reviewRepo, branchRepo, nc)
	eventSvc := usecases.NewEventService(eventRepo, cache)
	stampSvc := usecases.NewStampService(stampRepo, catalogClient, workflowStarter)
	rewardSvc := usecases.NewRewardService(rewardRepo, notifier, nc)
	favoriteSvc := usecases.NewFavoriteService(favoriteRepo)

	deps := &http.Dependencies{
		Branches:   branchSvc,
		Stores:     storeSvc,
		Reviews:    reviewSvc,
		Events:     eventSvc,
		Stamps:     stampSvc,
		Rewards:    rewardSvc,
		Favorites:  favoriteSvc,
		Routes:     usecases.NewRouteService(branchSvc),
		NATS:       natsConn,
		DB:         db,
		Cache:      cache,
		AdminToken: os.Getenv("BREWRADAR_ADMIN_TOKEN"),
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "BrewRadar API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.brewradar.app",
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-User-ID, X-Admin-Token",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
