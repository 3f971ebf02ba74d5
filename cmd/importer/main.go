// The importer syncs the partner branch catalog into our database. Run it on
// a schedule (cron / k8s CronJob); a run is idempotent.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/brewradar/brewradar/internal/adapters/catalog"
	"github.com/brewradar/brewradar/internal/adapters/postgres"
	"github.com/brewradar/brewradar/internal/core/usecases"
	"github.com/brewradar/brewradar/internal/pkg/config"
	"github.com/brewradar/brewradar/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load("brewradar-importer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	client := catalog.New(cfg.Catalog.BaseURL)
	svc := usecases.NewImportService(
		client,
		postgres.NewStoreRepo(db),
		postgres.NewBranchRepo(db),
		slog.Default(),
	)

	start := time.Now()
	result, err := svc.Sync(ctx)
	if err != nil {
		slog.Error("catalog sync failed", "error", err)
		os.Exit(1)
	}

	slog.Info("catalog sync finished",
		"stores", result.Stores,
		"branches", result.Branches,
		"took", time.Since(start).Round(time.Millisecond).String(),
	)
}
