// The openwatch daemon resolves every branch's weekly schedule on a fixed
// interval and publishes an event whenever a branch crosses its open/close
// boundary. Map pins flip live off these events, without clients re-polling.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsadapter "github.com/brewradar/brewradar/internal/adapters/nats"
	"github.com/brewradar/brewradar/internal/adapters/postgres"
	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/usecases"
	"github.com/brewradar/brewradar/internal/pkg/config"
	"github.com/brewradar/brewradar/internal/pkg/logging"
	"github.com/brewradar/brewradar/internal/pkg/metrics"
)

func main() {
	cfg, err := config.Load("brewradar-openwatch")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, transitions will not be published", "error", err)
	} else {
		defer nc.Close()
	}

	branchRepo := postgres.NewBranchRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)

	svc := usecases.NewStatusWatchService(
		branchRepo,
		postgres.NewStatusRepo(db),
		nc,
	)

	// The rating rollup in the review request path is best-effort. This
	// durable consumer replays review events and reconciles the average, so
	// a rollup lost to a transient DB error heals on redelivery.
	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats subscriber unavailable, rating reconcile disabled", "error", err)
	} else {
		defer sub.Close()
		err := sub.SubscribeReviews(ctx, func(ctx context.Context, review *domain.Review) error {
			avg, err := reviewRepo.AverageForBranch(ctx, review.BranchID)
			if err != nil {
				return err
			}
			return branchRepo.UpdateRating(ctx, review.BranchID, avg)
		})
		if err != nil {
			slog.Warn("review subscription failed", "error", err)
		}
	}

	interval := time.Duration(cfg.Watcher.ScanIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("openwatch started", "interval", interval.String())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Run once immediately so a fresh deploy doesn't wait a full interval
	scan(ctx, svc)

	for {
		select {
		case <-ticker.C:
			scan(ctx, svc)
		case <-ctx.Done():
			return
		case sig := <-quit:
			slog.Info("shutting down openwatch", "signal", sig.String())
			cancel()
			return
		}
	}
}

func scan(ctx context.Context, svc *usecases.StatusWatchService) {
	now := time.Now()
	transitions, err := svc.Scan(ctx, now)
	if err != nil {
		slog.Error("scan failed", "error", err)
		return
	}
	if transitions > 0 {
		metrics.StatusTransitions.WithLabelValues("changed").Add(float64(transitions))
		slog.Info("status transitions published", "count", transitions)
	}
}
