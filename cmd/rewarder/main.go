// The rewarder worker executes the stamp reward workflow: pick an offer,
// issue a coupon, notify the user, with compensation if a later step fails.
package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/brewradar/brewradar/internal/adapters/nats"
	"github.com/brewradar/brewradar/internal/adapters/postgres"
	"github.com/brewradar/brewradar/internal/adapters/push"
	temporaladapter "github.com/brewradar/brewradar/internal/adapters/temporal"
	"github.com/brewradar/brewradar/internal/core/usecases"
	"github.com/brewradar/brewradar/internal/pkg/config"
	"github.com/brewradar/brewradar/internal/pkg/logging"
	"github.com/brewradar/brewradar/internal/workflows"
)

func main() {
	cfg, err := config.Load("brewradar-rewarder")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, reward events will not be published", "error", err)
	} else {
		defer nc.Close()
	}

	c, err := client.Dial(client.Options{
		HostPort: cfg.Temporal.HostPort,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	branchRepo := postgres.NewBranchRepo(db)
	rewardRepo := postgres.NewRewardRepo(db)
	notifier := push.NewLogNotifier(slog.Default())
	rewardSvc := usecases.NewRewardService(rewardRepo, notifier, nc)

	w := worker.New(c, temporaladapter.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.StampRewardWorkflow)
	w.RegisterActivity(&workflows.RewardActivities{
		RewardService: rewardSvc,
		Branches:      branchRepo,
		Rewards:       rewardRepo,
		Notifier:      notifier,
	})

	slog.Info("rewarder worker started", "queue", temporaladapter.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
