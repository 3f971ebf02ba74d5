package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/ports"
)

// StatusWatchService detects branches crossing their open/close boundary and
// publishes one event per transition. State lives in the repository, so a
// restarted watcher does not re-announce known states.
type StatusWatchService struct {
	branches  ports.BranchRepository
	statuses  ports.StatusRepository
	publisher ports.EventPublisher
}

// NewStatusWatchService creates a new StatusWatchService.
func NewStatusWatchService(branches ports.BranchRepository, statuses ports.StatusRepository, publisher ports.EventPublisher) *StatusWatchService {
	return &StatusWatchService{branches: branches, statuses: statuses, publisher: publisher}
}

// Scan resolves every branch's schedule at the given instant and publishes a
// status change for each branch whose state differs from the last recorded
// one. Returns the number of transitions published.
func (s *StatusWatchService) Scan(ctx context.Context, now time.Time) (int, error) {
	branches, err := s.branches.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list branches: %w", err)
	}

	transitions := 0
	for _, b := range branches {
		open := b.Schedule.IsOpenAt(now)

		last, err := s.statuses.LastKnown(ctx, b.ID)
		if err != nil {
			continue
		}
		if last != nil && *last == open {
			continue
		}

		change := &domain.StatusChange{BranchID: b.ID, IsOpen: open, At: now}
		if err := s.statuses.Record(ctx, change); err != nil {
			continue
		}
		if s.publisher != nil {
			_ = s.publisher.PublishStatusChange(ctx, change)
		}
		transitions++
	}

	return transitions, nil
}
