package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/ports"
)

// EventService handles branch events (tastings, cuppings, live music).
type EventService struct {
	events ports.EventRepository
	cache  ports.CacheService
}

// NewEventService creates a new EventService.
func NewEventService(events ports.EventRepository, cache ports.CacheService) *EventService {
	return &EventService{events: events, cache: cache}
}

// Upsert stores an event after sanity-checking its time window.
func (s *EventService) Upsert(ctx context.Context, event *domain.Event) error {
	if event.Title == "" {
		return fmt.Errorf("event title must not be empty")
	}
	if !event.EndsAt.After(event.StartsAt) {
		return fmt.Errorf("event must end after it starts")
	}
	return s.events.Upsert(ctx, event)
}

// ListByBranch returns all events of a branch.
func (s *EventService) ListByBranch(ctx context.Context, branchID string) ([]domain.Event, error) {
	return s.events.ListByBranch(ctx, branchID)
}

// ListUpcoming returns events starting after now, soonest first.
func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("events:upcoming:%d", limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var events []domain.Event
			if err := json.Unmarshal(data, &events); err == nil {
				return events, nil
			}
		}
	}

	events, err := s.events.ListUpcoming(ctx, time.Now(), limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(events); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 120)
		}
	}

	return events, nil
}
