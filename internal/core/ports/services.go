package ports

import (
	"context"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, change *domain.StatusChange) error
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
	PublishRewardIssued(ctx context.Context, reward *domain.Reward) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeStatusChanges(ctx context.Context, handler func(ctx context.Context, change *domain.StatusChange) error) error
	SubscribeReviews(ctx context.Context, handler func(ctx context.Context, review *domain.Review) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// NotificationService sends notifications (push, email, etc.).
type NotificationService interface {
	SendPush(ctx context.Context, userID, title, body string) error
}

// WorkflowStarter kicks off long-running background work. Implemented by the
// Temporal client wrapper; the stamp service only knows it by this interface.
type WorkflowStarter interface {
	StartStampReward(ctx context.Context, userID, branchID string, pageID int) error
}

// BranchCatalog is the upstream partner catalog the importer and the search
// fallback pull from. Implemented by the catalog HTTP client.
type BranchCatalog interface {
	SearchBranches(ctx context.Context, params domain.BranchSearchParams) ([]domain.BranchView, error)
	ListStores(ctx context.Context) ([]domain.Store, error)
	StampsByPage(ctx context.Context, userID string, pageID int) (*domain.StampPage, error)
}
