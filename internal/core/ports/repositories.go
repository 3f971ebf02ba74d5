package ports

import (
	"context"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// StoreRepository persists stores.
type StoreRepository interface {
	Upsert(ctx context.Context, store *domain.Store) error
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	ListByStatus(ctx context.Context, status domain.StoreStatus) ([]domain.Store, error)
	SetStatus(ctx context.Context, id string, status domain.StoreStatus) error
}

// BranchRepository persists branches.
type BranchRepository interface {
	Upsert(ctx context.Context, branch *domain.Branch) error
	UpsertBatch(ctx context.Context, branches []domain.Branch) error
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Branch, error)
	ListAll(ctx context.Context) ([]domain.Branch, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Branch, error)
	Search(ctx context.Context, query string, near *domain.GeoPoint, limit int) ([]domain.Branch, error)
	UpdateRating(ctx context.Context, branchID string, rating float64) error
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]domain.Review, error)
	CountByBranch(ctx context.Context, branchID string) (int, error)
	AverageForBranch(ctx context.Context, branchID string) (float64, error)
}

// EventRepository persists branch events.
type EventRepository interface {
	Upsert(ctx context.Context, event *domain.Event) error
	ListByBranch(ctx context.Context, branchID string) ([]domain.Event, error)
	ListUpcoming(ctx context.Context, after time.Time, limit int) ([]domain.Event, error)
}

// StampRepository persists stamp-album stamps.
type StampRepository interface {
	Add(ctx context.Context, stamp *domain.Stamp) error
	PageForUser(ctx context.Context, userID string, pageID int) (*domain.StampPage, error)
	CountOnPage(ctx context.Context, userID string, pageID int) (int, error)
}

// RewardRepository persists reward coupons.
type RewardRepository interface {
	Create(ctx context.Context, reward *domain.Reward) error
	GetByCode(ctx context.Context, code string) (*domain.Reward, error)
	Redeem(ctx context.Context, code string) error
	Delete(ctx context.Context, code string) error
}

// FavoriteRepository persists user favorites.
type FavoriteRepository interface {
	Add(ctx context.Context, fav *domain.Favorite) error
	Remove(ctx context.Context, userID, branchID string) error
	ListByUser(ctx context.Context, userID string) ([]string, error)
}

// StatusRepository persists the last known open/closed state per branch,
// so the watcher only publishes actual transitions.
type StatusRepository interface {
	LastKnown(ctx context.Context, branchID string) (*bool, error)
	Record(ctx context.Context, change *domain.StatusChange) error
}
