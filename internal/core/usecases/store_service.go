package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/ports"
)

// StoreService handles store-related business logic, including the
// moderation lifecycle. Public listings only ever see APPROVED stores.
type StoreService struct {
	stores ports.StoreRepository
	cache  ports.CacheService
}

// NewStoreService creates a new StoreService.
func NewStoreService(stores ports.StoreRepository, cache ports.CacheService) *StoreService {
	return &StoreService{stores: stores, cache: cache}
}

// ListApproved returns the publicly visible stores.
func (s *StoreService) ListApproved(ctx context.Context) ([]domain.Store, error) {
	cacheKey := "stores:approved"
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var stores []domain.Store
			if err := json.Unmarshal(data, &stores); err == nil {
				return stores, nil
			}
		}
	}

	stores, err := s.stores.ListByStatus(ctx, domain.StoreApproved)
	if err != nil {
		return nil, err
	}

	// Cache for 5 minutes; approvals are rare.
	if s.cache != nil {
		if data, err := json.Marshal(stores); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return stores, nil
}

// ListPending returns stores awaiting moderation. Admin only; not cached.
func (s *StoreService) ListPending(ctx context.Context) ([]domain.Store, error) {
	return s.stores.ListByStatus(ctx, domain.StorePending)
}

// GetBySlug returns a store by its public slug. Non-approved stores are
// hidden from this lookup.
func (s *StoreService) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	if slug == "" {
		return nil, fmt.Errorf("slug must not be empty")
	}

	store, err := s.stores.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if store.Status != domain.StoreApproved {
		return nil, fmt.Errorf("store %s not found", slug)
	}
	return store, nil
}

// Approve moves a pending store into the public listing.
func (s *StoreService) Approve(ctx context.Context, id string) error {
	if err := s.setStatus(ctx, id, domain.StoreApproved); err != nil {
		return err
	}
	return nil
}

// Reject marks a pending store as rejected.
func (s *StoreService) Reject(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.StoreRejected)
}

func (s *StoreService) setStatus(ctx context.Context, id string, status domain.StoreStatus) error {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if store.Status != domain.StorePending {
		return fmt.Errorf("store %s is %s, only PENDING stores can be moderated", id, store.Status)
	}
	if err := s.stores.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "stores:approved")
	}
	return nil
}
