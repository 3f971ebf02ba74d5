package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/ports"
	"github.com/brewradar/brewradar/internal/pkg/geospatial"
)

// BranchService handles branch-related business logic.
type BranchService struct {
	branches ports.BranchRepository
	catalog  ports.BranchCatalog
	cache    ports.CacheService
}

// NewBranchService creates a new BranchService.
func NewBranchService(branches ports.BranchRepository, catalog ports.BranchCatalog, cache ports.CacheService) *BranchService {
	return &BranchService{branches: branches, catalog: catalog, cache: cache}
}

// FindNearby returns branches within radiusMeters of the given point,
// projected for presentation.
func (s *BranchService) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.BranchView, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	// Try cache
	cacheKey := fmt.Sprintf("branches:nearby:%.4f:%.4f:%.0f:%d", lat, lon, radiusMeters, limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var views []domain.BranchView
			if err := json.Unmarshal(data, &views); err == nil {
				return views, nil
			}
		}
	}

	branches, err := s.branches.FindNearby(ctx, lat, lon, radiusMeters, limit)
	if err != nil {
		return nil, err
	}

	origin := &domain.GeoPoint{Lat: lat, Lon: lon}
	views := s.project(branches, origin, time.Now())

	// Cache for 1 minute; open/closed state is baked into the projection.
	if s.cache != nil {
		if data, err := json.Marshal(views); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return views, nil
}

// Search performs fuzzy + full-text search on branch names, falling back to
// the partner catalog when the local index has nothing.
func (s *BranchService) Search(ctx context.Context, query string, near *domain.GeoPoint, limit int) ([]domain.BranchView, error) {
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	// Try cache. Distances in the projection are origin-relative, so the key
	// must carry the caller's position or two users at different spots would
	// share one set of distances within the TTL.
	origin := "none"
	if near != nil {
		origin = fmt.Sprintf("%.4f:%.4f", near.Lat, near.Lon)
	}
	cacheKey := fmt.Sprintf("branches:search:%s:%d:%s", query, limit, origin)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var views []domain.BranchView
			if err := json.Unmarshal(data, &views); err == nil {
				return views, nil
			}
		}
	}

	branches, err := s.branches.Search(ctx, query, near, limit)
	if err != nil {
		return nil, err
	}

	var views []domain.BranchView
	if len(branches) == 0 && s.catalog != nil {
		params := domain.BranchSearchParams{Query: query}
		if near != nil {
			params.Lat, params.Lon = &near.Lat, &near.Lon
			params.SortBy = "distance"
		}
		views, err = s.catalog.SearchBranches(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("catalog search: %w", err)
		}
	} else {
		views = s.project(branches, near, time.Now())
	}

	// Cache for 1 minute
	if s.cache != nil {
		if data, err := json.Marshal(views); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return views, nil
}

// GetByID returns a single branch.
func (s *BranchService) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	cacheKey := "branches:id:" + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var branch domain.Branch
			if err := json.Unmarshal(data, &branch); err == nil {
				return &branch, nil
			}
		}
	}

	branch, err := s.branches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(branch); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600) // 10 min for single branch
		}
	}

	return branch, nil
}

// ListByStore returns all branches of one store.
func (s *BranchService) ListByStore(ctx context.Context, storeID string) ([]domain.Branch, error) {
	if storeID == "" {
		return nil, fmt.Errorf("store id must not be empty")
	}
	return s.branches.ListByStore(ctx, storeID)
}

// ScheduleFor resolves a branch's open/closed state at the given instant.
func (s *BranchService) ScheduleFor(ctx context.Context, branchID string, now time.Time) (*domain.ScheduleInfo, error) {
	branch, err := s.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	info := branch.Schedule.Resolve(now)
	return &info, nil
}

// project turns branches into presentation views relative to the caller's
// position. Without an origin the distance degrades to the unknown marker
// rather than a misleading zero.
func (s *BranchService) project(branches []domain.Branch, origin *domain.GeoPoint, now time.Time) []domain.BranchView {
	views := make([]domain.BranchView, 0, len(branches))
	for _, b := range branches {
		v := domain.BranchView{
			ID:        b.ID,
			Name:      b.Name,
			StoreName: b.StoreName,
			Address:   b.Address,
			Location:  b.Location,
			Rating:    b.Rating,
			IsOpen:    b.Schedule.IsOpenAt(now),
			ImageURL:  b.ImageURL,
			Tags:      b.Tags,
		}
		if origin != nil {
			meters := geospatial.Distance(*origin, b.Location)
			v.DistanceValue = meters
			v.Distance = geospatial.FormatDistance(meters)
		} else {
			v.Distance = geospatial.FormatDistance(-1)
		}
		views = append(views, v)
	}
	return views
}
