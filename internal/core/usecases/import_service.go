package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/ports"
)

// ImportService syncs the partner catalog into the local database.
type ImportService struct {
	catalog  ports.BranchCatalog
	stores   ports.StoreRepository
	branches ports.BranchRepository
	logger   *slog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(catalog ports.BranchCatalog, stores ports.StoreRepository, branches ports.BranchRepository, logger *slog.Logger) *ImportService {
	return &ImportService{catalog: catalog, stores: stores, branches: branches, logger: logger}
}

// ImportResult summarizes one sync run.
type ImportResult struct {
	Stores   int
	Branches int
}

// Sync pulls all stores and their branches from the catalog and upserts them.
// Catalog records carry no moderation state of ours: stores arriving without
// a status start as PENDING.
func (s *ImportService) Sync(ctx context.Context) (*ImportResult, error) {
	stores, err := s.catalog.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	result := &ImportResult{}
	for i := range stores {
		if stores[i].Status == "" {
			stores[i].Status = domain.StorePending
		}
		if err := s.stores.Upsert(ctx, &stores[i]); err != nil {
			s.logger.Warn("store upsert failed", "store", stores[i].ID, "error", err)
			continue
		}
		result.Stores++
	}

	views, err := s.catalog.SearchBranches(ctx, domain.BranchSearchParams{})
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	branches := make([]domain.Branch, 0, len(views))
	for _, v := range views {
		branches = append(branches, domain.Branch{
			ID:        v.ID,
			Name:      v.Name,
			StoreName: v.StoreName,
			Address:   v.Address,
			Location:  v.Location,
			Rating:    v.Rating,
			ImageURL:  v.ImageURL,
			Tags:      v.Tags,
		})
	}
	if err := s.branches.UpsertBatch(ctx, branches); err != nil {
		return nil, fmt.Errorf("upsert branches: %w", err)
	}
	result.Branches = len(branches)

	s.logger.Info("catalog sync complete", "stores", result.Stores, "branches", result.Branches)
	return result, nil
}
