package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/ports"
)

// FavoriteService manages map pins a user saves.
type FavoriteService struct {
	favorites ports.FavoriteRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favorites ports.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// Add pins a branch for a user.
func (s *FavoriteService) Add(ctx context.Context, userID, branchID string) error {
	if userID == "" || branchID == "" {
		return fmt.Errorf("favorite needs user and branch")
	}
	return s.favorites.Add(ctx, &domain.Favorite{
		UserID:    userID,
		BranchID:  branchID,
		CreatedAt: time.Now(),
	})
}

// Remove unpins a branch.
func (s *FavoriteService) Remove(ctx context.Context, userID, branchID string) error {
	return s.favorites.Remove(ctx, userID, branchID)
}

// ListBranchIDs returns the branch IDs a user has pinned.
func (s *FavoriteService) ListBranchIDs(ctx context.Context, userID string) ([]string, error) {
	return s.favorites.ListByUser(ctx, userID)
}
