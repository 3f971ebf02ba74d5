package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/ports"
)

// ReviewService handles review creation and the branch rating rollup.
type ReviewService struct {
	reviews   ports.ReviewRepository
	branches  ports.BranchRepository
	publisher ports.EventPublisher
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews ports.ReviewRepository, branches ports.BranchRepository, publisher ports.EventPublisher) *ReviewService {
	return &ReviewService{reviews: reviews, branches: branches, publisher: publisher}
}

// Create stores a review and rolls the branch's average rating forward.
func (s *ReviewService) Create(ctx context.Context, review *domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", review.Rating)
	}
	if review.BranchID == "" || review.UserID == "" {
		return fmt.Errorf("review needs branch and user")
	}
	review.CreatedAt = time.Now()

	if err := s.reviews.Create(ctx, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	avg, err := s.reviews.AverageForBranch(ctx, review.BranchID)
	if err == nil {
		// Best-effort; the review itself is already stored.
		_ = s.branches.UpdateRating(ctx, review.BranchID, avg)
	}

	if s.publisher != nil {
		_ = s.publisher.PublishReviewCreated(ctx, review)
	}

	return nil
}

// ListByBranch returns the most recent reviews of a branch.
func (s *ReviewService) ListByBranch(ctx context.Context, branchID string, limit int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reviews.ListByBranch(ctx, branchID, limit, 0)
}

// PageByBranch returns one window of a branch's reviews plus the overall
// count, so a paginated listing can reach past the first window.
func (s *ReviewService) PageByBranch(ctx context.Context, branchID string, offset, limit int) ([]domain.Review, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	total, err := s.reviews.CountByBranch(ctx, branchID)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	reviews, err := s.reviews.ListByBranch(ctx, branchID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
