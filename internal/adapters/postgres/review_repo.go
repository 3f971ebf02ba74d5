package postgres

import (
	"context"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// ReviewRepo implements ports.ReviewRepository with pgx.
type ReviewRepo struct {
	db *DB
}

// NewReviewRepo creates a new ReviewRepo.
func NewReviewRepo(db *DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts a review.
func (r *ReviewRepo) Create(ctx context.Context, rev *domain.Review) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO reviews (branch_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, rev.BranchID, rev.UserID, rev.Rating, rev.Comment).Scan(&rev.ID, &rev.CreatedAt)
}

// ListByBranch returns one window of a branch's reviews, newest first.
func (r *ReviewRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]domain.Review, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, branch_id, user_id, rating, COALESCE(comment, ''), created_at
		FROM reviews
		WHERE branch_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.BranchID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// CountByBranch returns how many reviews a branch has in total.
func (r *ReviewRepo) CountByBranch(ctx context.Context, branchID string) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM reviews WHERE branch_id = $1
	`, branchID).Scan(&n)
	return n, err
}

// AverageForBranch returns the mean rating, 0 when there are no reviews.
func (r *ReviewRepo) AverageForBranch(ctx context.Context, branchID string) (float64, error) {
	var avg float64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE branch_id = $1
	`, branchID).Scan(&avg)
	return avg, err
}
