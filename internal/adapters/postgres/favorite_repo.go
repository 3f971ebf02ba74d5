package postgres

import (
	"context"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// FavoriteRepo implements ports.FavoriteRepository with pgx.
type FavoriteRepo struct {
	db *DB
}

// NewFavoriteRepo creates a new FavoriteRepo.
func NewFavoriteRepo(db *DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Add pins a branch; re-pinning is a no-op.
func (r *FavoriteRepo) Add(ctx context.Context, f *domain.Favorite) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO favorites (user_id, branch_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, branch_id) DO NOTHING
	`, f.UserID, f.BranchID, f.CreatedAt)
	return err
}

// Remove unpins a branch.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, branchID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND branch_id = $2
	`, userID, branchID)
	return err
}

// ListByUser returns the pinned branch IDs, newest pin first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT branch_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
