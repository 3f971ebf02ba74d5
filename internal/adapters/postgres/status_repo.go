package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// StatusRepo implements ports.StatusRepository with pgx. It keeps one row per
// branch holding the last observed open/closed state.
type StatusRepo struct {
	db *DB
}

// NewStatusRepo creates a new StatusRepo.
func NewStatusRepo(db *DB) *StatusRepo {
	return &StatusRepo{db: db}
}

// LastKnown returns the last recorded state, or nil when the branch has
// never been observed.
func (r *StatusRepo) LastKnown(ctx context.Context, branchID string) (*bool, error) {
	var open bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT is_open FROM branch_status WHERE branch_id = $1
	`, branchID).Scan(&open)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &open, nil
}

// Record stores a transition, replacing the previous state.
func (r *StatusRepo) Record(ctx context.Context, c *domain.StatusChange) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO branch_status (branch_id, is_open, changed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (branch_id) DO UPDATE
		SET is_open = EXCLUDED.is_open, changed_at = EXCLUDED.changed_at
	`, c.BranchID, c.IsOpen, c.At)
	return err
}
