package postgres

import (
	"context"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// StampRepo implements ports.StampRepository with pgx.
type StampRepo struct {
	db *DB
}

// NewStampRepo creates a new StampRepo.
func NewStampRepo(db *DB) *StampRepo {
	return &StampRepo{db: db}
}

// Add inserts a stamp. The (user_id, page_id, slot) unique constraint keeps
// concurrent collects from landing on the same slot.
func (r *StampRepo) Add(ctx context.Context, s *domain.Stamp) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO stamps (user_id, branch_id, page_id, slot, collected_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, s.UserID, s.BranchID, s.PageID, s.Slot, s.CollectedAt).Scan(&s.ID)
}

// PageForUser returns one album page, slots in order.
func (r *StampRepo) PageForUser(ctx context.Context, userID string, pageID int) (*domain.StampPage, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, user_id, branch_id, page_id, slot, collected_at
		FROM stamps
		WHERE user_id = $1 AND page_id = $2
		ORDER BY slot
	`, userID, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := &domain.StampPage{PageID: pageID, Stamps: []domain.Stamp{}}
	for rows.Next() {
		var s domain.Stamp
		if err := rows.Scan(&s.ID, &s.UserID, &s.BranchID, &s.PageID, &s.Slot, &s.CollectedAt); err != nil {
			return nil, err
		}
		page.Stamps = append(page.Stamps, s)
	}
	return page, rows.Err()
}

// CountOnPage returns how many slots of a page are filled.
func (r *StampRepo) CountOnPage(ctx context.Context, userID string, pageID int) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM stamps WHERE user_id = $1 AND page_id = $2
	`, userID, pageID).Scan(&count)
	return count, err
}
