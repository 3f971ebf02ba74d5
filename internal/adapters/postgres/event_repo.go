package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// EventRepo implements ports.EventRepository with pgx.
type EventRepo struct {
	db *DB
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(db *DB) *EventRepo {
	return &EventRepo{db: db}
}

// Upsert inserts or updates an event.
func (r *EventRepo) Upsert(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		return r.db.Pool.QueryRow(ctx, `
			INSERT INTO events (branch_id, title, description, starts_at, ends_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`, e.BranchID, e.Title, e.Description, e.StartsAt, e.EndsAt).Scan(&e.ID, &e.CreatedAt)
	}
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE events
		SET title = $2, description = $3, starts_at = $4, ends_at = $5
		WHERE id = $1
	`, e.ID, e.Title, e.Description, e.StartsAt, e.EndsAt)
	return err
}

const selectEventSQL = `
	SELECT id, branch_id, title, COALESCE(description, ''), starts_at, ends_at, created_at
	FROM events
`

// ListByBranch returns all events of a branch, soonest first.
func (r *EventRepo) ListByBranch(ctx context.Context, branchID string) ([]domain.Event, error) {
	rows, err := r.db.Pool.Query(ctx, selectEventSQL+` WHERE branch_id = $1 ORDER BY starts_at`, branchID)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// ListUpcoming returns events starting after the given instant.
func (r *EventRepo) ListUpcoming(ctx context.Context, after time.Time, limit int) ([]domain.Event, error) {
	rows, err := r.db.Pool.Query(ctx, selectEventSQL+` WHERE starts_at > $1 ORDER BY starts_at LIMIT $2`, after, limit)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]domain.Event, error) {
	defer rows.Close()
	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.BranchID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
