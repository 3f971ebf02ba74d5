package postgres

import (
	"context"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// StoreRepo implements ports.StoreRepository with pgx.
type StoreRepo struct {
	db *DB
}

// NewStoreRepo creates a new StoreRepo.
func NewStoreRepo(db *DB) *StoreRepo {
	return &StoreRepo{db: db}
}

// Upsert inserts or updates a store. Status is only written on insert; the
// moderation state is ours, not the catalog's, and a re-import must not
// reset an approval.
func (r *StoreRepo) Upsert(ctx context.Context, s *domain.Store) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO stores (id, slug, name, owner_id, status, description, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET slug = EXCLUDED.slug, name = EXCLUDED.name,
		    description = EXCLUDED.description, logo_url = EXCLUDED.logo_url
	`, s.ID, s.Slug, s.Name, nullIfEmpty(s.OwnerID), string(s.Status), s.Description, s.LogoURL)
	return err
}

const selectStoreSQL = `
	SELECT id, slug, name, COALESCE(owner_id::text, ''), status,
	       COALESCE(description, ''), COALESCE(logo_url, ''), created_at
	FROM stores
`

// GetByID returns a store by ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.Pool.QueryRow(ctx, selectStoreSQL+` WHERE id = $1`, id).Scan(
		&s.ID, &s.Slug, &s.Name, &s.OwnerID, &s.Status,
		&s.Description, &s.LogoURL, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetBySlug returns a store by its public slug.
func (r *StoreRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.Pool.QueryRow(ctx, selectStoreSQL+` WHERE slug = $1`, slug).Scan(
		&s.ID, &s.Slug, &s.Name, &s.OwnerID, &s.Status,
		&s.Description, &s.LogoURL, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByStatus returns stores in one moderation state, alphabetically.
func (r *StoreRepo) ListByStatus(ctx context.Context, status domain.StoreStatus) ([]domain.Store, error) {
	rows, err := r.db.Pool.Query(ctx, selectStoreSQL+` WHERE status = $1 ORDER BY name`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(
			&s.ID, &s.Slug, &s.Name, &s.OwnerID, &s.Status,
			&s.Description, &s.LogoURL, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// SetStatus updates the moderation state.
func (r *StoreRepo) SetStatus(ctx context.Context, id string, status domain.StoreStatus) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE stores SET status = $2 WHERE id = $1`, id, string(status))
	return err
}
