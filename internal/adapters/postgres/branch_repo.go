package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// BranchRepo implements ports.BranchRepository with pgx.
type BranchRepo struct {
	db *DB
}

// NewBranchRepo creates a new BranchRepo.
func NewBranchRepo(db *DB) *BranchRepo {
	return &BranchRepo{db: db}
}

const upsertBranchSQL = `
	INSERT INTO branches (id, store_id, name, address, location, rating, image_url, tags, schedule, metadata)
	VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO UPDATE
	SET store_id = EXCLUDED.store_id, name = EXCLUDED.name, address = EXCLUDED.address,
	    location = EXCLUDED.location, image_url = EXCLUDED.image_url,
	    tags = EXCLUDED.tags, schedule = EXCLUDED.schedule, metadata = EXCLUDED.metadata
`

// Upsert inserts or updates a single branch.
func (r *BranchRepo) Upsert(ctx context.Context, b *domain.Branch) error {
	schedule, err := json.Marshal(b.Schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, upsertBranchSQL,
		b.ID, nullIfEmpty(b.StoreID), b.Name, b.Address, b.Location.Lon, b.Location.Lat,
		b.Rating, b.ImageURL, b.Tags, schedule, b.Metadata)
	return err
}

// UpsertBatch inserts many branches using pgx.Batch.
func (r *BranchRepo) UpsertBatch(ctx context.Context, branches []domain.Branch) error {
	batch := &pgx.Batch{}
	for _, b := range branches {
		schedule, err := json.Marshal(b.Schedule)
		if err != nil {
			return fmt.Errorf("marshal schedule for %s: %w", b.ID, err)
		}
		batch.Queue(upsertBranchSQL,
			b.ID, nullIfEmpty(b.StoreID), b.Name, b.Address, b.Location.Lon, b.Location.Lat,
			b.Rating, b.ImageURL, b.Tags, schedule, b.Metadata)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range branches {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

const selectBranchSQL = `
	SELECT b.id, COALESCE(b.store_id::text, ''), COALESCE(s.name, ''), b.name, b.address,
	       ST_Y(b.location::geometry) as lat,
	       ST_X(b.location::geometry) as lon,
	       b.rating, COALESCE(b.image_url, ''), b.tags, b.schedule, COALESCE(b.metadata, '{}'), b.created_at
	FROM branches b
	LEFT JOIN stores s ON s.id = b.store_id
`

func scanBranch(row pgx.Row) (*domain.Branch, error) {
	var b domain.Branch
	var schedule []byte
	if err := row.Scan(
		&b.ID, &b.StoreID, &b.StoreName, &b.Name, &b.Address,
		&b.Location.Lat, &b.Location.Lon,
		&b.Rating, &b.ImageURL, &b.Tags, &schedule, &b.Metadata, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &b.Schedule); err != nil {
			return nil, fmt.Errorf("unmarshal schedule: %w", err)
		}
	}
	return &b, nil
}

// GetByID returns a branch by ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	row := r.db.Pool.QueryRow(ctx, selectBranchSQL+` WHERE b.id = $1`, id)
	return scanBranch(row)
}

// ListByStore returns all branches of one store, alphabetically.
func (r *BranchRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Branch, error) {
	rows, err := r.db.Pool.Query(ctx, selectBranchSQL+` WHERE b.store_id = $1 ORDER BY b.name`, storeID)
	if err != nil {
		return nil, err
	}
	return collectBranches(rows)
}

// ListAll returns every branch. The watcher uses this for full scans.
func (r *BranchRepo) ListAll(ctx context.Context) ([]domain.Branch, error) {
	rows, err := r.db.Pool.Query(ctx, selectBranchSQL+` ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	return collectBranches(rows)
}

// FindNearby returns branches within radiusMeters using PostGIS ST_DWithin.
func (r *BranchRepo) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Branch, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT b.id, COALESCE(b.store_id::text, ''), COALESCE(s.name, ''), b.name, b.address,
		       ST_Y(b.location::geometry) as lat,
		       ST_X(b.location::geometry) as lon,
		       b.rating, COALESCE(b.image_url, ''), b.tags, b.schedule, COALESCE(b.metadata, '{}'), b.created_at,
		       ST_Distance(b.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) as distance
		FROM branches b
		LEFT JOIN stores s ON s.id = b.store_id
		WHERE ST_DWithin(b.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance
		LIMIT $4
	`, lon, lat, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		var b domain.Branch
		var schedule []byte
		var dist float64
		if err := rows.Scan(
			&b.ID, &b.StoreID, &b.StoreName, &b.Name, &b.Address,
			&b.Location.Lat, &b.Location.Lon,
			&b.Rating, &b.ImageURL, &b.Tags, &schedule, &b.Metadata, &b.CreatedAt,
			&dist,
		); err != nil {
			return nil, err
		}
		if len(schedule) > 0 {
			if err := json.Unmarshal(schedule, &b.Schedule); err != nil {
				return nil, fmt.Errorf("unmarshal schedule: %w", err)
			}
		}
		b.Distance = &dist
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// Search performs fuzzy + full-text search on branch names and addresses.
func (r *BranchRepo) Search(ctx context.Context, query string, near *domain.GeoPoint, limit int) ([]domain.Branch, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT b.id, COALESCE(b.store_id::text, ''), COALESCE(s.name, ''), b.name, b.address,
		       ST_Y(b.location::geometry) as lat,
		       ST_X(b.location::geometry) as lon,
		       b.rating, COALESCE(b.image_url, ''), b.tags, b.schedule, COALESCE(b.metadata, '{}'), b.created_at,
		       similarity(b.name, $1) as sim
		FROM branches b
		LEFT JOIN stores s ON s.id = b.store_id
		WHERE b.name_vector @@ plainto_tsquery('simple', $1)
		   OR b.name %> $1
		   OR b.address %> $1
		ORDER BY sim DESC
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		var b domain.Branch
		var schedule []byte
		var sim float64
		if err := rows.Scan(
			&b.ID, &b.StoreID, &b.StoreName, &b.Name, &b.Address,
			&b.Location.Lat, &b.Location.Lon,
			&b.Rating, &b.ImageURL, &b.Tags, &schedule, &b.Metadata, &b.CreatedAt,
			&sim,
		); err != nil {
			return nil, err
		}
		if len(schedule) > 0 {
			if err := json.Unmarshal(schedule, &b.Schedule); err != nil {
				return nil, fmt.Errorf("unmarshal schedule: %w", err)
			}
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// UpdateRating sets the rolled-up average rating.
func (r *BranchRepo) UpdateRating(ctx context.Context, branchID string, rating float64) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE branches SET rating = $2 WHERE id = $1`, branchID, rating)
	return err
}

func collectBranches(rows pgx.Rows) ([]domain.Branch, error) {
	defer rows.Close()
	var branches []domain.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, *b)
	}
	return branches, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
