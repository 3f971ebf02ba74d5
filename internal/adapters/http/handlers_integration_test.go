//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brewradar/brewradar/internal/adapters/http"
	"github.com/brewradar/brewradar/internal/adapters/postgres"
	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/usecases"
	"github.com/brewradar/brewradar/internal/pkg/config"
)

// setupTestDB connects to the test database and returns a clean DB instance.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("brewradar-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return db
}

// setupTestDeps creates dependencies with real DB and repos, no cache.
func setupTestDeps(t *testing.T, db *postgres.DB) *http.Dependencies {
	storeRepo := postgres.NewStoreRepo(db)
	branchRepo := postgres.NewBranchRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	eventRepo := postgres.NewEventRepo(db)
	stampRepo := postgres.NewStampRepo(db)
	rewardRepo := postgres.NewRewardRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)

	d := &http.Dependencies{
		Branches:  usecases.NewBranchService(branchRepo, nil, nil),
		Stores:    usecases.NewStoreService(storeRepo, nil),
		Reviews:   usecases.NewReviewService(reviewRepo, branchRepo, nil),
		Events:    usecases.NewEventService(eventRepo, nil),
		Stamps:    usecases.NewStampService(stampRepo, nil, nil),
		Rewards:   usecases.NewRewardService(rewardRepo, &mockNotifier{}, nil),
		Favorites: usecases.NewFavoriteService(favoriteRepo),
		DB:        db,
	}
	d.Routes = usecases.NewRouteService(d.Branches)
	return d
}

// seedTestStore inserts an approved test store and returns its ID.
func seedTestStore(t *testing.T, db *postgres.DB, slug string) string {
	ctx := context.Background()
	id := "store-" + slug
	if _, err := db.Pool.Exec(ctx, `
		INSERT INTO stores (id, slug, name, owner_id, status)
		VALUES ($1, $2, $3, 'test-owner', 'APPROVED')
		ON CONFLICT (id) DO UPDATE SET status = 'APPROVED'
	`, id, slug, "Test Store "+slug); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return id
}

// seedTestBranch inserts a test branch in central Bilbao and returns its ID.
func seedTestBranch(t *testing.T, db *postgres.DB, storeID, name string) string {
	ctx := context.Background()
	id := "branch-" + name
	if _, err := db.Pool.Exec(ctx, `
		INSERT INTO branches (id, store_id, name, address, location, rating, tags, schedule)
		VALUES ($1, $2, $3, 'Gran Via 1, Bilbao',
		        ST_SetSRID(ST_MakePoint(-2.935, 43.263), 4326)::geography,
		        4.5, '{specialty,wifi}', '[]')
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`, id, storeID, name); err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	return id
}

// TestListStores_Integration tests the public store listing against a real database.
func TestListStores_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	seedTestStore(t, db, "test-roast-house")
	seedTestStore(t, db, "test-bean-corner")

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/stores", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Store      `json:"data"`
		Pagination struct{ Total int } `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.Pagination.Total < 2 {
		t.Errorf("expected at least 2 stores, got %d", result.Pagination.Total)
	}
}

// TestGetStore_Integration tests slug lookup against a real database.
func TestGetStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	slug := "test-integ-" + time.Now().Format("20060102150405")
	seedTestStore(t, db, slug)

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/stores/"+slug, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var store domain.Store
	if err := json.NewDecoder(resp.Body).Decode(&store); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if store.Slug != slug {
		t.Errorf("expected slug %s, got %s", slug, store.Slug)
	}
}

// TestNearbyBranches_Integration tests the PostGIS radius query end to end.
func TestNearbyBranches_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	storeID := seedTestStore(t, db, "test-spatial")
	// Central Bilbao: 43.263, -2.935
	seedTestBranch(t, db, storeID, "abando-corner")

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/branches/nearby?lat=43.263&lon=-2.935&radius=5000", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Branches []domain.BranchView `json:"branches"`
		Count    int                 `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.Count == 0 {
		t.Error("expected at least 1 nearby branch, got 0")
	}
}
