package usecases_test

import (
	"context"
	"testing"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/usecases"
)

// --- Mock StoreRepository ---

type mockStoreRepo struct {
	getByIDFn      func(ctx context.Context, id string) (*domain.Store, error)
	getBySlugFn    func(ctx context.Context, slug string) (*domain.Store, error)
	listByStatusFn func(ctx context.Context, status domain.StoreStatus) ([]domain.Store, error)
	setStatusFn    func(ctx context.Context, id string, status domain.StoreStatus) error
}

func (m *mockStoreRepo) Upsert(ctx context.Context, store *domain.Store) error { return nil }

func (m *mockStoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockStoreRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, nil
}

func (m *mockStoreRepo) ListByStatus(ctx context.Context, status domain.StoreStatus) ([]domain.Store, error) {
	if m.listByStatusFn != nil {
		return m.listByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *mockStoreRepo) SetStatus(ctx context.Context, id string, status domain.StoreStatus) error {
	if m.setStatusFn != nil {
		return m.setStatusFn(ctx, id, status)
	}
	return nil
}

// --- Tests ---

func TestStoreService_ListApproved_QueriesApprovedOnly(t *testing.T) {
	repo := &mockStoreRepo{
		listByStatusFn: func(ctx context.Context, status domain.StoreStatus) ([]domain.Store, error) {
			if status != domain.StoreApproved {
				t.Errorf("expected APPROVED filter, got %s", status)
			}
			return []domain.Store{{ID: "s1", Status: domain.StoreApproved}}, nil
		},
	}

	svc := usecases.NewStoreService(repo, nil)
	stores, err := svc.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(stores))
	}
}

func TestStoreService_GetBySlug_HidesPending(t *testing.T) {
	repo := &mockStoreRepo{
		getBySlugFn: func(ctx context.Context, slug string) (*domain.Store, error) {
			return &domain.Store{ID: "s1", Slug: slug, Status: domain.StorePending}, nil
		},
	}

	svc := usecases.NewStoreService(repo, nil)
	if _, err := svc.GetBySlug(context.Background(), "sol"); err == nil {
		t.Error("pending store must not be visible by slug")
	}
}

func TestStoreService_Approve_OnlyFromPending(t *testing.T) {
	repo := &mockStoreRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Store, error) {
			return &domain.Store{ID: id, Status: domain.StoreRejected}, nil
		},
	}

	svc := usecases.NewStoreService(repo, nil)
	if err := svc.Approve(context.Background(), "s1"); err == nil {
		t.Error("expected error approving a rejected store")
	}
}

func TestStoreService_Approve_SetsStatus(t *testing.T) {
	var set domain.StoreStatus
	repo := &mockStoreRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Store, error) {
			return &domain.Store{ID: id, Status: domain.StorePending}, nil
		},
		setStatusFn: func(ctx context.Context, id string, status domain.StoreStatus) error {
			set = status
			return nil
		},
	}

	svc := usecases.NewStoreService(repo, nil)
	if err := svc.Approve(context.Background(), "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set != domain.StoreApproved {
		t.Errorf("expected APPROVED, got %s", set)
	}
}
