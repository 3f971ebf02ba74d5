package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/usecases"
)

// --- Mock StatusRepository ---

type mockStatusRepo struct {
	lastKnownFn func(ctx context.Context, branchID string) (*bool, error)
	recordFn    func(ctx context.Context, change *domain.StatusChange) error
}

func (m *mockStatusRepo) LastKnown(ctx context.Context, branchID string) (*bool, error) {
	if m.lastKnownFn != nil {
		return m.lastKnownFn(ctx, branchID)
	}
	return nil, nil
}

func (m *mockStatusRepo) Record(ctx context.Context, change *domain.StatusChange) error {
	if m.recordFn != nil {
		return m.recordFn(ctx, change)
	}
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	statusChanges []*domain.StatusChange
	reviews       []*domain.Review
	rewards       []*domain.Reward
}

func (m *mockPublisher) PublishStatusChange(ctx context.Context, change *domain.StatusChange) error {
	m.statusChanges = append(m.statusChanges, change)
	return nil
}

func (m *mockPublisher) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockPublisher) PublishRewardIssued(ctx context.Context, reward *domain.Reward) error {
	m.rewards = append(m.rewards, reward)
	return nil
}

func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error { return nil }

// --- Tests ---

func boolPtr(b bool) *bool { return &b }

func TestStatusWatch_PublishesOnlyTransitions(t *testing.T) {
	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	open := domain.WeeklySchedule{{Day: time.Monday, Open: "08:00", Close: "18:00"}}
	closed := domain.WeeklySchedule{{Day: time.Tuesday, Open: "08:00", Close: "18:00"}}

	branches := &mockBranchRepo{
		listAllFn: func(ctx context.Context) ([]domain.Branch, error) {
			return []domain.Branch{
				{ID: "open-known", Schedule: open},    // already known open
				{ID: "open-new", Schedule: open},      // transitioned to open
				{ID: "closed-known", Schedule: closed}, // already known closed
			}, nil
		},
	}
	statuses := &mockStatusRepo{
		lastKnownFn: func(ctx context.Context, branchID string) (*bool, error) {
			switch branchID {
			case "open-known":
				return boolPtr(true), nil
			case "closed-known":
				return boolPtr(false), nil
			}
			return nil, nil // never seen
		},
	}
	pub := &mockPublisher{}

	svc := usecases.NewStatusWatchService(branches, statuses, pub)
	n, err := svc.Scan(context.Background(), monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 transition, got %d", n)
	}
	if len(pub.statusChanges) != 1 || pub.statusChanges[0].BranchID != "open-new" {
		t.Errorf("unexpected published changes: %+v", pub.statusChanges)
	}
	if !pub.statusChanges[0].IsOpen {
		t.Error("expected open transition")
	}
}

func TestStatusWatch_FirstSightingIsATransition(t *testing.T) {
	monday := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	branches := &mockBranchRepo{
		listAllFn: func(ctx context.Context) ([]domain.Branch, error) {
			return []domain.Branch{{ID: "b1"}}, nil // empty schedule, closed
		},
	}
	pub := &mockPublisher{}

	svc := usecases.NewStatusWatchService(branches, &mockStatusRepo{}, pub)
	n, err := svc.Scan(context.Background(), monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || len(pub.statusChanges) != 1 {
		t.Fatalf("expected first sighting to publish, got %d", n)
	}
	if pub.statusChanges[0].IsOpen {
		t.Error("branch without schedule must report closed")
	}
}
