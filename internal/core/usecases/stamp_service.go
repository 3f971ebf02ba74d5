package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/ports"
)

// stampsPerPage is the album page size; filling a page triggers a reward.
const stampsPerPage = 10

// StampService handles the loyalty stamp album.
type StampService struct {
	stamps   ports.StampRepository
	catalog  ports.BranchCatalog
	workflow ports.WorkflowStarter
}

// NewStampService creates a new StampService.
func NewStampService(stamps ports.StampRepository, catalog ports.BranchCatalog, workflow ports.WorkflowStarter) *StampService {
	return &StampService{stamps: stamps, catalog: catalog, workflow: workflow}
}

// Collect records a stamp for a visit and, when the page fills up, kicks off
// the reward workflow. The workflow start is best-effort: a stamp is never
// lost because the reward pipeline is down.
func (s *StampService) Collect(ctx context.Context, userID, branchID string) (*domain.Stamp, error) {
	if userID == "" || branchID == "" {
		return nil, fmt.Errorf("stamp needs user and branch")
	}

	pageID, slot, err := s.nextSlot(ctx, userID)
	if err != nil {
		return nil, err
	}

	stamp := &domain.Stamp{
		UserID:      userID,
		BranchID:    branchID,
		PageID:      pageID,
		Slot:        slot,
		CollectedAt: time.Now(),
	}
	if err := s.stamps.Add(ctx, stamp); err != nil {
		return nil, fmt.Errorf("add stamp: %w", err)
	}

	if slot == stampsPerPage-1 && s.workflow != nil {
		_ = s.workflow.StartStampReward(ctx, userID, branchID, pageID)
	}

	return stamp, nil
}

// nextSlot finds the first page with room, walking forward from page 1.
func (s *StampService) nextSlot(ctx context.Context, userID string) (pageID, slot int, err error) {
	for page := 1; ; page++ {
		count, err := s.stamps.CountOnPage(ctx, userID, page)
		if err != nil {
			return 0, 0, fmt.Errorf("count page %d: %w", page, err)
		}
		if count < stampsPerPage {
			return page, count, nil
		}
	}
}

// Page returns one album page for a user, preferring the local store and
// falling back to the partner catalog. A fetch problem yields an empty page,
// never an error: the album renders empty slots instead of failing.
func (s *StampService) Page(ctx context.Context, userID string, pageID int) *domain.StampPage {
	if pageID <= 0 {
		pageID = 1
	}

	page, err := s.stamps.PageForUser(ctx, userID, pageID)
	if err == nil && page != nil {
		if page.Stamps == nil {
			page.Stamps = []domain.Stamp{}
		}
		return page
	}

	if s.catalog != nil {
		if page, err := s.catalog.StampsByPage(ctx, userID, pageID); err == nil && page != nil {
			return page
		}
	}

	return &domain.StampPage{PageID: pageID, Stamps: []domain.Stamp{}}
}
