package usecases

import (
	"context"
	"fmt"
	"math"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/pkg/geospatial"
)

// RouteService estimates travel from the user to a branch. Estimates are
// straight-line with per-mode speed assumptions, not routed paths.
type RouteService struct {
	branches *BranchService
}

// NewRouteService creates a new RouteService.
func NewRouteService(branches *BranchService) *RouteService {
	return &RouteService{branches: branches}
}

// Estimate computes distance and travel time from a point to a branch.
// An unknown mode falls back to walking rather than erroring.
func (s *RouteService) Estimate(ctx context.Context, from domain.GeoPoint, branchID string, mode domain.TransportMode) (*domain.RouteEstimate, error) {
	branch, err := s.branches.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	meters := geospatial.Distance(from, branch.Location)
	if math.IsNaN(meters) {
		return nil, fmt.Errorf("cannot estimate route to branch %s: invalid coordinates", branchID)
	}

	return &domain.RouteEstimate{
		Mode:           mode,
		DistanceMeters: meters,
		Duration:       geospatial.TravelTime(meters, mode),
	}, nil
}
