package http

import "github.com/brewradar/brewradar/internal/core/domain"

// MarkerSize is the rendered pin size for a branch on the map.
type MarkerSize string

const (
	MarkerSmall  MarkerSize = "small"
	MarkerMedium MarkerSize = "medium"
	MarkerLarge  MarkerSize = "large"
)

// markerForZoom maps a map zoom level to a base marker size. City-level
// zooms get small pins, street-level zooms get large ones.
func markerForZoom(zoom float64) MarkerSize {
	switch {
	case zoom < 13:
		return MarkerSmall
	case zoom <= 15:
		return MarkerMedium
	default:
		return MarkerLarge
	}
}

// bump grows a marker one tier; large stays large.
func (m MarkerSize) bump() MarkerSize {
	switch m {
	case MarkerSmall:
		return MarkerMedium
	case MarkerMedium:
		return MarkerLarge
	default:
		return MarkerLarge
	}
}

// MarkedBranch is a branch view annotated with its map marker size.
type MarkedBranch struct {
	domain.BranchView
	Marker MarkerSize `json:"marker"`
}

// annotateMarkers attaches marker sizes to views. The active branch (the one
// currently selected in the client) is bumped one tier so it stands out.
func annotateMarkers(views []domain.BranchView, zoom float64, activeID string) []MarkedBranch {
	base := markerForZoom(zoom)
	out := make([]MarkedBranch, 0, len(views))
	for _, v := range views {
		m := base
		if activeID != "" && v.ID == activeID {
			m = m.bump()
		}
		out = append(out, MarkedBranch{BranchView: v, Marker: m})
	}
	return out
}
