// Package listing refines branch view lists client-side: full-text filtering,
// stable sorting, and page slicing. It is the fallback when no server-side
// search is available and the refinement layer over server results for
// criteria the backend can't evaluate (local distance, tag selection).
package listing

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// SortKey selects the ordering of a refined list.
type SortKey string

const (
	SortByDistance SortKey = "distance"
	SortByRating   SortKey = "rating"
	SortByName     SortKey = "name"
)

// Criteria is the client-side refinement variant of the search filters.
// Zero values mean "not active"; a zero Criteria passes everything through.
type Criteria struct {
	Query     string
	MinRating float64
	OnlyOpen  bool
	Tags      []string
}

func (c Criteria) active() bool {
	return strings.TrimSpace(c.Query) != "" || c.MinRating > 0 || c.OnlyOpen || len(c.Tags) > 0
}

// Filter applies criteria in order: tokenized full-text match, minimum
// rating, open-now, tag intersection. Every whitespace token of the query
// must match (case-insensitive substring) in at least one of name, address,
// store name, or a tag. With no active criteria the input slice is returned
// unchanged, same order, no copy.
func Filter(items []domain.BranchView, c Criteria) []domain.BranchView {
	if !c.active() {
		return items
	}

	tokens := strings.Fields(strings.ToLower(c.Query))

	tagSet := make(map[string]struct{}, len(c.Tags))
	for _, t := range c.Tags {
		tagSet[strings.ToLower(t)] = struct{}{}
	}

	out := make([]domain.BranchView, 0, len(items))
	for _, item := range items {
		if len(tokens) > 0 && !matchesTokens(item, tokens) {
			continue
		}
		if item.Rating < c.MinRating {
			continue
		}
		if c.OnlyOpen && !item.IsOpen {
			continue
		}
		if len(tagSet) > 0 && !hasAnyTag(item, tagSet) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesTokens(item domain.BranchView, tokens []string) bool {
	haystacks := make([]string, 0, 3+len(item.Tags))
	haystacks = append(haystacks,
		strings.ToLower(item.Name),
		strings.ToLower(item.Address),
		strings.ToLower(item.StoreName),
	)
	for _, t := range item.Tags {
		haystacks = append(haystacks, strings.ToLower(t))
	}

	for _, tok := range tokens {
		found := false
		for _, h := range haystacks {
			if strings.Contains(h, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasAnyTag(item domain.BranchView, tagSet map[string]struct{}) bool {
	for _, t := range item.Tags {
		if _, ok := tagSet[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

// Sort orders items stably: distance ascending, rating descending, or name
// ascending with locale-aware collation. Unknown keys leave the order as is.
func Sort(items []domain.BranchView, key SortKey) {
	switch key {
	case SortByDistance:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].DistanceValue < items[j].DistanceValue
		})
	case SortByRating:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	case SortByName:
		col := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Name, items[j].Name) < 0
		})
	}
}

// Page is one slice of a refined list plus its paging arithmetic.
type Page struct {
	Items      []domain.BranchView
	Page       int // 1-based, after clamping
	TotalPages int
	Total      int
}

// Paginate slices items into pageSize chunks. TotalPages is at least 1 even
// for an empty list; a requested page past the end clamps to the last page
// rather than returning an empty slice.
func Paginate(items []domain.BranchView, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = 20
	}
	total := len(items)

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}
