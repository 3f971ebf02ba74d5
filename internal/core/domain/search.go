package domain

// BranchSearchParams is the normalized query sent to the branch catalog.
// Constructed fresh per search and immutable once sent; zero-valued fields
// are omitted from the wire request entirely.
type BranchSearchParams struct {
	Query        string
	MinRating    float64 // 0-5, 0 means unset
	OpenOnly     bool
	Lat, Lon     *float64
	SortBy       string // "distance" | "rating"
	AttributeIDs []int  // comma-joined on the wire
}
