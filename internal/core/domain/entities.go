package domain

import (
	"time"
)

// StoreStatus is the moderation state of a store.
type StoreStatus string

const (
	StorePending  StoreStatus = "PENDING"
	StoreApproved StoreStatus = "APPROVED"
	StoreRejected StoreStatus = "REJECTED"
)

// Store represents a coffee-shop brand owned by a store owner.
// Branches hang off a store; only APPROVED stores are publicly listed.
type Store struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	OwnerID     string      `json:"owner_id"`
	Status      StoreStatus `json:"status"`
	Description string      `json:"description,omitempty"`
	LogoURL     string      `json:"logo_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Branch represents a physical coffee-shop location.
type Branch struct {
	ID        string         `json:"id"`
	StoreID   string         `json:"store_id"`
	StoreName string         `json:"store_name,omitempty"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Location  GeoPoint       `json:"location"`
	Rating    float64        `json:"rating"`
	ImageURL  string         `json:"image_url,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Schedule  WeeklySchedule `json:"schedule,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Distance  *float64       `json:"distance,omitempty"` // computed field
	CreatedAt time.Time      `json:"created_at"`
}

// BranchView is the read projection handed to presentation layers.
// It is derived from a Branch plus the caller's location and the clock,
// never persisted, and carries no identity beyond the source branch ID.
type BranchView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	StoreName     string   `json:"store_name,omitempty"`
	Address       string   `json:"address"`
	Location      GeoPoint `json:"location"`
	Rating        float64  `json:"rating"`
	IsOpen        bool     `json:"is_open"`
	ImageURL      string   `json:"image,omitempty"`
	Distance      string   `json:"distance"`       // formatted, "Unknown distance" without a location
	DistanceValue float64  `json:"distance_value"` // meters, for sorting
	Tags          []string `json:"tags,omitempty"`
}

// Review is a user rating of a branch.
type Review struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is a time-bounded happening at a branch (tasting, cupping, live music).
type Event struct {
	ID          string    `json:"id"`
	BranchID    string    `json:"branch_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stamp is one collected loyalty stamp on an album page.
type Stamp struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	BranchID    string    `json:"branch_id"`
	PageID      int       `json:"page_id"`
	Slot        int       `json:"slot"`
	CollectedAt time.Time `json:"collected_at"`
}

// StampPage is one page of a user's stamp album.
type StampPage struct {
	PageID int     `json:"page_id"`
	Stamps []Stamp `json:"stamps"`
}

// Reward is a coupon issued when an album page is completed.
type Reward struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	BranchID   string     `json:"branch_id"`
	Code       string     `json:"code"`
	OfferText  string     `json:"offer_text"`
	IssuedAt   time.Time  `json:"issued_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
}

// Favorite marks a branch a user pinned on the map.
type Favorite struct {
	UserID    string    `json:"user_id"`
	BranchID  string    `json:"branch_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusChange records a branch crossing its open/close boundary.
type StatusChange struct {
	BranchID string    `json:"branch_id"`
	IsOpen   bool      `json:"is_open"`
	At       time.Time `json:"at"`
}

// TransportMode selects the speed assumption for travel-time estimates.
type TransportMode string

const (
	ModeWalking   TransportMode = "walking"
	ModeBicycling TransportMode = "bicycling"
	ModeDriving   TransportMode = "driving"
)

// RouteEstimate is a straight-line travel estimate between two points.
type RouteEstimate struct {
	Mode           TransportMode `json:"mode"`
	DistanceMeters float64       `json:"distance_meters"`
	Duration       time.Duration `json:"duration"`
}
