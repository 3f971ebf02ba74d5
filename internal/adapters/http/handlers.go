package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/listing"
	"github.com/brewradar/brewradar/internal/core/usecases"
)

// ServiceStats holds row counts of the core tables.
type ServiceStats struct {
	Stores     int    `json:"stores"`
	Branches   int    `json:"branches"`
	Reviews    int    `json:"reviews"`
	Stamps     int    `json:"stamps"`
	Rewards    int    `json:"rewards"`
	LastImport string `json:"last_import,omitempty"`
}

// ServiceStatsHandler returns row counts from the core tables.
func ServiceStatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.DB == nil {
			return errInternal(c, "database not available")
		}

		var stats ServiceStats
		row := deps.DB.Pool.QueryRow(c.Context(), `
			SELECT
				(SELECT count(*) FROM stores),
				(SELECT count(*) FROM branches),
				(SELECT count(*) FROM reviews),
				(SELECT count(*) FROM stamps),
				(SELECT count(*) FROM rewards),
				COALESCE((SELECT max(created_at)::text FROM branches), '')
		`)
		if err := row.Scan(&stats.Stores, &stats.Branches, &stats.Reviews,
			&stats.Stamps, &stats.Rewards, &stats.LastImport); err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(stats)
	}
}

// NearbyBranchesHandler returns branches within a radius of a point, with
// map markers sized for the requested zoom level.
func NearbyBranchesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Presence, not value: 0 is a legitimate coordinate.
		if c.Query("lat") == "" || c.Query("lon") == "" {
			return errBadRequest(c, "lat and lon are required")
		}
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)
		radius := c.QueryFloat("radius", 1000)
		limit := c.QueryInt("limit", 50)
		zoom := c.QueryFloat("zoom", 14)
		activeID := c.Query("active")
		if radius <= 0 || radius > 10000 {
			return errBadRequest(c, "radius must be between 1 and 10000 meters")
		}
		if limit <= 0 || limit > 50 {
			limit = 50
		}

		views, err := deps.Branches.FindNearby(c.Context(), lat, lon, radius, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(fiber.Map{
			"branches": annotateMarkers(views, zoom, activeID),
			"count":    len(views),
		})
	}
}

// SearchBranchesHandler performs full-text branch search, then refines the
// results client-side: rating floor, open-now, tag selection, sort order,
// and page slicing.
func SearchBranchesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}

		var near *domain.GeoPoint
		if c.Query("lat") != "" && c.Query("lon") != "" {
			near = &domain.GeoPoint{
				Lat: c.QueryFloat("lat", 0),
				Lon: c.QueryFloat("lon", 0),
			}
		}

		views, err := deps.Branches.Search(c.Context(), query, near, 50)
		if err != nil {
			return errInternal(c, err.Error())
		}

		// Refinement the search backend can't evaluate. The query itself was
		// already applied server-side, so it is not part of the criteria.
		views = listing.Filter(views, listing.Criteria{
			MinRating: c.QueryFloat("min_rating", 0),
			OnlyOpen:  c.QueryBool("open_only", false),
			Tags:      splitCSV(c.Query("tags")),
		})

		sortKey := listing.SortKey(c.Query("sort", string(listing.SortByDistance)))
		listing.Sort(views, sortKey)

		pg := listing.Paginate(views, c.QueryInt("page", 1), c.QueryInt("page_size", 20))

		zoom := c.QueryFloat("zoom", 14)
		return c.JSON(fiber.Map{
			"branches":    annotateMarkers(pg.Items, zoom, c.Query("active")),
			"page":        pg.Page,
			"total_pages": pg.TotalPages,
			"total":       pg.Total,
		})
	}
}

// GetBranchHandler returns a single branch by ID.
func GetBranchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "branch id is required")
		}
		branch, err := deps.Branches.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "branch not found")
		}
		return c.JSON(branch)
	}
}

// BranchScheduleHandler resolves a branch's open/closed state right now.
func BranchScheduleHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "branch id is required")
		}
		info, err := deps.Branches.ScheduleFor(c.Context(), id, time.Now())
		if err != nil {
			return errNotFound(c, "branch not found")
		}
		return c.JSON(info)
	}
}

// BranchReviewsHandler returns the most recent reviews of a branch.
func BranchReviewsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "branch id is required")
		}

		limit := c.QueryInt("limit", 20)
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := c.QueryInt("offset", 0)
		if offset < 0 {
			offset = 0
		}

		reviews, total, err := deps.Reviews.PageByBranch(c.Context(), id, offset, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: reviews, Pagination: pg})
	}
}

// CreateReviewHandler stores a new review for a branch.
func CreateReviewHandler(deps *Dependencies) fiber.Handler {
	type reviewRequest struct {
		UserID  string `json:"user_id"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}

	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "branch id is required")
		}

		var req reviewRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		review := &domain.Review{
			BranchID: id,
			UserID:   req.UserID,
			Rating:   req.Rating,
			Comment:  req.Comment,
		}
		if err := deps.Reviews.Create(c.Context(), review); err != nil {
			return errBadRequest(c, err.Error())
		}

		return c.Status(201).JSON(review)
	}
}

// BranchEventsHandler returns all events of a branch.
func BranchEventsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "branch id is required")
		}
		events, err := deps.Events.ListByBranch(c.Context(), id)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(events)
	}
}

// BranchRouteHandler estimates travel from a point to a branch.
// GET /v1/branches/:id/route?lat=43.26&lon=-2.93&mode=walking
func BranchRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "branch id is required")
		}

		if c.Query("lat") == "" || c.Query("lon") == "" {
			return errBadRequest(c, "lat and lon are required")
		}

		mode := domain.TransportMode(c.Query("mode", string(domain.ModeWalking)))
		from := domain.GeoPoint{
			Lat: c.QueryFloat("lat", 0),
			Lon: c.QueryFloat("lon", 0),
		}

		est, err := deps.Routes.Estimate(c.Context(), from, id, mode)
		if err != nil {
			return errNotFound(c, "branch not found")
		}

		return c.JSON(fiber.Map{
			"mode":             est.Mode,
			"distance_meters":  est.DistanceMeters,
			"duration":         est.Duration.String(),
			"duration_minutes": int(est.Duration.Minutes()),
		})
	}
}

// ListStoresHandler returns the publicly listed (approved) stores.
func ListStoresHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stores, err := deps.Stores.ListApproved(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(stores)
		stores = sliceWindow(stores, offset, limit)

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: stores, Pagination: pg})
	}
}

// GetStoreHandler returns a single approved store by slug.
func GetStoreHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if slug == "" {
			return errBadRequest(c, "store slug is required")
		}
		store, err := deps.Stores.GetBySlug(c.Context(), slug)
		if err != nil {
			return errNotFound(c, "store not found")
		}
		return c.JSON(store)
	}
}

// StoreBranchesHandler returns all branches of a store (by slug).
func StoreBranchesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if slug == "" {
			return errBadRequest(c, "store slug is required")
		}

		// Resolve slug → store ID; non-approved stores 404 here too.
		store, err := deps.Stores.GetBySlug(c.Context(), slug)
		if err != nil {
			return errNotFound(c, "store not found")
		}

		branches, err := deps.Branches.ListByStore(c.Context(), store.ID)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(branches)
	}
}

// requireAdmin guards moderation endpoints with a shared token.
func requireAdmin(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.AdminToken == "" {
			return errForbidden(c, "admin endpoints are disabled")
		}
		if c.Get("X-Admin-Token") != deps.AdminToken {
			return errUnauthorized(c, "invalid admin token")
		}
		return c.Next()
	}
}

// PendingStoresHandler lists stores awaiting moderation.
func PendingStoresHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stores, err := deps.Stores.ListPending(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(stores)
	}
}

// ApproveStoreHandler moves a pending store into the public listing.
func ApproveStoreHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "store id is required")
		}
		if err := deps.Stores.Approve(c.Context(), id); err != nil {
			return errConflict(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "approved", "id": id})
	}
}

// RejectStoreHandler marks a pending store as rejected.
func RejectStoreHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "store id is required")
		}
		if err := deps.Stores.Reject(c.Context(), id); err != nil {
			return errConflict(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "rejected", "id": id})
	}
}

// UpcomingEventsHandler returns events starting soon, across all branches.
func UpcomingEventsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 20)
		events, err := deps.Events.ListUpcoming(c.Context(), limit)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(events)
	}
}

// CreateEventHandler stores an event for a branch. Admin only.
func CreateEventHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var event domain.Event
		if err := c.BodyParser(&event); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if event.BranchID == "" {
			return errBadRequest(c, "branch_id is required")
		}
		if err := deps.Events.Upsert(c.Context(), &event); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(event)
	}
}

// CollectStampHandler records a loyalty stamp for a visit.
func CollectStampHandler(deps *Dependencies) fiber.Handler {
	type stampRequest struct {
		UserID   string `json:"user_id"`
		BranchID string `json:"branch_id"`
	}

	return func(c *fiber.Ctx) error {
		var req stampRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.UserID == "" || req.BranchID == "" {
			return errBadRequest(c, "user_id and branch_id are required")
		}

		stamp, err := deps.Stamps.Collect(c.Context(), req.UserID, req.BranchID)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.Status(201).JSON(stamp)
	}
}

// StampPageHandler returns one page of a user's stamp album. Always renders
// a page, even when every backing store is down: the client shows empty
// slots instead of an error state.
func StampPageHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return errBadRequest(c, "user_id query parameter is required")
		}
		pageID, err := c.ParamsInt("page")
		if err != nil || pageID <= 0 {
			return errBadRequest(c, "page must be a positive integer")
		}

		page := deps.Stamps.Page(c.Context(), userID, pageID)
		return c.JSON(page)
	}
}

// GetRewardHandler returns a reward coupon by code.
func GetRewardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")
		if code == "" {
			return errBadRequest(c, "reward code is required")
		}
		reward, err := deps.Rewards.Get(c.Context(), code)
		if err != nil {
			return errNotFound(c, "reward not found")
		}
		return c.JSON(reward)
	}
}

// RedeemRewardHandler marks a coupon as used.
func RedeemRewardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")
		if code == "" {
			return errBadRequest(c, "reward code is required")
		}

		err := deps.Rewards.Redeem(c.Context(), code)
		switch {
		case err == nil:
			return c.JSON(fiber.Map{"status": "redeemed", "code": code})
		case errors.Is(err, usecases.ErrRewardRedeemed),
			errors.Is(err, usecases.ErrRewardExpired):
			return errConflict(c, err.Error())
		default:
			return errNotFound(c, "reward not found")
		}
	}
}

// ListFavoritesHandler returns the branch IDs a user has pinned.
func ListFavoritesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return errBadRequest(c, "user_id query parameter is required")
		}
		ids, err := deps.Favorites.ListBranchIDs(c.Context(), userID)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if ids == nil {
			ids = []string{}
		}
		return c.JSON(fiber.Map{"branch_ids": ids})
	}
}

// AddFavoriteHandler pins a branch for a user.
func AddFavoriteHandler(deps *Dependencies) fiber.Handler {
	type favRequest struct {
		UserID   string `json:"user_id"`
		BranchID string `json:"branch_id"`
	}

	return func(c *fiber.Ctx) error {
		var req favRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Favorites.Add(c.Context(), req.UserID, req.BranchID); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(fiber.Map{"status": "added"})
	}
}

// RemoveFavoriteHandler unpins a branch.
func RemoveFavoriteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID := c.Params("branch_id")
		userID := c.Query("user_id")
		if branchID == "" || userID == "" {
			return errBadRequest(c, "branch_id and user_id are required")
		}
		if err := deps.Favorites.Remove(c.Context(), userID, branchID); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "removed"})
	}
}

// splitCSV splits a comma-separated query value, dropping empty parts.
func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
