package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/brewradar/brewradar/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Legacy aliases kept for old clients, slated for removal
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{
			Path:        "/v1/shops/nearby",
			SunsetDate:  time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC),
			Alternative: "/v1/branches/nearby",
		},
	}))

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1 — 15s per-request timeout
	v1 := app.Group("/v1")
	v1.Get("/branches/nearby", timeout.NewWithContext(NearbyBranchesHandler(deps), 15*time.Second))
	v1.Get("/branches/search", timeout.NewWithContext(SearchBranchesHandler(deps), 15*time.Second))
	v1.Get("/branches/:id", timeout.NewWithContext(GetBranchHandler(deps), 15*time.Second))
	v1.Get("/branches/:id/schedule", timeout.NewWithContext(BranchScheduleHandler(deps), 15*time.Second))
	v1.Get("/branches/:id/reviews", timeout.NewWithContext(BranchReviewsHandler(deps), 15*time.Second))
	v1.Post("/branches/:id/reviews", timeout.NewWithContext(CreateReviewHandler(deps), 15*time.Second))
	v1.Get("/branches/:id/events", timeout.NewWithContext(BranchEventsHandler(deps), 15*time.Second))
	v1.Get("/branches/:id/route", timeout.NewWithContext(BranchRouteHandler(deps), 15*time.Second))
	v1.Get("/stores", timeout.NewWithContext(ListStoresHandler(deps), 15*time.Second))
	v1.Get("/stores/:slug", timeout.NewWithContext(GetStoreHandler(deps), 15*time.Second))
	v1.Get("/stores/:slug/branches", timeout.NewWithContext(StoreBranchesHandler(deps), 15*time.Second))
	v1.Get("/events/upcoming", timeout.NewWithContext(UpcomingEventsHandler(deps), 15*time.Second))
	v1.Post("/stamps", timeout.NewWithContext(CollectStampHandler(deps), 15*time.Second))
	v1.Get("/stamps/pages/:page", timeout.NewWithContext(StampPageHandler(deps), 15*time.Second))
	v1.Get("/rewards/:code", timeout.NewWithContext(GetRewardHandler(deps), 15*time.Second))
	v1.Post("/rewards/:code/redeem", timeout.NewWithContext(RedeemRewardHandler(deps), 15*time.Second))
	v1.Get("/favorites", timeout.NewWithContext(ListFavoritesHandler(deps), 15*time.Second))
	v1.Post("/favorites", timeout.NewWithContext(AddFavoriteHandler(deps), 15*time.Second))
	v1.Delete("/favorites/:branch_id", timeout.NewWithContext(RemoveFavoriteHandler(deps), 15*time.Second))
	v1.Get("/stats", timeout.NewWithContext(ServiceStatsHandler(deps), 15*time.Second))

	// Legacy alias, see DeprecationMiddleware above
	v1.Get("/shops/nearby", timeout.NewWithContext(NearbyBranchesHandler(deps), 15*time.Second))

	// Moderation endpoints, guarded by a shared admin token
	admin := v1.Group("/admin", requireAdmin(deps))
	admin.Get("/stores/pending", timeout.NewWithContext(PendingStoresHandler(deps), 15*time.Second))
	admin.Post("/stores/:id/approve", timeout.NewWithContext(ApproveStoreHandler(deps), 15*time.Second))
	admin.Post("/stores/:id/reject", timeout.NewWithContext(RejectStoreHandler(deps), 15*time.Second))
	admin.Post("/events", timeout.NewWithContext(CreateEventHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps)))
}
