package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		// Default cache times by endpoint pattern
		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case strings.HasPrefix(path, "/v1/stores"):
			ttl = "public, max-age=300" // 5 min for store listings

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0" // GraphQL varies wildly

		case strings.HasPrefix(path, "/v1/branches/nearby"):
			ttl = "public, max-age=60" // 1 min for location queries

		case strings.HasPrefix(path, "/v1/branches/search"):
			ttl = "public, max-age=60" // 1 min for search results

		case strings.HasSuffix(path, "/schedule"):
			ttl = "public, max-age=60" // Open state flips on the minute

		case strings.HasPrefix(path, "/v1/stamps"),
			strings.HasPrefix(path, "/v1/rewards"),
			strings.HasPrefix(path, "/v1/favorites"):
			ttl = "private, max-age=0" // Per-user data, never shared caches

		case strings.Contains(path, "/branches/"):
			ttl = "public, max-age=600" // 10 min for single branch

		case path == "/v1/events/upcoming":
			ttl = "public, max-age=120" // Event list: 2 min

		case path == "/v1/stats":
			ttl = "public, max-age=60" // Service stats: 1 min

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300" // 5 min default for API endpoints
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
