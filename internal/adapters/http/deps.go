package http

import (
	"github.com/nats-io/nats.go"

	"github.com/brewradar/brewradar/internal/adapters/postgres"
	"github.com/brewradar/brewradar/internal/adapters/valkey"
	"github.com/brewradar/brewradar/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Branches  *usecases.BranchService
	Stores    *usecases.StoreService
	Reviews   *usecases.ReviewService
	Events    *usecases.EventService
	Stamps    *usecases.StampService
	Rewards   *usecases.RewardService
	Favorites *usecases.FavoriteService
	Routes    *usecases.RouteService
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache

	// AdminToken guards the moderation endpoints. Empty disables them.
	AdminToken string
}
