package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	storeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Store",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"slug":        &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"status":      &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"logo_url":    &graphql.Field{Type: graphql.String},
		},
	})

	branchType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Branch",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.String},
			"store_id":   &graphql.Field{Type: graphql.String},
			"store_name": &graphql.Field{Type: graphql.String},
			"name":       &graphql.Field{Type: graphql.String},
			"address":    &graphql.Field{Type: graphql.String},
			"location":   &graphql.Field{Type: geoPointType},
			"rating":     &graphql.Field{Type: graphql.Float},
			"image_url":  &graphql.Field{Type: graphql.String},
			"tags":       &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	branchViewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BranchView",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"name":           &graphql.Field{Type: graphql.String},
			"store_name":     &graphql.Field{Type: graphql.String},
			"address":        &graphql.Field{Type: graphql.String},
			"location":       &graphql.Field{Type: geoPointType},
			"rating":         &graphql.Field{Type: graphql.Float},
			"is_open":        &graphql.Field{Type: graphql.Boolean},
			"distance":       &graphql.Field{Type: graphql.String},
			"distance_value": &graphql.Field{Type: graphql.Float},
			"tags":           &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	reviewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Review",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.String},
			"branch_id": &graphql.Field{Type: graphql.String},
			"user_id":   &graphql.Field{Type: graphql.String},
			"rating":    &graphql.Field{Type: graphql.Int},
			"comment":   &graphql.Field{Type: graphql.String},
		},
	})

	eventType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"branch_id":   &graphql.Field{Type: graphql.String},
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
		},
	})

	scheduleInfoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ScheduleInfo",
		Fields: graphql.Fields{
			"is_open":        &graphql.Field{Type: graphql.Boolean},
			"open_time":      &graphql.Field{Type: graphql.String},
			"close_time":     &graphql.Field{Type: graphql.String},
			"next_open_day":  &graphql.Field{Type: graphql.String},
			"next_open_time": &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"stores": &graphql.Field{
				Type:        graphql.NewList(storeType),
				Description: "List all publicly listed stores",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Stores.ListApproved(p.Context)
				},
			},
			"store": &graphql.Field{
				Type:        storeType,
				Description: "Get a store by slug",
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					slug := p.Args["slug"].(string)
					return deps.Stores.GetBySlug(p.Context, slug)
				},
			},
			"branchesNearby": &graphql.Field{
				Type:        graphql.NewList(branchViewType),
				Description: "Find branches near a location",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 1000.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lon := p.Args["lon"].(float64)
					radius := p.Args["radius"].(float64)
					limit := p.Args["limit"].(int)
					return deps.Branches.FindNearby(p.Context, lat, lon, radius, limit)
				},
			},
			"searchBranches": &graphql.Field{
				Type:        graphql.NewList(branchViewType),
				Description: "Search branches by name (fuzzy matching)",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					limit := p.Args["limit"].(int)
					return deps.Branches.Search(p.Context, q, nil, limit)
				},
			},
			"branch": &graphql.Field{
				Type:        branchType,
				Description: "Get a branch by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Branches.GetByID(p.Context, id)
				},
			},
			"branchSchedule": &graphql.Field{
				Type:        scheduleInfoType,
				Description: "Open/closed state of a branch right now",
				Args: graphql.FieldConfigArgument{
					"branch_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["branch_id"].(string)
					return deps.Branches.ScheduleFor(p.Context, id, time.Now())
				},
			},
			"branchReviews": &graphql.Field{
				Type:        graphql.NewList(reviewType),
				Description: "Most recent reviews of a branch",
				Args: graphql.FieldConfigArgument{
					"branch_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["branch_id"].(string)
					limit := p.Args["limit"].(int)
					return deps.Reviews.ListByBranch(p.Context, id, limit)
				},
			},
			"upcomingEvents": &graphql.Field{
				Type:        graphql.NewList(eventType),
				Description: "Events starting soon, across all branches",
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					limit := p.Args["limit"].(int)
					return deps.Events.ListUpcoming(p.Context, limit)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}

// Ensure domain types implement field resolvers for graphql-go via struct tags
var _ = domain.Branch{}
var _ = domain.Store{}
var _ = domain.Review{}
