package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Contract for storing computed routes by a deterministic request key.
type RouteCache interface {
	// Return the cached route and whether it was found.
	Get(ctx context.Context, key string) (domain.Route, bool, error)
	// Store a route under key, replacing any previous value.
	Put(ctx context.Context, key string, route domain.Route) error
}
