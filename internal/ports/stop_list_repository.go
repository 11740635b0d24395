package ports

import (
	"context"
	"errors"

	"route-optimizer-service/internal/domain"
)

// ErrStopListNotFound is returned when no stop list has the requested id.
var ErrStopListNotFound = errors.New("stop list not found")

// Port: a boundary for retrieving saved stop lists from a data source.
type StopListRepository interface {
	// Return every stored list. Stops are populated in stored order.
	ListStopLists(ctx context.Context) ([]domain.StopList, error)
	// Return one list; the first stop is the route origin.
	GetStopList(ctx context.Context, id string) (domain.StopList, error)
}
