// Package optimizer solves fixed-origin Travelling Salesperson instances
// over great-circle distances.
//
// Given stops s0…s(n−1), it returns a visiting order that starts at s0,
// visits every stop exactly once and, for closed tours, returns to s0.
//
//   - n ≤ ExactThreshold: exhaustive search with pruning, globally optimal,
//     ties broken by the lexicographically-first id sequence.
//   - n > ExactThreshold: nearest-neighbour construction followed by
//     2-opt local search, capped at MaxTwoOptPasses full passes.
//
// All input validation happens before any distance is computed. Solving is
// pure and deterministic: the same stops and options always produce the
// same route, and an *Optimizer is safe for concurrent use.
package optimizer

import (
	"fmt"

	"route-optimizer-service/internal/domain"
)

// Optimizer holds validated options. It keeps no state between calls.
type Optimizer struct {
	opts Options
}

// New validates opts and returns an Optimizer.
func New(opts Options) (*Optimizer, error) {
	o, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	return &Optimizer{opts: o}, nil
}

// Options returns the effective options after defaults were applied.
func (o *Optimizer) Options() Options { return o.opts }

// Optimize is a one-shot helper equivalent to New(opts) followed by Optimize.
func Optimize(stops []domain.Stop, opts Options) (domain.Route, error) {
	o, err := New(opts)
	if err != nil {
		return domain.Route{}, err
	}

	return o.Optimize(stops)
}

// Optimize computes the visiting order for stops. stops[0] is the origin.
//
// Errors:
//   - ErrEmptyInput when stops is nil,
//   - *StopError wrapping ErrDuplicateID or geo.ErrInvalidCoordinate.
func (o *Optimizer) Optimize(stops []domain.Stop) (domain.Route, error) {
	if err := validateStops(stops); err != nil {
		return domain.Route{}, err
	}

	n := len(stops)
	closed := o.opts.ClosedTour

	if n < 2 {
		order := make([]int, n)
		return buildRoute(stops, nil, order, closed, domain.MethodTrivial, 0), nil
	}

	dist, err := distanceMatrix(stops)
	if err != nil {
		return domain.Route{}, fmt.Errorf("optimize: build distance matrix: %w", err)
	}

	ids := make([]string, n)
	for i, s := range stops {
		ids[i] = s.ID
	}

	if n <= 2 || n <= o.opts.ExactThreshold {
		order := solveExact(dist, ids, closed)
		return buildRoute(stops, dist, order, closed, domain.MethodExact, 0), nil
	}

	order := nearestNeighbor(dist, ids)
	passes := twoOpt(dist, order, closed, o.opts.MaxTwoOptPasses)

	return buildRoute(stops, dist, order, closed, domain.MethodHeuristic, passes), nil
}
