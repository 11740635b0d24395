package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/optimizer"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

const (
	// MaxBatchSize bounds the number of requests accepted by OptimizeBatch.
	MaxBatchSize = 50

	defaultBatchConcurrency = 4
)

var (
	ErrBatchTooLarge = fmt.Errorf("batch exceeds %d requests", MaxBatchSize)
	ErrNoRepository  = errors.New("stop list repository is not configured")
)

// OptionOverrides replaces individual service defaults for one request.
// Nil fields keep the default.
type OptionOverrides struct {
	ClosedTour      *bool
	ExactThreshold  *int
	MaxTwoOptPasses *int
}

type BatchItem struct {
	Stops     []domain.Stop
	Overrides OptionOverrides
}

// BatchResult carries either a route or the error for one batch item.
type BatchResult struct {
	Index int
	Route domain.Route
	Err   error
}

// RouteService fronts the optimizer with stop list lookup and result caching.
// Repo and Cache are optional.
type RouteService struct {
	Repo             ports.StopListRepository
	Cache            ports.RouteCache
	Defaults         optimizer.Options
	BatchConcurrency int
}

func NewRouteService(repo ports.StopListRepository, cache ports.RouteCache, defaults optimizer.Options, batchConcurrency int) *RouteService {
	return &RouteService{
		Repo:             repo,
		Cache:            cache,
		Defaults:         defaults,
		BatchConcurrency: batchConcurrency,
	}
}

func (s *RouteService) options(ov OptionOverrides) optimizer.Options {
	opts := s.Defaults
	if ov.ClosedTour != nil {
		opts.ClosedTour = *ov.ClosedTour
	}
	if ov.ExactThreshold != nil {
		opts.ExactThreshold = *ov.ExactThreshold
	}
	if ov.MaxTwoOptPasses != nil {
		opts.MaxTwoOptPasses = *ov.MaxTwoOptPasses
	}
	return opts
}

// Optimize returns the route for stops, serving it from the cache when the
// same stops and effective options were solved before. Cache failures are
// logged and never fail the request.
func (s *RouteService) Optimize(ctx context.Context, stops []domain.Stop, ov OptionOverrides) (_ domain.Route, err error) {
	defer obs.Time(ctx, "routes.Optimize")(&err)

	opt, err := optimizer.New(s.options(ov))
	if err != nil {
		return domain.Route{}, fmt.Errorf("optimize route: %w", err)
	}

	// Inputs with fewer than two stops bypass the cache.
	useCache := s.Cache != nil && len(stops) >= 2

	var key string
	if useCache {
		key = RouteKey(stops, opt.Options())
		route, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("req_id=%s cache read failed key=%s err=%v", obs.RequestID(ctx), key, err)
		} else if ok {
			return route, nil
		}
	}

	route, err := opt.Optimize(stops)
	if err != nil {
		return domain.Route{}, fmt.Errorf("optimize route: %w", err)
	}

	if useCache {
		if err := s.Cache.Put(ctx, key, route); err != nil {
			log.Printf("req_id=%s cache write failed key=%s err=%v", obs.RequestID(ctx), key, err)
		}
	}

	return route, nil
}

// OptimizeStopList loads a stored stop list and optimizes it. The first
// stored stop is the origin. The loaded list is returned with the route.
func (s *RouteService) OptimizeStopList(ctx context.Context, id string, ov OptionOverrides) (_ domain.StopList, _ domain.Route, err error) {
	defer obs.Time(ctx, "routes.OptimizeStopList")(&err)

	if s.Repo == nil {
		return domain.StopList{}, domain.Route{}, fmt.Errorf("optimize stop list: %w", ErrNoRepository)
	}

	list, err := s.Repo.GetStopList(ctx, id)
	if err != nil {
		return domain.StopList{}, domain.Route{}, fmt.Errorf("optimize stop list: %w", err)
	}

	route, err := s.Optimize(ctx, list.Stops, ov)
	if err != nil {
		return domain.StopList{}, domain.Route{}, fmt.Errorf("optimize stop list %q: %w", id, err)
	}

	return list, route, nil
}

// OptimizeBatch solves independent requests concurrently, at most
// BatchConcurrency at a time. Results are returned in input order and
// per-item failures are reported in BatchResult.Err. Items not started
// before ctx is cancelled carry the context error.
func (s *RouteService) OptimizeBatch(ctx context.Context, items []BatchItem) (_ []BatchResult, err error) {
	defer obs.Time(ctx, "routes.OptimizeBatch")(&err)

	if len(items) > MaxBatchSize {
		return nil, fmt.Errorf("optimize batch: %d requests: %w", len(items), ErrBatchTooLarge)
	}

	limit := s.BatchConcurrency
	if limit < 1 {
		limit = defaultBatchConcurrency
	}

	results := make([]BatchResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		results[i].Index = i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			route, err := s.Optimize(gctx, item.Stops, item.Overrides)
			results[i].Route = route
			results[i].Err = err
			return nil
		})
	}

	// Items never return an error to the group.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("optimize batch: %w", err)
	}

	return results, nil
}
