package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// RedisRouteCache stores routes as JSON values with a TTL.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}

	return client, nil
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.Client == nil {
		return domain.Route{}, false, errors.New("route cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Route{}, false, nil
	}
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("route cache: get %q: %w", key, err)
	}

	var route domain.Route
	if err := json.Unmarshal(raw, &route); err != nil {
		return domain.Route{}, false, fmt.Errorf("route cache: decode %q: %w", key, err)
	}

	return route, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, route domain.Route) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("route cache: redis client is nil")
	}

	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("route cache: encode %q: %w", key, err)
	}

	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("route cache: set %q: %w", key, err)
	}

	return nil
}
