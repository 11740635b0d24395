package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// SQLRouteCache is a SQL-backed route cache used when no redis is configured.
// It relies on the route_cache table created by repositories.InitSchema.
type SQLRouteCache struct {
	DB      *sql.DB
	Dialect repositories.Dialect
	TTL     time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

func NewSQLRouteCache(db *sql.DB, dialect repositories.Dialect, ttl time.Duration) *SQLRouteCache {
	return &SQLRouteCache{DB: db, Dialect: dialect, TTL: ttl, Now: time.Now}
}

func (s *SQLRouteCache) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Fetch a cached route. Expired rows count as misses.
func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return domain.Route{}, false, errors.New("route cache: db is nil")
	}

	q := s.Dialect.Rebind(`
	SELECT route_json, expires_at
	FROM route_cache
	WHERE cache_key = ?;
	`)

	var raw string
	var expiresAt int64
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&raw, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Route{}, false, nil
		}
		return domain.Route{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	if expiresAt != 0 && s.now().Unix() >= expiresAt {
		return domain.Route{}, false, nil
	}

	var route domain.Route
	if err := json.Unmarshal([]byte(raw), &route); err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache: decode %q: %w", key, err)
	}

	return route, true, nil
}

// Store a route, replacing any previous row for key.
func (s *SQLRouteCache) Put(ctx context.Context, key string, route domain.Route) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("insert route cache: encode %q: %w", key, err)
	}

	var expiresAt int64
	if s.TTL > 0 {
		expiresAt = s.now().Add(s.TTL).Unix()
	}

	q := s.Dialect.Rebind(`
	INSERT INTO route_cache (cache_key, route_json, expires_at)
	VALUES (?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET route_json = EXCLUDED.route_json,
		expires_at = EXCLUDED.expires_at;
	`)
	if _, err := s.DB.ExecContext(ctx, q, key, string(raw), expiresAt); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
