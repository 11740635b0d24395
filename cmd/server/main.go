package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, route cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	conn, dialect, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	routeCache, closeCache, err := openCache(cfg, conn, dialect)
	if err != nil {
		return err
	}
	defer closeCache()

	repo := repositories.NewSQLStopListRepository(conn, dialect)
	svc := services.NewRouteService(repo, routeCache, cfg.Optimizer, cfg.BatchConcurrency)
	router := api.NewRouter(repo, svc, conn)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s store=%s closed_tour=%t exact_threshold=%d",
			cfg.Port, dialect, cfg.Optimizer.ClosedTour, cfg.Optimizer.ExactThreshold)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal %v, starting graceful shutdown", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: graceful shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// openStore uses Postgres when DATABASE_URL is set. Otherwise it opens the
// local SQLite file and seeds demo stop lists on startup.
func openStore(cfg config.Config) (*sql.DB, repositories.Dialect, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, 0, err
		}
		if err := repositories.InitSchema(conn); err != nil {
			_ = conn.Close()
			return nil, 0, err
		}
		return conn, repositories.DialectPostgres, nil
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, 0, fmt.Errorf("open store: create %q: %w", dir, err)
		}
	}

	conn, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, 0, err
	}

	if err := initAndSeed(conn, cfg.SeedPath); err != nil {
		_ = conn.Close()
		return nil, 0, err
	}

	return conn, repositories.DialectSQLite, nil
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(conn, repositories.DialectSQLite, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// openCache prefers redis when REDIS_URL is set and falls back to the
// route_cache table of the SQL store.
func openCache(cfg config.Config, conn *sql.DB, dialect repositories.Dialect) (ports.RouteCache, func(), error) {
	if cfg.RedisURL == "" {
		log.Printf("Route cache backend=sql ttl=%s", cfg.RouteCacheTTL)
		return cache.NewSQLRouteCache(conn, dialect, cfg.RouteCacheTTL), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("Route cache backend=redis ttl=%s", cfg.RouteCacheTTL)
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Printf("redis close failed: %v", err)
		}
	}
	return cache.NewRedisRouteCache(client, cfg.RouteCacheTTL), closeFn, nil
}
