package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"route-optimizer-service/internal/optimizer"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	DBPath      string
	SeedPath    string

	RedisURL      string
	RouteCacheTTL time.Duration

	Optimizer        optimizer.Options
	BatchConcurrency int
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s=%q is not a boolean: %w", key, v, err)
	}
	return b, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, v, err)
	}
	return d, nil
}

// Load reads every setting and validates the optimizer options.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: Get("DATABASE_URL", ""),
		DBPath:      Get("DB_PATH", "data/app.db"),
		SeedPath:    Get("SEED_PATH", "data/seeds/stop_lists.json"),
		RedisURL:    Get("REDIS_URL", ""),
	}

	var err error
	if cfg.RouteCacheTTL, err = GetDuration("ROUTE_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RouteCacheTTL < 0 {
		return Config{}, fmt.Errorf("config: ROUTE_CACHE_TTL must not be negative")
	}

	opts := optimizer.DefaultOptions()
	if opts.ClosedTour, err = GetBool("CLOSED_TOUR", opts.ClosedTour); err != nil {
		return Config{}, err
	}
	if opts.ExactThreshold, err = GetInt("EXACT_THRESHOLD", opts.ExactThreshold); err != nil {
		return Config{}, err
	}
	if opts.MaxTwoOptPasses, err = GetInt("MAX_TWO_OPT_PASSES", opts.MaxTwoOptPasses); err != nil {
		return Config{}, err
	}
	o, err := optimizer.New(opts)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Optimizer = o.Options()

	if cfg.BatchConcurrency, err = GetInt("BATCH_CONCURRENCY", 4); err != nil {
		return Config{}, err
	}
	if cfg.BatchConcurrency < 1 {
		return Config{}, fmt.Errorf("config: BATCH_CONCURRENCY must be at least 1, got %d", cfg.BatchConcurrency)
	}

	return cfg, nil
}
