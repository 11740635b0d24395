package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

// Initialize the database schema. The DDL is valid for both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopListsQuery := `
	CREATE TABLE IF NOT EXISTS stop_lists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		list_id TEXT NOT NULL REFERENCES stop_lists(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		stop_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (list_id, position)
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		route_json TEXT NOT NULL,
		expires_at BIGINT NOT NULL
	);
	`

	statements := []string{
		createStopListsQuery,
		createStopsQuery,
		createRouteCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StopListSeed struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Stops []domain.Stop `json:"stops"`
}

// Populate the database with stop lists from a JSON file. Existing lists
// with the same id are replaced.
func SeedFromJSON(db *sql.DB, dialect Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stop lists: read %q: %w", jsonPath, err)
	}

	var data []StopListSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed stop lists: parse json: %w", err)
	}

	return SeedStopLists(db, dialect, data)
}

// SeedStopLists validates and writes lists in a single transaction.
func SeedStopLists(db *sql.DB, dialect Dialect, lists []StopListSeed) error {
	if db == nil {
		return errors.New("seed stop lists: DB is nil")
	}

	for i, item := range lists {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("seed stop lists: item at index %d: id cannot be empty", i+1)
		}
		for j, s := range item.Stops {
			if err := geo.ValidateCoordinate(s.Lat, s.Lng); err != nil {
				return fmt.Errorf("seed stop lists: list %q stop %d: %w", item.ID, j+1, err)
			}
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stop lists: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertList := dialect.Rebind(`
	INSERT INTO stop_lists (id, name)
	VALUES (?, ?)
	ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;
	`)
	deleteStops := dialect.Rebind(`DELETE FROM stops WHERE list_id = ?;`)
	insertStop := dialect.Rebind(`
	INSERT INTO stops (
		list_id,
		position,
		stop_id,
		name,
		lat,
		lng
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)

	stmt, err := tx.Prepare(insertStop)
	if err != nil {
		return fmt.Errorf("seed stop lists: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range lists {
		id := strings.TrimSpace(l.ID)
		if _, err := tx.Exec(upsertList, id, strings.TrimSpace(l.Name)); err != nil {
			return fmt.Errorf("seed stop lists: upsert list id=%q: %w", id, err)
		}
		if _, err := tx.Exec(deleteStops, id); err != nil {
			return fmt.Errorf("seed stop lists: clear stops id=%q: %w", id, err)
		}
		for pos, s := range l.Stops {
			if _, err := stmt.Exec(id, pos, s.ID, s.Name, s.Lat, s.Lng); err != nil {
				return fmt.Errorf("seed stop lists: insert list id=%q stop=%q: %w", id, s.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stop lists: commit tx: %w", err)
	}

	return nil
}
