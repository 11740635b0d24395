package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// SQL-backed implementation of the StopListRepository port.
type SQLStopListRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLStopListRepository(db *sql.DB, dialect Dialect) *SQLStopListRepository {
	return &SQLStopListRepository{DB: db, Dialect: dialect}
}

// Return all stop lists ordered by id, each with its stops in stored order.
func (s *SQLStopListRepository) ListStopLists(ctx context.Context) (_ []domain.StopList, err error) {
	defer obs.Time(ctx, "stoplists.repo.List")(&err)

	if s.DB == nil {
		return nil, errors.New("stop list repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		id,
		name
	FROM stop_lists
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list stop lists: query stop_lists table: %w", err)
	}
	defer rows.Close()

	lists := make([]domain.StopList, 0, 16)
	index := make(map[string]int)
	for rows.Next() {
		var l domain.StopList
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("list stop lists: scan row: %w", err)
		}
		l.Stops = []domain.Stop{}
		index[l.ID] = len(lists)
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stop lists: row iteration: %w", err)
	}

	stopRows, err := s.DB.QueryContext(ctx, `
	SELECT
		list_id,
		stop_id,
		name,
		lat,
		lng
	FROM stops
	ORDER BY list_id, position;
	`)
	if err != nil {
		return nil, fmt.Errorf("list stop lists: query stops table: %w", err)
	}
	defer stopRows.Close()

	for stopRows.Next() {
		var listID string
		var st domain.Stop
		if err := stopRows.Scan(&listID, &st.ID, &st.Name, &st.Lat, &st.Lng); err != nil {
			return nil, fmt.Errorf("list stop lists: scan stop row: %w", err)
		}
		if i, ok := index[listID]; ok {
			lists[i].Stops = append(lists[i].Stops, st)
		}
	}
	if err := stopRows.Err(); err != nil {
		return nil, fmt.Errorf("list stop lists: stop row iteration: %w", err)
	}

	return lists, nil
}

// Return the stop list with id, or ports.ErrStopListNotFound.
func (s *SQLStopListRepository) GetStopList(ctx context.Context, id string) (_ domain.StopList, err error) {
	defer obs.Time(ctx, "stoplists.repo.Get")(&err)

	if s.DB == nil {
		return domain.StopList{}, errors.New("stop list repository: DB is nil")
	}

	l := domain.StopList{ID: id, Stops: []domain.Stop{}}
	q := s.Dialect.Rebind(`SELECT name FROM stop_lists WHERE id = ?;`)
	if err := s.DB.QueryRowContext(ctx, q, id).Scan(&l.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.StopList{}, fmt.Errorf("get stop list %q: %w", id, ports.ErrStopListNotFound)
		}
		return domain.StopList{}, fmt.Errorf("get stop list %q: query stop_lists table: %w", id, err)
	}

	q = s.Dialect.Rebind(`
	SELECT
		stop_id,
		name,
		lat,
		lng
	FROM stops
	WHERE list_id = ?
	ORDER BY position;
	`)
	rows, err := s.DB.QueryContext(ctx, q, id)
	if err != nil {
		return domain.StopList{}, fmt.Errorf("get stop list %q: query stops table: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var st domain.Stop
		if err := rows.Scan(&st.ID, &st.Name, &st.Lat, &st.Lng); err != nil {
			return domain.StopList{}, fmt.Errorf("get stop list %q: scan row: %w", id, err)
		}
		l.Stops = append(l.Stops, st)
	}
	if err := rows.Err(); err != nil {
		return domain.StopList{}, fmt.Errorf("get stop list %q: row iteration: %w", id, err)
	}

	return l, nil
}
