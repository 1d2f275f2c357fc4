// Package postgres provides a PostgreSQL-backed HolidayStore using pgxpool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/store"
)

type Store struct {
	DB *pgxpool.Pool
}

var _ store.HolidayStore = (*Store)(nil)

// Connect opens a pool for databaseURL and migrates the schema.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{DB: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, `
    CREATE TABLE IF NOT EXISTS holidays (
      id TEXT PRIMARY KEY,
      date DATE NOT NULL UNIQUE,
      name TEXT NOT NULL DEFAULT '',
      created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )
  `)
	return err
}

func (s *Store) Close() error {
	s.DB.Close()
	return nil
}

func (s *Store) SaveHoliday(ctx context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	h, err := store.Prepare(h)
	if err != nil {
		return h, err
	}

	err = s.DB.QueryRow(ctx, `
    INSERT INTO holidays (id, date, name)
    VALUES ($1, $2, $3)
    ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name
    RETURNING id
  `, h.ID, h.Date.Time(), h.Name).Scan(&h.ID)
	if err != nil {
		return h, fmt.Errorf("failed to save holiday: %w", err)
	}
	return h, nil
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrHolidayNotFound
	}
	return nil
}

func (s *Store) ListHolidays(ctx context.Context, year int) ([]calendar.Holiday, error) {
	var rows pgx.Rows
	var err error
	if year == 0 {
		rows, err = s.DB.Query(ctx, `SELECT id, date, name FROM holidays ORDER BY date, name`)
	} else {
		rows, err = s.DB.Query(ctx, `
      SELECT id, date, name FROM holidays
      WHERE EXTRACT(YEAR FROM date) = $1
      ORDER BY date, name
    `, year)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := []calendar.Holiday{}
	for rows.Next() {
		var h calendar.Holiday
		var d time.Time
		if err := rows.Scan(&h.ID, &d, &h.Name); err != nil {
			return nil, err
		}
		h.Date = calendar.DateOf(d)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
