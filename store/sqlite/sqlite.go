/*
Package sqlite provides a SQLite-backed HolidayStore.

PURPOSE:
  Persists operator-curated holidays in a single table. In production the
  same schema runs on PostgreSQL (see store/postgres) with only minor
  dialect differences.

KEY TABLES:
  holidays: one row per non-working date (date is unique)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite allows one writer at a time;
  the mutex keeps writers from tripping over SQLITE_BUSY.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  s, err := sqlite.New("./data/holidays.db")
  if err != nil {
      log.Fatal(err)
  }
  defer s.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - store/store.go: Interface definition
  - store/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/store"
)

// Store implements store.HolidayStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.HolidayStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_date
		ON holidays(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// HOLIDAY STORE IMPLEMENTATION
// =============================================================================

// SaveHoliday inserts a holiday, or renames the one already on that date.
func (s *Store) SaveHoliday(ctx context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	h, err := store.Prepare(h)
	if err != nil {
		return h, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, date, name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			name = excluded.name
	`

	_, err = s.db.ExecContext(ctx, query,
		h.ID,
		h.Date.String(),
		h.Name,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return h, fmt.Errorf("failed to save holiday: %w", err)
	}

	// On conflict the row keeps its existing ID.
	var id string
	if err := s.db.QueryRowContext(ctx, "SELECT id FROM holidays WHERE date = ?", h.Date.String()).Scan(&id); err != nil {
		return h, fmt.Errorf("failed to read back holiday: %w", err)
	}
	h.ID = id
	return h, nil
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrHolidayNotFound
	}
	return nil
}

// ListHolidays returns holidays of a year (0 = all) sorted by date.
func (s *Store) ListHolidays(ctx context.Context, year int) ([]calendar.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, date, name FROM holidays ORDER BY date ASC, name ASC`
	args := []any{}
	if year != 0 {
		query = `
			SELECT id, date, name FROM holidays
			WHERE strftime('%Y', date) = ?
			ORDER BY date ASC, name ASC
		`
		args = append(args, fmt.Sprintf("%04d", year))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := []calendar.Holiday{}
	for rows.Next() {
		var h calendar.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &dateStr, &h.Name); err != nil {
			return nil, err
		}
		d, err := calendar.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt holiday row %s: %w", h.ID, err)
		}
		h.Date = d
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}
