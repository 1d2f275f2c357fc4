/*
Package store defines persistence for operator-curated holidays.

PURPOSE:
  The calculator never touches storage. Stores hold the holidays an operator
  adds at runtime; the API layer reads them once into an immutable
  calendar.Set snapshot and hands that to the calculator.

KEY INTERFACES:
  HolidayStore: save (upsert by date), delete, list

IMPLEMENTATIONS:
  - store/memory:   In-memory, for tests and storage.driver=memory
  - store/sqlite:   SQLite via database/sql (default)
  - store/postgres: PostgreSQL via pgxpool

UPSERT BY DATE:
  A date holds at most one stored holiday. Saving a holiday on a date that
  already exists renames it and keeps the existing ID.

SEE ALSO:
  - calendar/calendar.go: Holiday and Set
  - api/handlers.go: Snapshot refresh after mutations
*/
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/warp/vacation-pay/calendar"
)

var (
	// ErrHolidayNotFound is returned when deleting an unknown holiday ID.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrInvalidHoliday is returned when a holiday has no date.
	ErrInvalidHoliday = errors.New("invalid holiday: date required")
)

// HolidayStore persists holidays.
type HolidayStore interface {
	// SaveHoliday inserts or renames the holiday on h.Date and returns the stored record.
	SaveHoliday(ctx context.Context, h calendar.Holiday) (calendar.Holiday, error)

	// DeleteHoliday removes a holiday by ID. Returns ErrHolidayNotFound if absent.
	DeleteHoliday(ctx context.Context, id string) error

	// ListHolidays returns holidays of a year sorted by date. Year 0 lists all.
	ListHolidays(ctx context.Context, year int) ([]calendar.Holiday, error)

	Close() error
}

// NewID returns a fresh holiday ID.
func NewID() string {
	return "hol-" + uuid.NewString()
}

// Prepare checks h and assigns an ID when it has none.
func Prepare(h calendar.Holiday) (calendar.Holiday, error) {
	if h.Date.IsZero() {
		return h, ErrInvalidHoliday
	}
	if h.ID == "" {
		h.ID = NewID()
	}
	return h, nil
}

// Snapshot builds an immutable calendar from base lists plus every stored
// holiday. Stored holidays win over base entries on the same date.
func Snapshot(ctx context.Context, s HolidayStore, base ...[]calendar.Holiday) (*calendar.Set, error) {
	stored, err := s.ListHolidays(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	return calendar.Merge(append(base, stored)...), nil
}

// Import saves every holiday and returns how many were written.
func Import(ctx context.Context, s HolidayStore, holidays []calendar.Holiday) (int, error) {
	for i, h := range holidays {
		if _, err := s.SaveHoliday(ctx, h); err != nil {
			return i, fmt.Errorf("failed to save holiday %s: %w", h.Date, err)
		}
	}
	return len(holidays), nil
}
