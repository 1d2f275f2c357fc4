// Package memory provides an in-memory HolidayStore.
package memory

import (
	"context"
	"sync"

	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/store"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	byDate map[calendar.Date]calendar.Holiday
	dates  map[string]calendar.Date // id -> date
}

var _ store.HolidayStore = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		byDate: make(map[calendar.Date]calendar.Holiday),
		dates:  make(map[string]calendar.Date),
	}
}

func (m *Memory) SaveHoliday(_ context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.byDate[h.Date]; ok {
		existing.Name = h.Name
		m.byDate[h.Date] = existing
		return existing, nil
	}

	h, err := store.Prepare(h)
	if err != nil {
		return h, err
	}
	m.byDate[h.Date] = h
	m.dates[h.ID] = h.Date
	return h, nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.dates[id]
	if !ok {
		return store.ErrHolidayNotFound
	}
	delete(m.dates, id)
	delete(m.byDate, d)
	return nil
}

func (m *Memory) ListHolidays(_ context.Context, year int) ([]calendar.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]calendar.Holiday, 0, len(m.byDate))
	for _, h := range m.byDate {
		if year == 0 || h.Date.Year == year {
			out = append(out, h)
		}
	}
	calendar.SortHolidays(out)
	return out, nil
}

func (m *Memory) Close() error { return nil }
