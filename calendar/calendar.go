/*
Package calendar provides non-working holiday lookups for vacation pay.

PURPOSE:
  The vacation pay calculator excludes holidays from a date range. This
  package owns the "is this date a holiday?" question and nothing else.

KEY CONCEPTS:
  - Date:            A calendar day (year, month, day) usable as a map key
  - Period:          An inclusive range of Dates
  - HolidayCalendar: The lookup interface injected into the calculator
  - Set:             Immutable, map-backed HolidayCalendar

DATA, NOT LOGIC:
  Calendars are sparse and year-scoped. A date outside the curated years is
  simply not a holiday; no error is raised. Covering another year means
  adding dates (Russia2026, a YAML overrides file, the holiday store), not
  changing code.

CONCURRENCY:
  Every implementation here is read-only after construction and safe for
  concurrent use without locking.

SEE ALSO:
  - russia.go: Built-in 2026 holiday list
  - yaml.go: Overrides file loader
  - vacationpay/calculator.go: The consumer of HolidayCalendar
*/
package calendar

import "sort"

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

// HolidayCalendar answers whether a date is a non-working holiday.
type HolidayCalendar interface {
	IsHoliday(d Date) bool
}

// Holiday is a named non-working date.
type Holiday struct {
	ID   string
	Date Date
	Name string
}

// None is a calendar without holidays.
type None struct{}

func (None) IsHoliday(Date) bool { return false }

// =============================================================================
// SET - Immutable map-backed calendar
// =============================================================================

// Set is a HolidayCalendar backed by a set keyed on exact calendar date.
type Set struct {
	byDate map[Date]Holiday
}

// NewSet builds a calendar from holidays. When two holidays share a date
// the later one wins.
func NewSet(holidays ...Holiday) *Set {
	s := &Set{byDate: make(map[Date]Holiday, len(holidays))}
	for _, h := range holidays {
		s.byDate[h.Date] = h
	}
	return s
}

// IsHoliday reports whether d is in the set. A nil Set has no holidays.
func (s *Set) IsHoliday(d Date) bool {
	if s == nil {
		return false
	}
	_, ok := s.byDate[d]
	return ok
}

// Lookup returns the holiday on d, if any.
func (s *Set) Lookup(d Date) (Holiday, bool) {
	if s == nil {
		return Holiday{}, false
	}
	h, ok := s.byDate[d]
	return h, ok
}

// Len returns the number of holiday dates.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byDate)
}

// Holidays returns the holidays of the given year sorted by date.
// Year 0 returns every holiday.
func (s *Set) Holidays(year int) []Holiday {
	if s == nil {
		return nil
	}
	out := make([]Holiday, 0, len(s.byDate))
	for _, h := range s.byDate {
		if year == 0 || h.Date.Year == year {
			out = append(out, h)
		}
	}
	SortHolidays(out)
	return out
}

// SortHolidays orders holidays by date, then name.
func SortHolidays(hs []Holiday) {
	sort.Slice(hs, func(i, j int) bool {
		if hs[i].Date != hs[j].Date {
			return hs[i].Date.Before(hs[j].Date)
		}
		return hs[i].Name < hs[j].Name
	})
}

// =============================================================================
// MERGE - Several sources behind one calendar
// =============================================================================

// Merge flattens holiday lists into one Set. Later lists override earlier
// ones on the same date, so operator overrides can rename built-in entries.
func Merge(lists ...[]Holiday) *Set {
	var all []Holiday
	for _, l := range lists {
		all = append(all, l...)
	}
	return NewSet(all...)
}
