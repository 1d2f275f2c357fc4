package calendar

import "errors"

// ErrInvalidPeriod is returned when a period ends before it starts.
var ErrInvalidPeriod = errors.New("invalid period: end before start")

// =============================================================================
// PERIOD - Inclusive range of calendar days
// =============================================================================

// Period is the inclusive range [Start, End].
type Period struct {
	Start Date
	End   Date
}

// Validate returns ErrInvalidPeriod when End precedes Start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Len returns the number of days in the period, counting both ends.
// A period with End before Start has length 0.
func (p Period) Len() int {
	n := p.Start.DaysUntil(p.End) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Days returns all days in the period in order.
func (p Period) Days() []Date {
	days := make([]Date, 0, p.Len())
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Holidays returns the days of the period the calendar marks as holidays, in order.
func (p Period) Holidays(cal HolidayCalendar) []Date {
	var out []Date
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		if cal.IsHoliday(current) {
			out = append(out, current)
		}
	}
	return out
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
