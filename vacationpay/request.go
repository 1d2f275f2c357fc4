package vacationpay

import (
	"github.com/shopspring/decimal"
	"github.com/warp/vacation-pay/calendar"
)

// =============================================================================
// REQUEST
// =============================================================================

// Request is the input of one calculation. Either VacationDays or both dates
// must be set; when the dates are set VacationDays is ignored.
type Request struct {
	AverageSalary decimal.Decimal
	VacationDays  *int
	StartDate     *calendar.Date
	EndDate       *calendar.Date
}

// ForDays builds a request paid by explicit day count.
func ForDays(salary decimal.Decimal, days int) Request {
	return Request{AverageSalary: salary, VacationDays: &days}
}

// ForPeriod builds a request paid over the inclusive range [start, end].
func ForPeriod(salary decimal.Decimal, start, end calendar.Date) Request {
	return Request{AverageSalary: salary, StartDate: &start, EndDate: &end}
}

// HasRange reports whether any date of the range was supplied.
func (r Request) HasRange() bool {
	return r.StartDate != nil || r.EndDate != nil
}

// Period returns the requested range. Only meaningful when both dates are set.
func (r Request) Period() calendar.Period {
	var p calendar.Period
	if r.StartDate != nil {
		p.Start = *r.StartDate
	}
	if r.EndDate != nil {
		p.End = *r.EndDate
	}
	return p
}

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of a calculation. VacationPay is the amount owed;
// the other fields record how it was reached.
type Result struct {
	VacationPay decimal.Decimal // scale 2, never negative
	DailyRate   decimal.Decimal // scale RatePrecision
	TotalDays   int             // days requested: the day count, or the inclusive span
	PaidDays    int             // TotalDays minus holidays in the span
	Holidays    []calendar.Date // holidays excluded from the span, in order
}
