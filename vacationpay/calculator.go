/*
Package vacationpay computes the vacation pay owed for a period of leave.

PURPOSE:
  Given an average monthly salary and either an explicit number of vacation
  days or an inclusive date range, produce the amount owed. Holidays inside a
  date range are not paid.

FORMULA:
  dailyRate   = round(averageSalary / 29.3, 10, half-up)
  paidDays    = vacationDays                         (day-count request)
              = span(start, end) - holidays(start, end) (date-range request)
  vacationPay = round(dailyRate * paidDays, 2, half-up)

  29.3 is the statutory average number of calendar days per month. It is a
  policy constant, not a per-call setting.

PRECISION:
  All arithmetic is base-10 (shopspring/decimal). Rounding happens exactly
  twice: the daily rate at 10 fractional digits and the final amount at 2.
  decimal's Round and DivRound round half away from zero, which for the
  non-negative values here is half-up.

VALIDATION ORDER (first failure wins):
  1. averageSalary <= 0                  -> ErrInvalidSalary
  2. only one date, or end before start  -> ErrInvalidDateRange
  3. no range and no vacation days       -> ErrMissingDayCount
  4. no range and vacation days < 1      -> ErrInvalidDayCount

CONCURRENCY:
  Calculator holds no mutable state. Calculate is safe to call from any
  number of goroutines as long as the injected calendar is (every calendar
  in package calendar is).

SEE ALSO:
  - errors.go: Validation error taxonomy
  - request.go: Request and Result
  - calendar/calendar.go: HolidayCalendar
*/
package vacationpay

import (
	"github.com/shopspring/decimal"
	"github.com/warp/vacation-pay/calendar"
)

const (
	// AverageDaysPerMonth is the statutory divisor turning a monthly salary into a daily rate.
	AverageDaysPerMonth = "29.3"

	// RatePrecision is the number of fractional digits kept for the daily rate.
	RatePrecision = 10

	// MoneyScale is the number of fractional digits of the amount owed.
	MoneyScale = 2
)

var averageDaysPerMonth = decimal.RequireFromString(AverageDaysPerMonth)

// Calculator computes vacation pay against one holiday calendar.
type Calculator struct {
	holidays calendar.HolidayCalendar
}

// NewCalculator returns a calculator excluding the holidays of cal.
// A nil calendar means no holidays.
func NewCalculator(cal calendar.HolidayCalendar) *Calculator {
	if cal == nil {
		cal = calendar.None{}
	}
	return &Calculator{holidays: cal}
}

// Calculate validates req and returns the vacation pay owed.
// Every error is a *ValidationError.
func (c *Calculator) Calculate(req Request) (Result, error) {
	if err := Validate(req); err != nil {
		return Result{}, err
	}

	res := Result{DailyRate: DailyRate(req.AverageSalary)}

	if req.HasRange() {
		period := req.Period()
		res.TotalDays = period.Len()
		res.Holidays = period.Holidays(c.holidays)
		res.PaidDays = res.TotalDays - len(res.Holidays)
	} else {
		res.TotalDays = *req.VacationDays
		res.PaidDays = *req.VacationDays
	}

	res.VacationPay = res.DailyRate.
		Mul(decimal.NewFromInt(int64(res.PaidDays))).
		Round(MoneyScale)

	return res, nil
}

// Validate checks req in rule order and returns the first violation.
func Validate(req Request) error {
	if !req.AverageSalary.IsPositive() {
		return invalid(CodeInvalidSalary, "averageSalary", MsgInvalidSalary)
	}

	if req.HasRange() {
		if req.StartDate == nil {
			return invalid(CodeInvalidDateRange, "startDate", MsgIncompleteRange)
		}
		if req.EndDate == nil {
			return invalid(CodeInvalidDateRange, "endDate", MsgIncompleteRange)
		}
		if err := req.Period().Validate(); err != nil {
			return invalid(CodeInvalidDateRange, "endDate", MsgInvalidDateRange)
		}
		return nil
	}

	if req.VacationDays == nil {
		return invalid(CodeMissingDayCount, "vacationDays", MsgMissingDayCount)
	}
	if *req.VacationDays < 1 {
		return invalid(CodeInvalidDayCount, "vacationDays", MsgInvalidDayCount)
	}
	return nil
}

// DailyRate returns salary / 29.3 rounded half-up to RatePrecision digits.
func DailyRate(salary decimal.Decimal) decimal.Decimal {
	return salary.DivRound(averageDaysPerMonth, RatePrecision)
}
