package vacationpay_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/vacationpay"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

func intPtr(n int) *int { return &n }

// recordingCalendar marks a fixed set of dates as holidays and records every lookup.
type recordingCalendar struct {
	mu       sync.Mutex
	holidays map[calendar.Date]bool
	asked    []calendar.Date
}

func newRecordingCalendar(holidays ...calendar.Date) *recordingCalendar {
	c := &recordingCalendar{holidays: make(map[calendar.Date]bool)}
	for _, d := range holidays {
		c.holidays[d] = true
	}
	return c
}

func (c *recordingCalendar) IsHoliday(d calendar.Date) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.asked = append(c.asked, d)
	return c.holidays[d]
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "want %s, got %s", want, got.String())
}

// =============================================================================
// REFERENCE SCENARIOS
// =============================================================================

func TestCalculate_TypicalDayCount(t *testing.T) {
	// GIVEN: average salary 15 000, 14 vacation days
	// WHEN: calculating
	// THEN: 15000 / 29.3 * 14 = 7167.24
	calc := vacationpay.NewCalculator(nil)

	res, err := calc.Calculate(vacationpay.ForDays(money("15000.0"), 14))
	require.NoError(t, err)

	assertMoney(t, "7167.24", res.VacationPay)
	assert.Equal(t, "7167.24", res.VacationPay.StringFixed(2))
	assert.Equal(t, 14, res.TotalDays)
	assert.Equal(t, 14, res.PaidDays)
	assert.Empty(t, res.Holidays)
}

func TestCalculate_OneDay(t *testing.T) {
	calc := vacationpay.NewCalculator(nil)

	res, err := calc.Calculate(vacationpay.ForDays(money("15000.0"), 1))
	require.NoError(t, err)
	assertMoney(t, "511.95", res.VacationPay)
}

func TestCalculate_RangeWithoutHolidays(t *testing.T) {
	// GIVEN: 12-16 May 2026, five days, no holidays
	cal := newRecordingCalendar()
	calc := vacationpay.NewCalculator(cal)

	res, err := calc.Calculate(vacationpay.ForPeriod(money("15000.0"),
		date(2026, time.May, 12), date(2026, time.May, 16)))
	require.NoError(t, err)

	// THEN: 5 x 511.9453924915 = 2559.7269624575 -> 2559.73
	assertMoney(t, "2559.73", res.VacationPay)
	assert.Equal(t, 5, res.TotalDays)
	assert.Equal(t, 5, res.PaidDays)

	// Every day of the range was looked up exactly once, in order.
	assert.Equal(t, []calendar.Date{
		date(2026, time.May, 12), date(2026, time.May, 13), date(2026, time.May, 14),
		date(2026, time.May, 15), date(2026, time.May, 16),
	}, cal.asked)
}

func TestCalculate_RangeExcludesHoliday(t *testing.T) {
	// GIVEN: 23-27 February 2026 with 23 February a holiday
	cal := newRecordingCalendar(date(2026, time.February, 23))
	calc := vacationpay.NewCalculator(cal)

	res, err := calc.Calculate(vacationpay.ForPeriod(money("40000.0"),
		date(2026, time.February, 23), date(2026, time.February, 27)))
	require.NoError(t, err)

	// THEN: 4 paid days x 1365.1877133106 = 5460.7508532424 -> 5460.75
	assert.Equal(t, 5, res.TotalDays)
	assert.Equal(t, 4, res.PaidDays)
	assert.Equal(t, []calendar.Date{date(2026, time.February, 23)}, res.Holidays)
	assertMoney(t, "5460.75", res.VacationPay)
}

func TestCalculate_NegativeSalary(t *testing.T) {
	calc := vacationpay.NewCalculator(nil)

	_, err := calc.Calculate(vacationpay.ForDays(money("-5000.0"), 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, vacationpay.ErrInvalidSalary)

	var verr *vacationpay.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, vacationpay.CodeInvalidSalary, verr.Code)
	assert.Equal(t, "averageSalary", verr.Field)
	assert.Equal(t, vacationpay.MsgInvalidSalary, verr.Message)
}

func TestCalculate_ReversedRange(t *testing.T) {
	calc := vacationpay.NewCalculator(nil)

	_, err := calc.Calculate(vacationpay.ForPeriod(money("40000.0"),
		date(2026, time.February, 27), date(2026, time.February, 23)))
	assert.ErrorIs(t, err, vacationpay.ErrInvalidDateRange)
	assert.Contains(t, err.Error(), vacationpay.MsgInvalidDateRange)
}

// =============================================================================
// VALIDATION ORDER AND BOUNDARIES
// =============================================================================

func TestCalculate_Validation(t *testing.T) {
	start := date(2026, time.May, 12)
	end := date(2026, time.May, 16)

	tests := []struct {
		name    string
		req     vacationpay.Request
		wantErr error
	}{
		{
			name:    "zero salary",
			req:     vacationpay.ForDays(decimal.Zero, 14),
			wantErr: vacationpay.ErrInvalidSalary,
		},
		{
			name:    "salary checked before days",
			req:     vacationpay.ForDays(money("-1"), 0),
			wantErr: vacationpay.ErrInvalidSalary,
		},
		{
			name:    "salary checked before range",
			req:     vacationpay.ForPeriod(money("0"), end, start),
			wantErr: vacationpay.ErrInvalidSalary,
		},
		{
			name:    "zero days",
			req:     vacationpay.ForDays(money("15000"), 0),
			wantErr: vacationpay.ErrInvalidDayCount,
		},
		{
			name:    "negative days",
			req:     vacationpay.ForDays(money("15000"), -3),
			wantErr: vacationpay.ErrInvalidDayCount,
		},
		{
			name:    "nothing to count",
			req:     vacationpay.Request{AverageSalary: money("15000")},
			wantErr: vacationpay.ErrMissingDayCount,
		},
		{
			name:    "only start date",
			req:     vacationpay.Request{AverageSalary: money("15000"), VacationDays: intPtr(3), StartDate: &start},
			wantErr: vacationpay.ErrInvalidDateRange,
		},
		{
			name:    "only end date",
			req:     vacationpay.Request{AverageSalary: money("15000"), EndDate: &end},
			wantErr: vacationpay.ErrInvalidDateRange,
		},
		{
			name:    "reversed range ignores valid day count",
			req:     vacationpay.Request{AverageSalary: money("15000"), VacationDays: intPtr(3), StartDate: &end, EndDate: &start},
			wantErr: vacationpay.ErrInvalidDateRange,
		},
	}

	calc := vacationpay.NewCalculator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Calculate(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, vacationpay.IsValidationError(err))
			assert.True(t, res.VacationPay.IsZero(), "no amount on failure")
		})
	}
}

func TestCalculate_RangeWinsOverDayCount(t *testing.T) {
	// A complete date range takes precedence; vacationDays, even 0, is not consulted.
	start := date(2026, time.May, 12)
	end := date(2026, time.May, 16)
	req := vacationpay.Request{AverageSalary: money("15000"), VacationDays: intPtr(0), StartDate: &start, EndDate: &end}

	res, err := vacationpay.NewCalculator(nil).Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, 5, res.PaidDays)
}

func TestCalculate_SingleDayRange(t *testing.T) {
	d := date(2026, time.May, 12)
	res, err := vacationpay.NewCalculator(nil).Calculate(vacationpay.ForPeriod(money("15000"), d, d))
	require.NoError(t, err)
	assert.Equal(t, 1, res.PaidDays)
	assertMoney(t, "511.95", res.VacationPay)
}

func TestCalculate_AllHolidaysIsZeroNotError(t *testing.T) {
	// GIVEN: 1-8 January 2026, every day a holiday
	calc := vacationpay.NewCalculator(calendar.NewSet(calendar.Russia2026()...))

	res, err := calc.Calculate(vacationpay.ForPeriod(money("50000"),
		date(2026, time.January, 1), date(2026, time.January, 8)))
	require.NoError(t, err)

	assert.Equal(t, 8, res.TotalDays)
	assert.Equal(t, 0, res.PaidDays)
	assert.True(t, res.VacationPay.IsZero())
	assert.Equal(t, "0.00", res.VacationPay.StringFixed(2))
}

// everyDay marks every date as a holiday.
type everyDay struct{}

func (everyDay) IsHoliday(calendar.Date) bool { return true }

func TestCalculate_RangeLongerThanDuration(t *testing.T) {
	// 1700-01-01..2100-12-31 is 146462 days, past the ~292 years time.Duration holds.
	start, end := date(1700, time.January, 1), date(2100, time.December, 31)

	res, err := vacationpay.NewCalculator(nil).Calculate(vacationpay.ForPeriod(money("29.3"), start, end))
	require.NoError(t, err)
	assert.Equal(t, 146462, res.TotalDays)
	assert.Equal(t, 146462, res.PaidDays)
	assertMoney(t, "146462.00", res.VacationPay)

	byCount, err := vacationpay.NewCalculator(nil).Calculate(vacationpay.ForDays(money("29.3"), 146462))
	require.NoError(t, err)
	assert.True(t, byCount.VacationPay.Equal(res.VacationPay))
}

func TestCalculate_PaidDaysNeverNegative(t *testing.T) {
	calc := vacationpay.NewCalculator(everyDay{})

	spans := []struct{ start, end calendar.Date }{
		{date(2026, time.May, 12), date(2026, time.May, 12)},
		{date(2025, time.December, 1), date(2026, time.February, 28)},
		{date(1700, time.January, 1), date(2100, time.December, 31)},
	}
	for _, sp := range spans {
		res, err := calc.Calculate(vacationpay.ForPeriod(money("40000"), sp.start, sp.end))
		require.NoError(t, err)
		assert.Equal(t, res.TotalDays, len(res.Holidays))
		assert.Equal(t, 0, res.PaidDays)
		assert.False(t, res.VacationPay.IsNegative())
	}
}

func TestCalculate_RussianCalendarAcrossMay(t *testing.T) {
	// 1-14 May 2026 includes May 1 and May 11.
	calc := vacationpay.NewCalculator(calendar.NewSet(calendar.Russia2026()...))

	res, err := calc.Calculate(vacationpay.ForPeriod(money("15000"),
		date(2026, time.May, 1), date(2026, time.May, 14)))
	require.NoError(t, err)

	assert.Equal(t, 14, res.TotalDays)
	assert.Equal(t, 12, res.PaidDays)
	// 12 x 511.9453924915 = 6143.344709898
	assertMoney(t, "6143.34", res.VacationPay)
}

// =============================================================================
// ROUNDING POLICY
// =============================================================================

func TestDailyRate_RoundsAtTenDigits(t *testing.T) {
	tests := []struct {
		salary string
		want   string
	}{
		{"15000", "511.9453924915"},  // ...49146757 rounds up
		{"40000", "1365.1877133106"}, // ...31058020 rounds up
		{"29.3", "1"},
		{"100", "3.4129692833"}, // ...32764505 rounds up
		{"2.93", "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.salary, func(t *testing.T) {
			got := vacationpay.DailyRate(money(tt.salary))
			assertMoney(t, tt.want, got)
			assert.LessOrEqual(t, -got.Exponent(), int32(vacationpay.RatePrecision))
		})
	}
}

func TestCalculate_RoundsHalfUpNotHalfEven(t *testing.T) {
	tests := []struct {
		name   string
		salary string
		days   int
		want   string
	}{
		// 0.1465 / 29.3 = 0.005 exactly; half-even would give 0.00
		{"half to odd neighbour", "0.1465", 1, "0.01"},
		// 0.7325 / 29.3 = 0.025 exactly; half-even would give 0.02
		{"half to even neighbour", "0.7325", 1, "0.03"},
		// 0.005 x 3 = 0.015 -> 0.02
		{"half after multiplication", "0.1465", 3, "0.02"},
	}
	calc := vacationpay.NewCalculator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Calculate(vacationpay.ForDays(money(tt.salary), tt.days))
			require.NoError(t, err)
			assertMoney(t, tt.want, res.VacationPay)
		})
	}
}

func TestCalculate_RoundsOnceAtRateThenOnceAtMoney(t *testing.T) {
	// amount == round(round(s/29.3, 10) * d, 2)
	calc := vacationpay.NewCalculator(nil)
	for _, s := range []string{"1", "12345.67", "15000", "40000", "99999.99", "250000"} {
		for _, d := range []int{1, 7, 14, 28, 31} {
			res, err := calc.Calculate(vacationpay.ForDays(money(s), d))
			require.NoError(t, err)

			rate := money(s).DivRound(money("29.3"), 10)
			want := rate.Mul(decimal.NewFromInt(int64(d))).Round(2)
			assert.Truef(t, want.Equal(res.VacationPay), "salary %s days %d: want %s got %s", s, d, want, res.VacationPay)
			assert.False(t, res.VacationPay.IsNegative())
		}
	}
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestCalculate_HolidayFreeRangeMatchesDayCount(t *testing.T) {
	calc := vacationpay.NewCalculator(calendar.None{})
	start := date(2026, time.July, 1)

	for span := 1; span <= 31; span++ {
		end := start.AddDays(span - 1)
		byRange, err := calc.Calculate(vacationpay.ForPeriod(money("48750.50"), start, end))
		require.NoError(t, err)

		byDays, err := calc.Calculate(vacationpay.ForDays(money("48750.50"), span))
		require.NoError(t, err)

		assert.Truef(t, byDays.VacationPay.Equal(byRange.VacationPay), "span %d", span)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	calc := vacationpay.NewCalculator(calendar.NewSet(calendar.Russia2026()...))
	req := vacationpay.ForPeriod(money("40000"), date(2026, time.February, 20), date(2026, time.March, 10))

	first, err := calc.Calculate(req)
	require.NoError(t, err)
	second, err := calc.Calculate(req)
	require.NoError(t, err)

	assert.True(t, first.VacationPay.Equal(second.VacationPay))
	assert.Equal(t, first.Holidays, second.Holidays)
}

func TestCalculate_ConcurrentCallers(t *testing.T) {
	calc := vacationpay.NewCalculator(calendar.NewSet(calendar.Russia2026()...))
	req := vacationpay.ForPeriod(money("40000"), date(2026, time.February, 23), date(2026, time.February, 27))

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := calc.Calculate(req)
			if err == nil {
				results[i] = res.VacationPay.StringFixed(2)
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "5460.75", r)
	}
}
