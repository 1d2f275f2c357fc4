/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculation engine from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Response wrappers

MONEY ENCODING:
  Amounts are JSON numbers with exactly two fractional digits
  ({"vacationPay": 7167.24}), written from the decimal value, never through
  float64.

SEE ALSO:
  - handlers.go: Uses these types
  - params.go: Query parameter binding
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/vacationpay"
)

// =============================================================================
// MONEY
// =============================================================================

// Money is a decimal encoded as a JSON number with a fixed number of digits.
type Money struct {
	Value  decimal.Decimal
	Places int32
}

func NewMoney(d decimal.Decimal) Money { return Money{Value: d, Places: vacationpay.MoneyScale} }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Value.StringFixed(m.Places)), nil
}

// =============================================================================
// CALCULATION
// =============================================================================

// CalculateResponse is the body of GET /calculate.
type CalculateResponse struct {
	VacationPay Money `json:"vacationPay"`
}

// CalculationDTO is the verbose body of GET /api/calculate.
type CalculationDTO struct {
	VacationPay Money           `json:"vacationPay"`
	DailyRate   Money           `json:"dailyRate"`
	TotalDays   int             `json:"totalDays"`
	PaidDays    int             `json:"paidDays"`
	StartDate   *calendar.Date  `json:"startDate,omitempty"`
	EndDate     *calendar.Date  `json:"endDate,omitempty"`
	Holidays    []calendar.Date `json:"holidays"`
}

func toCalculationDTO(req vacationpay.Request, res vacationpay.Result) CalculationDTO {
	holidays := res.Holidays
	if holidays == nil {
		holidays = []calendar.Date{}
	}
	return CalculationDTO{
		VacationPay: NewMoney(res.VacationPay),
		DailyRate:   Money{Value: res.DailyRate, Places: vacationpay.RatePrecision},
		TotalDays:   res.TotalDays,
		PaidDays:    res.PaidDays,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Holidays:    holidays,
	}
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	ID   string `json:"id,omitempty"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// CreateHolidayRequest is the body of POST /api/holidays.
type CreateHolidayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

func toHolidayDTO(h calendar.Holiday) HolidayDTO {
	return HolidayDTO{ID: h.ID, Date: h.Date.String(), Name: h.Name}
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Timestamp string            `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Message   string            `json:"message,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}
