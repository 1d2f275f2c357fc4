/*
errors.go - Validation errors of the vacation pay calculator

PURPOSE:
  Every failure of Calculate is a caller-input error. There are no
  transient or infrastructure errors in the core, so nothing here is
  retryable.

ERROR CATEGORIES:
  ErrInvalidSalary    average salary not strictly positive
  ErrInvalidDateRange end date precedes start date, or only one date given
  ErrMissingDayCount  neither a day count nor a date range supplied
  ErrInvalidDayCount  explicit day count below 1

USAGE:
  res, err := calc.Calculate(req)
  var verr *vacationpay.ValidationError
  if errors.As(err, &verr) {
      // 400 with verr.Message
  }
  if errors.Is(err, vacationpay.ErrInvalidSalary) { ... }
*/
package vacationpay

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	ErrInvalidSalary    = errors.New("invalid salary")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrMissingDayCount  = errors.New("missing day count")
	ErrInvalidDayCount  = errors.New("invalid day count")
)

// Code identifies which validation rule failed. Codes are stable and safe to
// expose to clients.
type Code string

const (
	CodeInvalidSalary    Code = "invalid_salary"
	CodeInvalidDateRange Code = "invalid_date_range"
	CodeMissingDayCount  Code = "missing_day_count"
	CodeInvalidDayCount  Code = "invalid_day_count"
)

// Messages reported to callers.
const (
	MsgInvalidSalary    = "average salary must be positive"
	MsgInvalidDateRange = "end date must not precede start date"
	MsgIncompleteRange  = "start and end dates must be supplied together"
	MsgMissingDayCount  = "either vacation days or a start and end date must be supplied"
	MsgInvalidDayCount  = "vacation days must be at least 1"
)

// =============================================================================
// STRUCTURED ERROR
// =============================================================================

// ValidationError reports the first rule a request broke.
type ValidationError struct {
	Code    Code
	Field   string // request field the rule is about, e.g. "averageSalary"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	switch e.Code {
	case CodeInvalidSalary:
		return ErrInvalidSalary
	case CodeInvalidDateRange:
		return ErrInvalidDateRange
	case CodeMissingDayCount:
		return ErrMissingDayCount
	case CodeInvalidDayCount:
		return ErrInvalidDayCount
	}
	return nil
}

func invalid(code Code, field, msg string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: msg}
}

// IsValidationError returns true if err came from request validation.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
