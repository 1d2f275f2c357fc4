package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/vacationpay"
)

// FieldErrors maps a query parameter to what is wrong with it.
type FieldErrors map[string]string

// bindCalculateRequest reads averageSalary, vacationDays, startDate and endDate
// from the query string. Blank parameters count as absent; whether the
// combination makes sense is left to vacationpay.Validate.
func bindCalculateRequest(r *http.Request) (vacationpay.Request, FieldErrors) {
	q := r.URL.Query()
	var req vacationpay.Request
	errs := FieldErrors{}

	if v := strings.TrimSpace(q.Get("averageSalary")); v != "" {
		salary, err := decimal.NewFromString(v)
		if err != nil {
			errs["averageSalary"] = "must be a decimal number"
		} else {
			req.AverageSalary = salary
		}
	}

	if v := strings.TrimSpace(q.Get("vacationDays")); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			errs["vacationDays"] = "must be an integer"
		} else {
			req.VacationDays = &days
		}
	}

	req.StartDate = bindDate(q.Get("startDate"), "startDate", errs)
	req.EndDate = bindDate(q.Get("endDate"), "endDate", errs)

	if len(errs) > 0 {
		return req, errs
	}
	return req, nil
}

func bindDate(raw, field string, errs FieldErrors) *calendar.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := calendar.ParseDate(raw)
	if err != nil {
		errs[field] = "must be a date in YYYY-MM-DD format"
		return nil
	}
	return &d
}
