/*
handlers.go - HTTP API handlers for the vacation pay engine

PURPOSE:
  Exposes the calculator and the holiday calendar via REST. Handles query
  binding, JSON serialization and error mapping, and delegates the actual
  computation to package vacationpay.

ENDPOINTS:
  Calculation:
    GET    /calculate                  Vacation pay: {"vacationPay": 7167.24}
    GET    /api/calculate              Same, with daily rate and day breakdown
    GET    /api/calculate/statement    Same, rendered as a PDF statement

  Holidays:
    GET    /api/holidays               List holidays in the active calendar
    POST   /api/holidays               Store a holiday
    POST   /api/holidays/defaults      Store the built-in 2026 holidays
    DELETE /api/holidays/{id}          Delete a stored holiday

ARCHITECTURE:
  Handler holds:
  - Store: holiday persistence
  - base:  holiday lists that are not stored (built-in, overrides file)
  - an immutable calendar snapshot and the calculator bound to it

  Calculations read the snapshot under a read lock and never touch the
  store. Holiday mutations write the store, then rebuild the snapshot;
  rebuilds are serialized so an older store read never replaces a newer one.

ERROR HANDLING:
  - 400 "Validation failed": a parameter could not be parsed (per-field details)
  - 400 "Invalid input":     the calculator rejected the request (message, code)
  - 404:                     unknown holiday
  - 500 "Internal server error": anything else, with a fixed message

SEE ALSO:
  - dto.go: Request/response data structures
  - params.go: Query binding
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/statement"
	"github.com/warp/vacation-pay/store"
	"github.com/warp/vacation-pay/vacationpay"
	"go.uber.org/zap"
)

const internalErrorMessage = "An unexpected error occurred. Please check your request."

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  store.HolidayStore
	Logger *zap.Logger

	refreshMu  sync.Mutex // serializes store read + snapshot swap
	mu         sync.RWMutex
	base       [][]calendar.Holiday
	holidays   *calendar.Set
	calculator *vacationpay.Calculator
}

// NewHandler creates a handler over s. base lists (built-in defaults,
// overrides file) are merged under the stored holidays on every refresh.
// The calendar starts with base only; call LoadHolidays to add the store.
func NewHandler(s store.HolidayStore, logger *zap.Logger, base ...[]calendar.Holiday) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{Store: s, Logger: logger, base: base}
	h.setCalendar(calendar.Merge(base...))
	return h
}

// SetBase replaces the base lists used by the next LoadHolidays.
func (h *Handler) SetBase(base ...[]calendar.Holiday) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.base = base
}

// LoadHolidays rebuilds the calendar snapshot from base lists and the store.
// Refreshes run one at a time, so a later refresh always swaps in a later read.
func (h *Handler) LoadHolidays(ctx context.Context) error {
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	h.mu.RLock()
	base := h.base
	h.mu.RUnlock()

	cal, err := store.Snapshot(ctx, h.Store, base...)
	if err != nil {
		return err
	}
	h.setCalendar(cal)
	h.Logger.Info("Holiday calendar loaded", zap.Int("holidays", cal.Len()))
	return nil
}

func (h *Handler) setCalendar(cal *calendar.Set) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.holidays = cal
	h.calculator = vacationpay.NewCalculator(cal)
}

func (h *Handler) snapshot() (*calendar.Set, *vacationpay.Calculator) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.holidays, h.calculator
}

// Calendar returns the active holiday calendar.
func (h *Handler) Calendar() *calendar.Set {
	cal, _ := h.snapshot()
	return cal
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate returns the vacation pay owed.
// GET /calculate?averageSalary=15000&vacationDays=14
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.calculate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CalculateResponse{VacationPay: NewMoney(res.VacationPay)})
}

// CalculateDetailed returns the vacation pay with its breakdown.
// GET /api/calculate
func (h *Handler) CalculateDetailed(w http.ResponseWriter, r *http.Request) {
	req, res, ok := h.calculate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCalculationDTO(req, res))
}

// CalculateStatement renders the calculation as a PDF.
// GET /api/calculate/statement
func (h *Handler) CalculateStatement(w http.ResponseWriter, r *http.Request) {
	req, res, ok := h.calculate(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="vacation-pay.pdf"`)
	if err := statement.Render(w, statement.Statement{Request: req, Result: res}); err != nil {
		// Headers are gone by now; log only.
		h.Logger.Error("Failed to render statement", zap.Error(err), zap.String("request_id", middleware.GetReqID(r.Context())))
	}
}

// calculate binds and runs one calculation, writing the error response itself
// when it fails.
func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) (vacationpay.Request, vacationpay.Result, bool) {
	req, fieldErrs := bindCalculateRequest(r)
	if fieldErrs != nil {
		writeFieldErrors(w, r, fieldErrs)
		return req, vacationpay.Result{}, false
	}

	_, calc := h.snapshot()
	res, err := calc.Calculate(req)
	if err != nil {
		h.writeCalculationError(w, r, err)
		return req, vacationpay.Result{}, false
	}

	h.Logger.Debug("Vacation pay calculated",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("total_days", res.TotalDays),
		zap.Int("paid_days", res.PaidDays),
		zap.String("vacation_pay", res.VacationPay.StringFixed(vacationpay.MoneyScale)))
	return req, res, true
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the holidays of the active calendar.
// GET /api/holidays?year=2026
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := 0
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			writeFieldErrors(w, r, FieldErrors{"year": "must be a positive integer"})
			return
		}
		year = y
	}

	holidays := h.Calendar().Holidays(year)
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday stores a holiday and refreshes the calendar.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	date, err := calendar.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeFieldErrors(w, r, FieldErrors{"date": "must be a date in YYYY-MM-DD format"})
		return
	}

	saved, err := h.Store.SaveHoliday(r.Context(), calendar.Holiday{Date: date, Name: strings.TrimSpace(req.Name)})
	if err != nil {
		h.writeInternalError(w, r, "Failed to save holiday", err)
		return
	}
	if !h.refresh(w, r) {
		return
	}

	h.Logger.Info("Holiday saved", zap.String("id", saved.ID), zap.String("date", saved.Date.String()), zap.String("name", saved.Name))
	writeJSON(w, http.StatusCreated, toHolidayDTO(saved))
}

// AddDefaultHolidays stores the built-in 2026 holidays.
// POST /api/holidays/defaults
func (h *Handler) AddDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	n, err := store.Import(r.Context(), h.Store, calendar.Russia2026())
	if err != nil {
		h.writeInternalError(w, r, "Failed to add default holidays", err)
		return
	}
	if !h.refresh(w, r) {
		return
	}

	h.Logger.Info("Default holidays added", zap.Int("count", n))
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("Added %d holidays for 2026", n),
		"count":   n,
	})
}

// DeleteHoliday deletes a stored holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrHolidayNotFound) {
			writeError(w, r, http.StatusNotFound, "Holiday not found", "")
			return
		}
		h.writeInternalError(w, r, "Failed to delete holiday", err)
		return
	}
	if !h.refresh(w, r) {
		return
	}

	h.Logger.Info("Holiday deleted", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) bool {
	if err := h.LoadHolidays(r.Context()); err != nil {
		h.writeInternalError(w, r, "Failed to reload holidays", err)
		return false
	}
	return true
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResponse(r *http.Request, status int, message string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message, detail string) {
	resp := errorResponse(r, status, message)
	resp.Message = detail
	writeJSON(w, status, resp)
}

func writeFieldErrors(w http.ResponseWriter, r *http.Request, errs FieldErrors) {
	resp := errorResponse(r, http.StatusBadRequest, "Validation failed")
	resp.Details = errs
	writeJSON(w, http.StatusBadRequest, resp)
}

// writeCalculationError maps calculator failures. Validation errors carry a
// safe message; anything else is reported opaquely.
func (h *Handler) writeCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *vacationpay.ValidationError
	if errors.As(err, &verr) {
		resp := errorResponse(r, http.StatusBadRequest, "Invalid input")
		resp.Code = string(verr.Code)
		resp.Message = verr.Message
		resp.Details = FieldErrors{verr.Field: verr.Message}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	h.writeInternalError(w, r, "Calculation failed", err)
}

func (h *Handler) writeInternalError(w http.ResponseWriter, r *http.Request, what string, err error) {
	h.Logger.Error(what,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())))
	writeError(w, r, http.StatusInternalServerError, "Internal server error", internalErrorMessage)
}
