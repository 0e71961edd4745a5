package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
	applog "github.com/PixelForgeIT-GH/income-hue/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", applog.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP statuses: not-found
// sentinels become 404, validation errors 422, everything else 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrStreamNotFound),
		errors.Is(err, core.ErrScheduleNotFound),
		errors.Is(err, core.ErrTransactionMissing):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrNameTooLong),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrEmptyFrequency),
		errors.Is(err, core.ErrInvalidDate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func parseID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	if raw == "" {
		return 0, errors.New("missing id parameter")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// parseMonthParams reads year and month query parameters, defaulting to the
// current UTC month when absent.
func parseMonthParams(r *http.Request) (year, month int, err error) {
	now := time.Now().UTC()
	year, month = now.Year(), int(now.Month())

	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil || year < 1900 || year > 3000 {
			return 0, 0, errors.New("invalid year parameter")
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("month")); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return 0, 0, errors.New("invalid month parameter")
		}
	}
	return year, month, nil
}

// parseRangeParams reads start and end ISO dates. Both are required.
func parseRangeParams(r *http.Request) (start, end core.Date, err error) {
	start, err = core.ParseDate(strings.TrimSpace(r.URL.Query().Get("start")))
	if err != nil {
		return core.Date{}, core.Date{}, errors.New("invalid start parameter")
	}
	end, err = core.ParseDate(strings.TrimSpace(r.URL.Query().Get("end")))
	if err != nil {
		return core.Date{}, core.Date{}, errors.New("invalid end parameter")
	}
	if end.Before(start.Time) {
		return core.Date{}, core.Date{}, errors.New("end before start")
	}
	return start, end, nil
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
