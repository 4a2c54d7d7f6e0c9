package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/logic"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
)

const envCookie = "dashboard_env"

// errBadFilter marks unparsable from/to values.
var errBadFilter = errors.New("invalid filter")

// inputTimeLayout is the value format of <input type="datetime-local">.
const inputTimeLayout = "2006-01-02T15:04"

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// selectedEnv resolves the target environment of a page request: an explicit
// ?env= wins, then the cookie set by the selector, then the default.
func (h *Handler) selectedEnv(r *http.Request) environment.Environment {
	if v := r.URL.Query().Get("env"); v != "" {
		if env, err := environment.Parse(v); err == nil {
			return env
		}
	}
	if c, err := r.Cookie(envCookie); err == nil {
		if env, err := environment.Parse(c.Value); err == nil {
			return env
		}
	}
	return h.defaultEnv
}

// pathEnv reads the {env} URL parameter of API routes.
func pathEnv(r *http.Request) (environment.Environment, error) {
	return environment.Parse(chi.URLParam(r, "env"))
}

// actor identifies who made an edit. Authentication happens in front of the
// dashboard; the proxy forwards the user in these headers.
func actor(r *http.Request) string {
	for _, header := range []string{"X-Forwarded-User", "X-Forwarded-Email", "X-Auth-Request-Email"} {
		if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
			return v
		}
	}
	return ""
}

// defaultFrom is now minus window, truncated to the hour in loc.
func defaultFrom(now time.Time, window time.Duration, loc *time.Location) time.Time {
	t := now.In(loc).Add(-window)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
}

// parseTime accepts RFC3339, datetime-local values and plain dates. Values
// without a zone are read in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{inputTimeLayout, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised time %s", errBadFilter, strconv.Quote(s))
}

// window reads from/to, defaulting missing or empty bounds.
func (h *Handler) window(r *http.Request, span time.Duration) (time.Time, time.Time, error) {
	now := h.now()
	from, to := defaultFrom(now, span, h.location), now.In(h.location)

	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		t, err := parseTime(v, h.location)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseTime(v, h.location)
		if err != nil {
			return from, to, err
		}
		to = t
	}
	return from, to, nil
}

// optionalWindow is window where an explicitly empty bound is left open.
func (h *Handler) optionalWindow(r *http.Request, span time.Duration) (upstream.Range, error) {
	from, to, err := h.window(r, span)
	if err != nil {
		return upstream.Range{}, err
	}
	q := r.URL.Query()
	if v, ok := q["from"]; ok && len(v) > 0 && v[0] == "" {
		from = time.Time{}
	}
	if v, ok := q["to"]; ok && len(v) > 0 && v[0] == "" {
		to = time.Time{}
	}
	return upstream.Range{From: from, To: to}, nil
}

// failureStatus maps service errors to HTTP status codes. Anything not
// caused by the request itself is reported as a bad gateway.
func failureStatus(err error) int {
	switch {
	case errors.Is(err, environment.ErrUnknown),
		errors.Is(err, errBadFilter),
		errors.Is(err, logic.ErrInvalidUpdate),
		errors.Is(err, upstream.ErrEmptyBatch):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) serviceError(w http.ResponseWriter, err error, msg string, kv ...interface{}) {
	status := failureStatus(err)
	if status >= 500 {
		h.logger.Errorw(msg, append(kv, "error", err)...)
	}
	h.errorResponse(w, status, msg+": "+err.Error())
}
