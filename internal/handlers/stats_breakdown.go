package handlers

import (
	"net/http"
	"strconv"

	"github.com/battleroyale/stats-dashboard/internal/timespan"
)

// GetNewUsers returns users registered inside the window
// @Summary New User Stats
// @Tags Stats
// @Produce json
// @Param env path string true "Environment"
// @Param from query string false "Window start" default(now-7d)
// @Param to query string false "Window end" default(now)
// @Success 200 {object} models.NewUsersReport
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /{env}/new-users [get]
func (h *Handler) GetNewUsers(w http.ResponseWriter, r *http.Request) {
	env, err := pathEnv(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	from, to, err := h.window(r, h.reportWindow)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.userStats.NewUsers(r.Context(), env, from, to)
	if err != nil {
		h.serviceError(w, err, "Failed to get new user stats", "env", env)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// GetActivity returns playtime grouped by game mode and map
// @Summary Game Mode / Map Activity
// @Tags Stats
// @Produce json
// @Param env path string true "Environment"
// @Param from query string false "Window start" default(now-7d)
// @Param to query string false "Window end" default(now)
// @Param newUsersOnly query bool false "Only count users created in the window" default(false)
// @Success 200 {object} models.ActivityReport
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /{env}/activity [get]
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	env, err := pathEnv(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	from, to, err := h.window(r, h.reportWindow)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	newUsersOnly := false
	if v := r.URL.Query().Get("newUsersOnly"); v != "" {
		if newUsersOnly, err = strconv.ParseBool(v); err != nil {
			h.errorResponse(w, http.StatusBadRequest, "newUsersOnly must be a boolean")
			return
		}
	}

	report, err := h.activity.Breakdown(r.Context(), env, from, to, newUsersOnly)
	if err != nil {
		h.serviceError(w, err, "Failed to get activity stats", "env", env)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// GetOverview returns a combined summary of the window
// @Summary Overview
// @Tags Stats
// @Produce json
// @Param env path string true "Environment"
// @Success 200 {object} models.Overview
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /{env}/overview [get]
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	env, err := pathEnv(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	from, to, err := h.window(r, h.reportWindow)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ov, err := h.overview.Overview(r.Context(), env, from, to)
	if err != nil {
		h.serviceError(w, err, "Failed to build overview", "env", env)
		return
	}
	h.jsonResponse(w, http.StatusOK, ov)
}

// FormatTimeSpan renders a backend TimeSpan as words
// @Summary Format TimeSpan
// @Tags Utilities
// @Produce json
// @Param value query string true "TimeSpan, e.g. 2.05:30:00"
// @Success 200 {object} map[string]string
// @Router /timespan [get]
func (h *Handler) FormatTimeSpan(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	h.jsonResponse(w, http.StatusOK, map[string]string{
		"value":     value,
		"formatted": timespan.Format(value),
	})
}
