package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/logic"
	"github.com/battleroyale/stats-dashboard/internal/models"
)

// envCookieMaxAge keeps the selected environment for 30 days.
const envCookieMaxAge = 30 * 24 * 60 * 60

type activityContent struct {
	Report       *models.ActivityReport
	NewUsersOnly bool
}

type economyContent struct {
	UserName string
	Points   []models.UserTournamentPoints
	Gems     []models.UserGems
}

// NewUserStatsPage lists users registered in the window with their sessions.
func (h *Handler) NewUserStatsPage(w http.ResponseWriter, r *http.Request) {
	data := h.newPage(r, "New users")
	from, to, err := h.window(r, h.reportWindow)
	data.From, data.To = from, to
	if err != nil {
		h.renderFailure(w, "new_users", data, err, "Invalid filter")
		return
	}

	report, err := h.userStats.NewUsers(r.Context(), data.Env, from, to)
	if err != nil {
		h.renderFailure(w, "new_users", data, err, "Failed to load new user stats")
		return
	}
	data.Content = report
	h.render(w, http.StatusOK, "new_users", data)
}

// TournamentsPage shows finished tournament games with the winning team
// highlighted.
func (h *Handler) TournamentsPage(w http.ResponseWriter, r *http.Request) {
	data := h.newPage(r, "Tournaments")
	rng, err := h.optionalWindow(r, h.tournamentWindow)
	data.From, data.To = rng.From, rng.To
	if err != nil {
		h.renderFailure(w, "tournaments", data, err, "Invalid filter")
		return
	}

	board, err := h.tournaments.Board(r.Context(), data.Env, rng)
	if err != nil {
		h.renderFailure(w, "tournaments", data, err, "Failed to load tournaments")
		return
	}
	data.Content = board
	h.render(w, http.StatusOK, "tournaments", data)
}

// ActivityStatsPage breaks playtime down by game mode and map.
func (h *Handler) ActivityStatsPage(w http.ResponseWriter, r *http.Request) {
	data := h.newPage(r, "Activity")
	from, to, err := h.window(r, h.reportWindow)
	data.From, data.To = from, to
	if err != nil {
		h.renderFailure(w, "activity", data, err, "Invalid filter")
		return
	}
	newUsersOnly := checkbox(r.URL.Query().Get("newUsersOnly"))

	report, err := h.activity.Breakdown(r.Context(), data.Env, from, to, newUsersOnly)
	if err != nil {
		h.renderFailure(w, "activity", data, err, "Failed to load activity stats")
		return
	}
	data.Content = activityContent{Report: report, NewUsersOnly: newUsersOnly}
	h.render(w, http.StatusOK, "activity", data)
}

func (h *Handler) OverviewPage(w http.ResponseWriter, r *http.Request) {
	data := h.newPage(r, "Overview")
	from, to, err := h.window(r, h.reportWindow)
	data.From, data.To = from, to
	if err != nil {
		h.renderFailure(w, "overview", data, err, "Invalid filter")
		return
	}

	ov, err := h.overview.Overview(r.Context(), data.Env, from, to)
	if err != nil {
		h.renderFailure(w, "overview", data, err, "Failed to build overview")
		return
	}
	data.Content = ov
	h.render(w, http.StatusOK, "overview", data)
}

func (h *Handler) TournamentPointsPage(w http.ResponseWriter, r *http.Request) {
	data := h.newPage(r, "Tournament points")
	userName := strings.TrimSpace(r.URL.Query().Get("userName"))

	rows, err := h.economy.TournamentPoints(r.Context(), data.Env, userName)
	if err != nil {
		h.renderFailure(w, "tournament_points", data, err, "Failed to load tournament points")
		return
	}
	data.Content = economyContent{UserName: userName, Points: rows}
	h.render(w, http.StatusOK, "tournament_points", data)
}

func (h *Handler) UserGemsPage(w http.ResponseWriter, r *http.Request) {
	data := h.newPage(r, "User gems")
	userName := strings.TrimSpace(r.URL.Query().Get("userName"))

	rows, err := h.economy.Gems(r.Context(), data.Env, userName)
	if err != nil {
		h.renderFailure(w, "user_gems", data, err, "Failed to load user gems")
		return
	}
	data.Content = economyContent{UserName: userName, Gems: rows}
	h.render(w, http.StatusOK, "user_gems", data)
}

// SelectEnvironment stores the chosen environment in a cookie and sends the
// browser back to the page it came from.
func (h *Handler) SelectEnvironment(w http.ResponseWriter, r *http.Request) {
	env, err := environment.Parse(r.FormValue("env"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     envCookie,
		Value:    env.String(),
		Path:     "/",
		MaxAge:   envCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	back := returnPath(r, "/")
	// A stale ?env= would override the cookie.
	back.RawQuery = stripParams(back.Query(), "env", "notice", "error").Encode()
	http.Redirect(w, r, back.String(), http.StatusSeeOther)
}

// SaveTournamentPoints submits a single row edit from the tournament points
// page.
func (h *Handler) SaveTournamentPoints(w http.ResponseWriter, r *http.Request) {
	env := h.formEnv(r)
	back := economyReturn("/tournament-points", env, r.FormValue("userName"))

	update, err := tournamentPointsForm(r)
	if err == nil {
		err = h.economy.SetTournamentPoints(r.Context(), env, actor(r), []models.TournamentPointsUpdate{update})
	}
	if err != nil {
		if failureStatus(err) >= 500 {
			h.logger.Errorw("Failed to save tournament points", "env", env, "user_id", update.UserID, "error", err)
		}
		redirectWith(w, r, back, "error", "Failed to save tournament points: "+err.Error())
		return
	}

	h.logger.Infow("Tournament points saved", "env", env, "user_id", update.UserID, "actor", actor(r))
	redirectWith(w, r, back, "notice", "Saved tournament points for user "+update.UserID.String())
}

// SaveUserGems submits a single row edit from the user gems page.
func (h *Handler) SaveUserGems(w http.ResponseWriter, r *http.Request) {
	env := h.formEnv(r)
	back := economyReturn("/user-gems", env, r.FormValue("userName"))

	update, err := gemsForm(r)
	if err == nil {
		err = h.economy.SetGems(r.Context(), env, actor(r), []models.GemsUpdate{update})
	}
	if err != nil {
		if failureStatus(err) >= 500 {
			h.logger.Errorw("Failed to save gems", "env", env, "user_id", update.UserID, "error", err)
		}
		redirectWith(w, r, back, "error", "Failed to save gems: "+err.Error())
		return
	}

	h.logger.Infow("Gems saved", "env", env, "user_id", update.UserID, "actor", actor(r))
	redirectWith(w, r, back, "notice", "Saved gems for user "+update.UserID.String())
}

func tournamentPointsForm(r *http.Request) (models.TournamentPointsUpdate, error) {
	var u models.TournamentPointsUpdate
	id, err := models.ParseUserID(r.FormValue("userId"))
	if err != nil {
		return u, fmt.Errorf("%w: %v", logic.ErrInvalidUpdate, err)
	}
	u.UserID = id
	if u.TournamentPoints, err = formFloat(r, "tournamentPoints"); err != nil {
		return u, err
	}
	if u.TournamentPlayedCount, err = formInt(r, "tournamentPlayedCount"); err != nil {
		return u, err
	}
	return u, nil
}

func gemsForm(r *http.Request) (models.GemsUpdate, error) {
	var u models.GemsUpdate
	id, err := models.ParseUserID(r.FormValue("userId"))
	if err != nil {
		return u, fmt.Errorf("%w: %v", logic.ErrInvalidUpdate, err)
	}
	u.UserID = id
	if u.GemsCount, err = formInt(r, "gemsCount"); err != nil {
		return u, err
	}
	return u, nil
}

func formFloat(r *http.Request, key string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(key)), 64)
	if err != nil {
		return 0, &formError{field: key}
	}
	return v, nil
}

func formInt(r *http.Request, key string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(r.FormValue(key)), 10, 64)
	if err != nil {
		return 0, &formError{field: key}
	}
	return v, nil
}

type formError struct{ field string }

func (e *formError) Error() string { return e.field + " must be a number" }

func (e *formError) Unwrap() error { return logic.ErrInvalidUpdate }

// formEnv prefers the environment the edited row was loaded from.
func (h *Handler) formEnv(r *http.Request) environment.Environment {
	if env, err := environment.Parse(r.FormValue("env")); err == nil {
		return env
	}
	return h.selectedEnv(r)
}

func economyReturn(path string, env environment.Environment, userName string) *url.URL {
	q := url.Values{}
	q.Set("env", env.String())
	if userName = strings.TrimSpace(userName); userName != "" {
		q.Set("userName", userName)
	}
	return &url.URL{Path: path, RawQuery: q.Encode()}
}

func redirectWith(w http.ResponseWriter, r *http.Request, u *url.URL, key, msg string) {
	q := u.Query()
	q.Set(key, msg)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// returnPath resolves the local page to go back to: the "return" form field,
// then the Referer. Anything pointing off-site falls back.
func returnPath(r *http.Request, fallback string) *url.URL {
	for _, candidate := range []string{r.FormValue("return"), r.Referer()} {
		if candidate == "" {
			continue
		}
		u, err := url.Parse(candidate)
		if err != nil {
			continue
		}
		if u.Host != "" && u.Host != r.Host {
			continue
		}
		if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
			continue
		}
		return &url.URL{Path: u.Path, RawQuery: u.RawQuery}
	}
	return &url.URL{Path: fallback}
}

func stripParams(q url.Values, keys ...string) url.Values {
	for _, k := range keys {
		q.Del(k)
	}
	return q
}

func checkbox(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
