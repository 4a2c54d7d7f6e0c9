package handlers

import (
	"net/http"
)

// ============================================================================
// TOURNAMENT ENDPOINTS
// ============================================================================

// GetTournaments returns the tournament leaderboard
// @Summary Tournament Leaderboard
// @Tags Tournaments
// @Produce json
// @Param env path string true "Environment (dev, stage, production)"
// @Param from query string false "Window start (RFC3339); empty leaves it open" default(now-24h)
// @Param to query string false "Window end (RFC3339); empty leaves it open" default(now)
// @Success 200 {object} models.TournamentBoard
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /{env}/tournaments [get]
func (h *Handler) GetTournaments(w http.ResponseWriter, r *http.Request) {
	env, err := pathEnv(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	rng, err := h.optionalWindow(r, h.tournamentWindow)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	board, err := h.tournaments.Board(r.Context(), env, rng)
	if err != nil {
		h.serviceError(w, err, "Failed to get tournaments", "env", env)
		return
	}
	h.jsonResponse(w, http.StatusOK, board)
}
