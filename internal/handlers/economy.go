package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/battleroyale/stats-dashboard/internal/models"
)

// GetTournamentPoints lists users' tournament points
// @Summary User Tournament Points
// @Tags Economy
// @Produce json
// @Param env path string true "Environment"
// @Param userName query string false "User name filter"
// @Success 200 {array} models.UserTournamentPoints
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /{env}/tournament-points [get]
func (h *Handler) GetTournamentPoints(w http.ResponseWriter, r *http.Request) {
	env, err := pathEnv(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.economy.TournamentPoints(r.Context(), env, r.URL.Query().Get("userName"))
	if err != nil {
		h.serviceError(w, err, "Failed to get tournament points", "env", env)
		return
	}
	if rows == nil {
		rows = []models.UserTournamentPoints{}
	}
	h.jsonResponse(w, http.StatusOK, rows)
}

// SetTournamentPoints overwrites tournament points for a batch of users
// @Summary Set Tournament Points
// @Tags Economy
// @Accept json
// @Produce json
// @Param env path string true "Environment"
// @Param body body models.SetTournamentPointsRequest true "Updates"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 413 {object} map[string]string "Payload Too Large"
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /{env}/tournament-points [post]
func (h *Handler) SetTournamentPoints(w http.ResponseWriter, r *http.Request) {
	env, err := pathEnv(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var req models.SetTournamentPointsRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.economy.SetTournamentPoints(r.Context(), env, actor(r), req.TournamentPoints); err != nil {
		h.serviceError(w, err, "Failed to set tournament points", "env", env, "count", len(req.TournamentPoints))
		return
	}
	h.logger.Infow("Tournament points updated", "env", env, "count", len(req.TournamentPoints), "actor", actor(r))
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"updated": len(req.TournamentPoints)})
}

// GetUserGems lists users' gem balances
// @Summary User Gems
// @Tags Economy
// @Produce json
// @Param env path string true "Environment"
// @Param userName query string false "User name filter"
// @Success 200 {array} models.UserGems
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /{env}/user-gems [get]
func (h *Handler) GetUserGems(w http.ResponseWriter, r *http.Request) {
	env, err := pathEnv(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.economy.Gems(r.Context(), env, r.URL.Query().Get("userName"))
	if err != nil {
		h.serviceError(w, err, "Failed to get user gems", "env", env)
		return
	}
	if rows == nil {
		rows = []models.UserGems{}
	}
	h.jsonResponse(w, http.StatusOK, rows)
}

// SetUserGems overwrites gem balances for a batch of users
// @Summary Set Gems
// @Tags Economy
// @Accept json
// @Produce json
// @Param env path string true "Environment"
// @Param body body models.SetGemsRequest true "Updates"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /{env}/user-gems [post]
func (h *Handler) SetUserGems(w http.ResponseWriter, r *http.Request) {
	env, err := pathEnv(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var req models.SetGemsRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.economy.SetGems(r.Context(), env, actor(r), req.UserGems); err != nil {
		h.serviceError(w, err, "Failed to set gems", "env", env, "count", len(req.UserGems))
		return
	}
	h.logger.Infow("Gems updated", "env", env, "count", len(req.UserGems), "actor", actor(r))
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"updated": len(req.UserGems)})
}

// GetAudit returns the most recent edits
// @Summary Edit Audit Trail
// @Tags Economy
// @Produce json
// @Param limit query int false "Limit" default(50)
// @Success 200 {array} audit.Entry
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /audit [get]
func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	entries, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to read audit trail", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to read audit trail")
		return
	}
	if entries == nil {
		h.jsonResponse(w, http.StatusOK, []struct{}{})
		return
	}
	h.jsonResponse(w, http.StatusOK, entries)
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}
