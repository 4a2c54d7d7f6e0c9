package handlers

import (
	"context"
	"net/http"
	"time"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]bool{
		"audit": h.audit.Ping(ctx) == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	resp := map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	}
	if q, ok := h.audit.(queueDepther); ok {
		resp["queueDepth"] = q.QueueDepth()
	}
	h.jsonResponse(w, status, resp)
}

// queueDepther is implemented by the background audit writer.
type queueDepther interface {
	QueueDepth() int
}
