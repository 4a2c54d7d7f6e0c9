package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes wires pages, the JSON API and operational endpoints.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// Pages
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new-users-stats", http.StatusFound)
	})
	r.Get("/new-users-stats", h.NewUserStatsPage)
	r.Get("/tournaments", h.TournamentsPage)
	r.Get("/activity-stats", h.ActivityStatsPage)
	r.Get("/overview", h.OverviewPage)
	r.Get("/tournament-points", h.TournamentPointsPage)
	r.Get("/user-gems", h.UserGemsPage)
	r.Post("/env", h.SelectEnvironment)
	r.Group(func(r chi.Router) {
		r.Use(h.RateLimit)
		r.Post("/tournament-points", h.SaveTournamentPoints)
		r.Post("/user-gems", h.SaveUserGems)
	})

	// JSON API
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Forwarded-User"},
			MaxAge:         300,
		}))

		r.Get("/audit", h.GetAudit)
		r.Get("/timespan", h.FormatTimeSpan)

		r.Route("/{env}", func(r chi.Router) {
			r.Get("/tournaments", h.GetTournaments)
			r.Get("/new-users", h.GetNewUsers)
			r.Get("/activity", h.GetActivity)
			r.Get("/overview", h.GetOverview)
			r.Get("/tournament-points", h.GetTournamentPoints)
			r.Get("/user-gems", h.GetUserGems)
			r.With(h.RateLimit).Post("/tournament-points", h.SetTournamentPoints)
			r.With(h.RateLimit).Post("/user-gems", h.SetUserGems)
		})
	})

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Infow("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
