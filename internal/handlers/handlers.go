package handlers

import (
	"html/template"
	"time"

	"go.uber.org/zap"

	"github.com/battleroyale/stats-dashboard/internal/audit"
	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

type Config struct {
	Logger *zap.Logger
	Audit  audit.Store

	// Services
	Tournaments logic.TournamentService
	UserStats   logic.UserStatsService
	Activity    logic.ActivityService
	Economy     logic.EconomyService
	Overview    logic.OverviewService

	// Environment used when a request does not select one.
	DefaultEnv environment.Environment

	TournamentWindow time.Duration
	ReportWindow     time.Duration
	Location         *time.Location

	AllowedOrigins     []string
	RateLimitPerSecond int
	RateLimitBurst     int
}

type Handler struct {
	logger      *zap.SugaredLogger
	audit       audit.Store
	tournaments logic.TournamentService
	userStats   logic.UserStatsService
	activity    logic.ActivityService
	economy     logic.EconomyService
	overview    logic.OverviewService

	defaultEnv       environment.Environment
	tournamentWindow time.Duration
	reportWindow     time.Duration
	location         *time.Location
	allowedOrigins   []string
	writeLimiter     *ipLimiter

	pages map[string]*template.Template
	now   func() time.Time
}

func New(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Audit == nil {
		cfg.Audit = audit.NopStore{}
	}
	if !cfg.DefaultEnv.Valid() {
		cfg.DefaultEnv = environment.Dev
	}
	if cfg.TournamentWindow <= 0 {
		cfg.TournamentWindow = 24 * time.Hour
	}
	if cfg.ReportWindow <= 0 {
		cfg.ReportWindow = 7 * 24 * time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	h := &Handler{
		logger:           cfg.Logger.Sugar(),
		audit:            cfg.Audit,
		tournaments:      cfg.Tournaments,
		userStats:        cfg.UserStats,
		activity:         cfg.Activity,
		economy:          cfg.Economy,
		overview:         cfg.Overview,
		defaultEnv:       cfg.DefaultEnv,
		tournamentWindow: cfg.TournamentWindow,
		reportWindow:     cfg.ReportWindow,
		location:         cfg.Location,
		allowedOrigins:   cfg.AllowedOrigins,
		writeLimiter:     newIPLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		now:              time.Now,
	}
	h.pages = parsePages(h.templateFuncs())
	return h
}
