package logic

import (
	"context"
	"time"

	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
)

// Upstream is the backend API as seen by the services. *upstream.Client
// implements it.
type Upstream interface {
	TournamentLeaderboard(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentLeaderboard, error)
	NewUserStats(ctx context.Context, env environment.Environment, from, to time.Time) (*models.NewUserStatsResponse, error)
	GameModeMapStats(ctx context.Context, env environment.Environment, from, to time.Time, newUsersOnly bool) (*models.GameModeMapStatsResponse, error)
	UserTournamentPoints(ctx context.Context, env environment.Environment, userName string) ([]models.UserTournamentPoints, error)
	SetTournamentPoints(ctx context.Context, env environment.Environment, updates []models.TournamentPointsUpdate) error
	UserGems(ctx context.Context, env environment.Environment, userName string) ([]models.UserGems, error)
	SetGems(ctx context.Context, env environment.Environment, updates []models.GemsUpdate) error
}

type TournamentService interface {
	Board(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentBoard, error)
}

type UserStatsService interface {
	NewUsers(ctx context.Context, env environment.Environment, from, to time.Time) (*models.NewUsersReport, error)
}

type ActivityService interface {
	Breakdown(ctx context.Context, env environment.Environment, from, to time.Time, newUsersOnly bool) (*models.ActivityReport, error)
}

type EconomyService interface {
	TournamentPoints(ctx context.Context, env environment.Environment, userName string) ([]models.UserTournamentPoints, error)
	SetTournamentPoints(ctx context.Context, env environment.Environment, actor string, updates []models.TournamentPointsUpdate) error
	Gems(ctx context.Context, env environment.Environment, userName string) ([]models.UserGems, error)
	SetGems(ctx context.Context, env environment.Environment, actor string, updates []models.GemsUpdate) error
}

type OverviewService interface {
	Overview(ctx context.Context, env environment.Environment, from, to time.Time) (*models.Overview, error)
}
