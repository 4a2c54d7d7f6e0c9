package handlers

import (
	"context"
	"time"

	"github.com/battleroyale/stats-dashboard/internal/audit"
	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
)

// MockTournamentService
type MockTournamentService struct {
	BoardFunc func(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentBoard, error)
}

func (m *MockTournamentService) Board(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentBoard, error) {
	if m.BoardFunc != nil {
		return m.BoardFunc(ctx, env, rng)
	}
	return &models.TournamentBoard{}, nil
}

// MockUserStatsService
type MockUserStatsService struct {
	NewUsersFunc func(ctx context.Context, env environment.Environment, from, to time.Time) (*models.NewUsersReport, error)
}

func (m *MockUserStatsService) NewUsers(ctx context.Context, env environment.Environment, from, to time.Time) (*models.NewUsersReport, error) {
	if m.NewUsersFunc != nil {
		return m.NewUsersFunc(ctx, env, from, to)
	}
	return &models.NewUsersReport{}, nil
}

// MockActivityService
type MockActivityService struct {
	BreakdownFunc func(ctx context.Context, env environment.Environment, from, to time.Time, newUsersOnly bool) (*models.ActivityReport, error)
}

func (m *MockActivityService) Breakdown(ctx context.Context, env environment.Environment, from, to time.Time, newUsersOnly bool) (*models.ActivityReport, error) {
	if m.BreakdownFunc != nil {
		return m.BreakdownFunc(ctx, env, from, to, newUsersOnly)
	}
	return &models.ActivityReport{}, nil
}

// MockEconomyService
type MockEconomyService struct {
	TournamentPointsFunc    func(ctx context.Context, env environment.Environment, userName string) ([]models.UserTournamentPoints, error)
	SetTournamentPointsFunc func(ctx context.Context, env environment.Environment, actor string, updates []models.TournamentPointsUpdate) error
	GemsFunc                func(ctx context.Context, env environment.Environment, userName string) ([]models.UserGems, error)
	SetGemsFunc             func(ctx context.Context, env environment.Environment, actor string, updates []models.GemsUpdate) error
}

func (m *MockEconomyService) TournamentPoints(ctx context.Context, env environment.Environment, userName string) ([]models.UserTournamentPoints, error) {
	if m.TournamentPointsFunc != nil {
		return m.TournamentPointsFunc(ctx, env, userName)
	}
	return nil, nil
}

func (m *MockEconomyService) SetTournamentPoints(ctx context.Context, env environment.Environment, actor string, updates []models.TournamentPointsUpdate) error {
	if m.SetTournamentPointsFunc != nil {
		return m.SetTournamentPointsFunc(ctx, env, actor, updates)
	}
	return nil
}

func (m *MockEconomyService) Gems(ctx context.Context, env environment.Environment, userName string) ([]models.UserGems, error) {
	if m.GemsFunc != nil {
		return m.GemsFunc(ctx, env, userName)
	}
	return nil, nil
}

func (m *MockEconomyService) SetGems(ctx context.Context, env environment.Environment, actor string, updates []models.GemsUpdate) error {
	if m.SetGemsFunc != nil {
		return m.SetGemsFunc(ctx, env, actor, updates)
	}
	return nil
}

// MockOverviewService
type MockOverviewService struct {
	OverviewFunc func(ctx context.Context, env environment.Environment, from, to time.Time) (*models.Overview, error)
}

func (m *MockOverviewService) Overview(ctx context.Context, env environment.Environment, from, to time.Time) (*models.Overview, error) {
	if m.OverviewFunc != nil {
		return m.OverviewFunc(ctx, env, from, to)
	}
	return &models.Overview{}, nil
}

// MockAuditStore
type MockAuditStore struct {
	RecentFunc func(ctx context.Context, limit int) ([]audit.Entry, error)
	PingFunc   func(ctx context.Context) error
}

func (m *MockAuditStore) Record(ctx context.Context, e audit.Entry) error { return nil }

func (m *MockAuditStore) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockAuditStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
