package logic

import (
	"context"
	"sync"
	"time"

	"github.com/battleroyale/stats-dashboard/internal/audit"
	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
)

type MockUpstream struct {
	TournamentLeaderboardFunc func(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentLeaderboard, error)
	NewUserStatsFunc          func(ctx context.Context, env environment.Environment, from, to time.Time) (*models.NewUserStatsResponse, error)
	GameModeMapStatsFunc      func(ctx context.Context, env environment.Environment, from, to time.Time, newUsersOnly bool) (*models.GameModeMapStatsResponse, error)
	UserTournamentPointsFunc  func(ctx context.Context, env environment.Environment, userName string) ([]models.UserTournamentPoints, error)
	SetTournamentPointsFunc   func(ctx context.Context, env environment.Environment, updates []models.TournamentPointsUpdate) error
	UserGemsFunc              func(ctx context.Context, env environment.Environment, userName string) ([]models.UserGems, error)
	SetGemsFunc               func(ctx context.Context, env environment.Environment, updates []models.GemsUpdate) error
}

func (m *MockUpstream) TournamentLeaderboard(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentLeaderboard, error) {
	if m.TournamentLeaderboardFunc != nil {
		return m.TournamentLeaderboardFunc(ctx, env, rng)
	}
	return &models.TournamentLeaderboard{}, nil
}

func (m *MockUpstream) NewUserStats(ctx context.Context, env environment.Environment, from, to time.Time) (*models.NewUserStatsResponse, error) {
	if m.NewUserStatsFunc != nil {
		return m.NewUserStatsFunc(ctx, env, from, to)
	}
	return &models.NewUserStatsResponse{}, nil
}

func (m *MockUpstream) GameModeMapStats(ctx context.Context, env environment.Environment, from, to time.Time, newUsersOnly bool) (*models.GameModeMapStatsResponse, error) {
	if m.GameModeMapStatsFunc != nil {
		return m.GameModeMapStatsFunc(ctx, env, from, to, newUsersOnly)
	}
	return &models.GameModeMapStatsResponse{}, nil
}

func (m *MockUpstream) UserTournamentPoints(ctx context.Context, env environment.Environment, userName string) ([]models.UserTournamentPoints, error) {
	if m.UserTournamentPointsFunc != nil {
		return m.UserTournamentPointsFunc(ctx, env, userName)
	}
	return nil, nil
}

func (m *MockUpstream) SetTournamentPoints(ctx context.Context, env environment.Environment, updates []models.TournamentPointsUpdate) error {
	if m.SetTournamentPointsFunc != nil {
		return m.SetTournamentPointsFunc(ctx, env, updates)
	}
	return nil
}

func (m *MockUpstream) UserGems(ctx context.Context, env environment.Environment, userName string) ([]models.UserGems, error) {
	if m.UserGemsFunc != nil {
		return m.UserGemsFunc(ctx, env, userName)
	}
	return nil, nil
}

func (m *MockUpstream) SetGems(ctx context.Context, env environment.Environment, updates []models.GemsUpdate) error {
	if m.SetGemsFunc != nil {
		return m.SetGemsFunc(ctx, env, updates)
	}
	return nil
}

// MockAuditStore collects recorded entries.
type MockAuditStore struct {
	mu        sync.Mutex
	Entries   []audit.Entry
	RecordErr error
}

func (m *MockAuditStore) Record(ctx context.Context, e audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.Entries = append(m.Entries, e)
	return nil
}

func (m *MockAuditStore) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return m.Entries, nil
}

func (m *MockAuditStore) Ping(ctx context.Context) error { return nil }
