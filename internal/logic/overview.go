package logic

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
	"github.com/battleroyale/stats-dashboard/internal/timespan"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
)

type overviewService struct {
	api Upstream
}

func NewOverviewService(api Upstream) OverviewService {
	return &overviewService{api: api}
}

// Overview queries the new user, activity and tournament endpoints in
// parallel and condenses them into one summary.
func (s *overviewService) Overview(ctx context.Context, env environment.Environment, from, to time.Time) (*models.Overview, error) {
	out := &models.Overview{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := s.api.NewUserStats(ctx, env, from, to)
		if err != nil {
			return fmt.Errorf("new users: %w", err)
		}
		out.NewUsers = users.Count
		return nil
	})

	g.Go(func() error {
		activity, err := s.api.GameModeMapStats(ctx, env, from, to, false)
		if err != nil {
			return fmt.Errorf("activity: %w", err)
		}
		out.TotalTimePlayed = timespan.Format(activity.TotalPlayedTime)
		out.ModeMapCombos = len(activity.Items)
		for _, item := range activity.Items {
			out.TotalPlayersCount += item.TotalPlayersCount
		}
		return nil
	})

	g.Go(func() error {
		board, err := s.api.TournamentLeaderboard(ctx, env, upstream.Range{From: from, To: to})
		if err != nil {
			return fmt.Errorf("tournaments: %w", err)
		}
		out.Tournaments = len(board.GameStats)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
