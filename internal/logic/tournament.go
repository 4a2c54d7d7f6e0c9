package logic

import (
	"context"
	"math"

	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
)

type tournamentService struct {
	api Upstream
}

func NewTournamentService(api Upstream) TournamentService {
	return &tournamentService{api: api}
}

// Board fetches the tournament leaderboard and prepares it for display.
func (s *tournamentService) Board(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentBoard, error) {
	raw, err := s.api.TournamentLeaderboard(ctx, env, rng)
	if err != nil {
		return nil, err
	}
	board := &models.TournamentBoard{Rows: make([]models.TournamentRow, 0, len(raw.GameStats))}
	for i, game := range raw.GameStats {
		board.Rows = append(board.Rows, BuildTournamentRow(i+1, game))
	}
	return board, nil
}

// BuildTournamentRow derives the winner from the point totals: the first
// team wins only with strictly more points, so a tie goes to the second.
// Points are truncated toward zero.
func BuildTournamentRow(rank int, game models.TournamentGame) models.TournamentRow {
	row := models.TournamentRow{Rank: rank, PlayedAt: game.PlayedAt.Time}

	var points [2]float64
	for i := 0; i < 2 && i < len(game.TeamStats); i++ {
		team := game.TeamStats[i]
		points[i] = team.TotalPoints
		row.Teams[i] = models.TeamStanding{
			Present: true,
			Points:  int64(math.Trunc(team.TotalPoints)),
			Players: team.UserNames,
		}
	}

	firstWins := row.Teams[0].Present && row.Teams[1].Present && points[0] > points[1]
	row.Teams[0].Winner = firstWins
	row.Teams[1].Winner = !firstWins
	return row
}
