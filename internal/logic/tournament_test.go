package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
)

func game(points ...float64) models.TournamentGame {
	g := models.TournamentGame{PlayedAt: models.Timestamp{Time: time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)}}
	for i, p := range points {
		g.TeamStats = append(g.TeamStats, models.TeamStats{TotalPoints: p, UserNames: []string{string(rune('a' + i))}})
	}
	return g
}

func TestBuildTournamentRow(t *testing.T) {
	tests := []struct {
		name        string
		game        models.TournamentGame
		firstWins   bool
		secondWins  bool
		firstPoints int64
		present     [2]bool
	}{
		{"first team ahead", game(15.9, 10), true, false, 15, [2]bool{true, true}},
		{"second team ahead", game(3, 10.2), false, true, 3, [2]bool{true, true}},
		{"tie goes to second team", game(7.4, 7.4), false, true, 7, [2]bool{true, true}},
		{"negative totals truncate toward zero", game(-1.7, -2), true, false, -1, [2]bool{true, true}},
		{"single team", game(4), false, true, 4, [2]bool{true, false}},
		{"no teams", game(), false, true, 0, [2]bool{false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := BuildTournamentRow(3, tt.game)
			if row.Rank != 3 {
				t.Errorf("Rank = %d", row.Rank)
			}
			if row.Teams[0].Winner != tt.firstWins || row.Teams[1].Winner != tt.secondWins {
				t.Errorf("winners = %v/%v, want %v/%v", row.Teams[0].Winner, row.Teams[1].Winner, tt.firstWins, tt.secondWins)
			}
			if row.Teams[0].Points != tt.firstPoints {
				t.Errorf("first points = %d, want %d", row.Teams[0].Points, tt.firstPoints)
			}
			if row.Teams[0].Present != tt.present[0] || row.Teams[1].Present != tt.present[1] {
				t.Errorf("present = %v/%v, want %v", row.Teams[0].Present, row.Teams[1].Present, tt.present)
			}
		})
	}
}

func TestBoard_NumbersRows(t *testing.T) {
	var gotRange upstream.Range
	api := &MockUpstream{
		TournamentLeaderboardFunc: func(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentLeaderboard, error) {
			gotRange = rng
			return &models.TournamentLeaderboard{GameStats: []models.TournamentGame{game(1, 2), game(5, 4)}}, nil
		},
	}

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	board, err := NewTournamentService(api).Board(context.Background(), environment.Dev, upstream.Range{From: from})
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if !gotRange.From.Equal(from) || !gotRange.To.IsZero() {
		t.Errorf("range passed = %+v", gotRange)
	}
	if len(board.Rows) != 2 || board.Rows[0].Rank != 1 || board.Rows[1].Rank != 2 {
		t.Fatalf("rows = %+v", board.Rows)
	}
	if !board.Rows[1].Teams[0].Winner {
		t.Error("expected first team to win second game")
	}
}

func TestBoard_PropagatesError(t *testing.T) {
	api := &MockUpstream{
		TournamentLeaderboardFunc: func(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentLeaderboard, error) {
			return nil, errors.New("timeout")
		},
	}
	if _, err := NewTournamentService(api).Board(context.Background(), environment.Dev, upstream.Range{}); err == nil {
		t.Error("expected error")
	}
}
