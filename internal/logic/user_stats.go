package logic

import (
	"context"
	"time"

	"github.com/battleroyale/stats-dashboard/internal/catalog"
	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
)

type userStatsService struct {
	api Upstream
}

func NewUserStatsService(api Upstream) UserStatsService {
	return &userStatsService{api: api}
}

// NewUsers returns the users created in [from, to] with their sessions'
// game mode and map ids resolved to names.
func (s *userStatsService) NewUsers(ctx context.Context, env environment.Environment, from, to time.Time) (*models.NewUsersReport, error) {
	raw, err := s.api.NewUserStats(ctx, env, from, to)
	if err != nil {
		return nil, err
	}

	report := &models.NewUsersReport{
		Items: make([]models.NewUserRow, 0, len(raw.Items)),
		Count: raw.Count,
	}
	for _, u := range raw.Items {
		row := models.NewUserRow{
			UserID:                       u.UserID,
			UserName:                     u.UserName,
			CreatedAt:                    u.CreatedAt.Time,
			TotalMatchesPlayed:           u.TotalMatchesPlayed,
			DeathMatchPlayedCount:        u.DeathMatchPlayedCount,
			TeamDeathMatchPlayedCount:    u.TeamDeathMatchPlayedCount,
			KingOfTheHillPlayedCount:     u.KingOfTheHillPlayedCount,
			TeamKingOfTheHillPlayedCount: u.TeamKingOfTheHillPlayedCount,
			Activities:                   make([]models.SessionRow, 0, len(u.Activities)),
		}
		for _, a := range u.Activities {
			row.Activities = append(row.Activities, models.SessionRow{
				GameMode:       catalog.GameModeLabel(a.GameModeID),
				Map:            catalog.MapLabel(a.MapID),
				SessionStartAt: a.SessionStartAt.Time,
			})
		}
		report.Items = append(report.Items, row)
	}
	return report, nil
}
