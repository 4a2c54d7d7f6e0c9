package logic

import (
	"context"
	"time"

	"github.com/battleroyale/stats-dashboard/internal/catalog"
	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
	"github.com/battleroyale/stats-dashboard/internal/timespan"
)

type activityService struct {
	api Upstream
}

func NewActivityService(api Upstream) ActivityService {
	return &activityService{api: api}
}

// Breakdown returns playtime per game mode and map, with the overall total
// rendered as words.
func (s *activityService) Breakdown(ctx context.Context, env environment.Environment, from, to time.Time, newUsersOnly bool) (*models.ActivityReport, error) {
	raw, err := s.api.GameModeMapStats(ctx, env, from, to, newUsersOnly)
	if err != nil {
		return nil, err
	}

	report := &models.ActivityReport{
		Rows:               make([]models.ActivityRow, 0, len(raw.Items)),
		TotalTimePlayed:    timespan.Format(raw.TotalPlayedTime),
		RawTotalTimePlayed: raw.TotalPlayedTime,
	}
	for _, item := range raw.Items {
		report.Rows = append(report.Rows, models.ActivityRow{
			GameMode:           catalog.GameModeLabel(item.GameModeID),
			Map:                catalog.MapLabel(item.MapID),
			TotalPlayersCount:  item.TotalPlayersCount,
			UniquePlayersCount: item.UniquePlayersCount,
			TotalTimePlayed:    item.TotalTimePlayed,
		})
	}
	return report, nil
}
