package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/battleroyale/stats-dashboard/internal/audit"
	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
)

// ErrInvalidUpdate wraps validation failures of a write batch.
var ErrInvalidUpdate = errors.New("invalid update")

type economyService struct {
	api       Upstream
	audit     audit.Store
	validator *validator.Validate
	logger    *zap.SugaredLogger
}

func NewEconomyService(api Upstream, store audit.Store, logger *zap.Logger) EconomyService {
	if store == nil {
		store = audit.NopStore{}
	}
	return &economyService{
		api:       api,
		audit:     store,
		validator: validator.New(),
		logger:    logger.Sugar(),
	}
}

func (s *economyService) TournamentPoints(ctx context.Context, env environment.Environment, userName string) ([]models.UserTournamentPoints, error) {
	return s.api.UserTournamentPoints(ctx, env, userName)
}

func (s *economyService) Gems(ctx context.Context, env environment.Environment, userName string) ([]models.UserGems, error) {
	return s.api.UserGems(ctx, env, userName)
}

// SetTournamentPoints validates and forwards a batch, then records one audit
// entry per user.
func (s *economyService) SetTournamentPoints(ctx context.Context, env environment.Environment, actor string, updates []models.TournamentPointsUpdate) error {
	if err := s.validator.Struct(models.SetTournamentPointsRequest{TournamentPoints: updates}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	if err := s.api.SetTournamentPoints(ctx, env, updates); err != nil {
		return err
	}
	for _, u := range updates {
		s.record(ctx, audit.NewEntry(env.String(), audit.KindTournamentPoints, u.UserID.String(), actor, map[string]float64{
			"tournamentPoints":      u.TournamentPoints,
			"tournamentPlayedCount": float64(u.TournamentPlayedCount),
		}))
	}
	return nil
}

// SetGems validates and forwards a batch, then records one audit entry per
// user.
func (s *economyService) SetGems(ctx context.Context, env environment.Environment, actor string, updates []models.GemsUpdate) error {
	if err := s.validator.Struct(models.SetGemsRequest{UserGems: updates}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	if err := s.api.SetGems(ctx, env, updates); err != nil {
		return err
	}
	for _, u := range updates {
		s.record(ctx, audit.NewEntry(env.String(), audit.KindGems, u.UserID.String(), actor, map[string]float64{
			"gemsCount": float64(u.GemsCount),
		}))
	}
	return nil
}

// record never fails the write; the upstream change has already happened.
func (s *economyService) record(ctx context.Context, e audit.Entry) {
	if err := s.audit.Record(ctx, e); err != nil {
		s.logger.Errorw("Failed to record audit entry", "kind", e.Kind, "user_id", e.UserID, "env", e.Env, "error", err)
	}
}
