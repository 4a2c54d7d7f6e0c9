package models

// UserTournamentPoints is a row of GET /admin/user-tournament-points.
type UserTournamentPoints struct {
	UserID                UserID    `json:"userId"`
	UserName              string    `json:"userName"`
	CreatedAt             Timestamp `json:"createdAt"`
	TournamentPoints      float64   `json:"tournamentPoints"`
	TournamentPlayedCount int64     `json:"tournamentPlayedCount"`
}

// UserGems is a row of GET /admin/user-gems.
type UserGems struct {
	UserID    UserID    `json:"userId"`
	UserName  string    `json:"userName"`
	CreatedAt Timestamp `json:"createdAt"`
	GemsCount int64     `json:"gemsCount"`
}

type TournamentPointsUpdate struct {
	UserID                UserID  `json:"userId" validate:"required"`
	TournamentPoints      float64 `json:"tournamentPoints" validate:"gte=0"`
	TournamentPlayedCount int64   `json:"tournamentPlayedCount" validate:"gte=0"`
}

// SetTournamentPointsRequest is the body of POST /admin/set-toournament-points.
type SetTournamentPointsRequest struct {
	TournamentPoints []TournamentPointsUpdate `json:"tournamentPoints" validate:"required,min=1,dive"`
}

type GemsUpdate struct {
	UserID    UserID `json:"userId" validate:"required"`
	GemsCount int64  `json:"gemsCount" validate:"gte=0"`
}

// SetGemsRequest is the body of POST /admin/set-gems.
type SetGemsRequest struct {
	UserGems []GemsUpdate `json:"userGems" validate:"required,min=1,dive"`
}
