package models

import "time"

// TournamentLeaderboard is the body of GET /leaderboard/tournaments.
type TournamentLeaderboard struct {
	GameStats []TournamentGame `json:"gameStats"`
}

// TournamentGame is one finished tournament match.
type TournamentGame struct {
	PlayedAt  Timestamp   `json:"playedAt"`
	UserID    UserID      `json:"userId,omitempty"`
	TeamStats []TeamStats `json:"teamStats"`
}

// TournamentRow is a rendered leaderboard row. Teams[0] is the first team
// reported by the backend.
type TournamentRow struct {
	Rank     int             `json:"rank"`
	PlayedAt time.Time       `json:"played_at"`
	Teams    [2]TeamStanding `json:"teams"`
}

// TournamentBoard is the rendered tournament leaderboard.
type TournamentBoard struct {
	Rows []TournamentRow `json:"rows"`
}
