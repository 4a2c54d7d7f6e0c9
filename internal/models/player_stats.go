package models

import "time"

// NewUserStatsResponse is the body of GET /admin/get-new-user-stats.
type NewUserStatsResponse struct {
	Items []NewUserStats `json:"items"`
	Count int            `json:"count"`
}

// NewUserStats summarises a user registered inside the requested window.
type NewUserStats struct {
	UserID                       UserID         `json:"userId"`
	UserName                     string         `json:"userName"`
	CreatedAt                    Timestamp      `json:"createdAt"`
	TotalMatchesPlayed           int            `json:"totalMatchesPlayed"`
	DeathMatchPlayedCount        int            `json:"deathMatchPlayedCount"`
	TeamDeathMatchPlayedCount    int            `json:"teamDeathMatchPlayedCount"`
	KingOfTheHillPlayedCount     int            `json:"kingOfTheHillPlayedCount"`
	TeamKingOfTheHillPlayedCount int            `json:"teamKingOfTheHillPlayedCount"`
	Activities                   []UserActivity `json:"activities"`
}

// UserActivity is a single play session.
type UserActivity struct {
	GameModeID     int       `json:"gameModeId"`
	MapID          int       `json:"mapId"`
	SessionStartAt Timestamp `json:"sessionStartAt"`
}

// NewUserRow is NewUserStats with catalog names resolved.
type NewUserRow struct {
	UserID                       UserID       `json:"user_id"`
	UserName                     string       `json:"user_name"`
	CreatedAt                    time.Time    `json:"created_at"`
	TotalMatchesPlayed           int          `json:"total_matches_played"`
	DeathMatchPlayedCount        int          `json:"death_match_played"`
	TeamDeathMatchPlayedCount    int          `json:"team_death_match_played"`
	KingOfTheHillPlayedCount     int          `json:"king_of_the_hill_played"`
	TeamKingOfTheHillPlayedCount int          `json:"team_king_of_the_hill_played"`
	Activities                   []SessionRow `json:"activities"`
}

// SessionRow is a UserActivity with catalog names resolved.
type SessionRow struct {
	GameMode       string    `json:"game_mode"`
	Map            string    `json:"map"`
	SessionStartAt time.Time `json:"session_start_at"`
}

// NewUsersReport is the rendered new user page.
type NewUsersReport struct {
	Items []NewUserRow `json:"items"`
	Count int          `json:"count"`
}
