package models

// GameModeMapStatsResponse is the body of GET /admin/get-game-mode-map-stats.
type GameModeMapStatsResponse struct {
	Items           []GameModeMapStats `json:"items"`
	TotalPlayedTime string             `json:"totalPlayedTime"`
}

// GameModeMapStats is playtime for one game mode on one map.
type GameModeMapStats struct {
	GameModeID         int     `json:"gameModeId"`
	MapID              int     `json:"mapId"`
	TotalPlayersCount  int64   `json:"totalPlayersCount"`
	UniquePlayersCount int64   `json:"uniquePlayersCount"`
	TotalTimePlayed    float64 `json:"totalTimePlayed"`
}

// ActivityRow is GameModeMapStats with catalog names resolved.
type ActivityRow struct {
	GameMode           string  `json:"game_mode"`
	Map                string  `json:"map"`
	TotalPlayersCount  int64   `json:"total_players_count"`
	UniquePlayersCount int64   `json:"unique_players_count"`
	TotalTimePlayed    float64 `json:"total_time_played"`
}

// ActivityReport is the rendered activity page. TotalTimePlayed is the
// formatted form of RawTotalTimePlayed.
type ActivityReport struct {
	Rows               []ActivityRow `json:"rows"`
	TotalTimePlayed    string        `json:"total_time_played"`
	RawTotalTimePlayed string        `json:"raw_total_time_played"`
}

// Overview summarises one environment over a window.
type Overview struct {
	NewUsers          int    `json:"new_users"`
	TotalTimePlayed   string `json:"total_time_played"`
	Tournaments       int    `json:"tournaments"`
	ModeMapCombos     int    `json:"mode_map_combinations"`
	TotalPlayersCount int64  `json:"total_players_count"`
}
