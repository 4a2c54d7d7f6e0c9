package models

// TeamStats is a team's result in a tournament match.
type TeamStats struct {
	TotalPoints float64  `json:"totalPoints"`
	UserNames   []string `json:"userNames"`
}

// TeamStanding is TeamStats prepared for display. Present is false when the
// backend reported fewer than two teams.
type TeamStanding struct {
	Present bool     `json:"present"`
	Points  int64    `json:"points"`
	Players []string `json:"players"`
	Winner  bool     `json:"winner"`
}
