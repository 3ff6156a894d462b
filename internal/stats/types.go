package stats

// PlayerStanding is one row of the leaderboard.
type PlayerStanding struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Team    string `json:"team"`
	Avatar  string `json:"avatar"`
	Matches int    `json:"matches"`
}

// UserStats summarizes one player's confirmed match count.
type UserStats struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	ThisWeek   int    `json:"thisWeek"`
	AllTime    int    `json:"allTime"`
	Waitlisted int    `json:"waitlisted"`
}
