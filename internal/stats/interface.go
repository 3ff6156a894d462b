package stats

// Aggregator computes leaderboards and per-player summaries from the
// current roster state. Results are recomputed on every call; leaving a
// match removes it from a player's tally.
type Aggregator interface {
	PlayerStats(start string, end string) ([]*PlayerStanding, error)
	UserStats(userID string, weekStart string, weekEnd string) (*UserStats, error)
}
