package schedule

import "time"

// MatchStore manages the match calendar.
type MatchStore interface {
	// EnsureWeeklySlots creates the default slots for the seven days starting
	// at base, skipping weekends and any slot that already exists. It returns
	// the number of matches created.
	EnsureWeeklySlots(base time.Time) (int, error)
	CreateMatch(date string, timeSlot string, startTime string, matchType string, capacity int) (*Match, error)
	GetMatch(id string) (*Match, error)
	MatchesInRange(start string, end string) ([]*Match, error)
	CancelMatch(id string) error
}
