package roster

import "time"

// RSVP statuses.
const (
	StatusConfirmed  = "confirmed"
	StatusWaitlisted = "waitlisted"
)

// RSVP is one player's spot (or queue position) in a match.
type RSVP struct {
	ID       int64     `json:"id"`
	MatchID  string    `json:"matchId"`
	UserID   string    `json:"userId"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joinedAt"`
}

// JoinResult reports the outcome of a join.
type JoinResult struct {
	RSVP *RSVP `json:"rsvp"`
	// MatchFull is true when this join filled the last confirmed slot.
	MatchFull bool `json:"matchFull"`
}

// LeaveResult reports the outcome of a leave.
type LeaveResult struct {
	WasConfirmed bool `json:"wasConfirmed"`
	// Promoted holds the waitlisted player moved up by this leave, if any.
	Promoted *RSVP `json:"promoted,omitempty"`
}
