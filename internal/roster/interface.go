package roster

// RosterStore manages match participation: confirmed spots, the waitlist,
// and promotion between them. Every mutation runs in a single transaction,
// so callers never observe partial state.
type RosterStore interface {
	Join(matchID string, userID string) (*JoinResult, error)
	Leave(matchID string, userID string) (*LeaveResult, error)
	// Promote moves the front of the waitlist into a free confirmed slot.
	// It returns nil when no slot is free or the waitlist is empty.
	Promote(matchID string) (*RSVP, error)
	RSVPsForMatch(matchID string) ([]*RSVP, error)
	RSVPsForUser(userID string) ([]*RSVP, error)
	ConfirmedCount(matchID string) (int, error)
}
