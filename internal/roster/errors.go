package roster

import "errors"

var (
	// ErrMatchNotFound is returned when the match id does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchCancelled is returned when joining a cancelled match.
	ErrMatchCancelled = errors.New("match is cancelled")
	// ErrAlreadyJoined is returned when the player already holds a spot or a
	// waitlist position in the match.
	ErrAlreadyJoined = errors.New("already joined this match")
	// ErrNotJoined is returned when leaving a match the player never joined.
	ErrNotJoined = errors.New("not joined to this match")
)
