package notification

import "time"

// Notification kinds.
const (
	KindReminder  = "reminder"
	KindFinalCall = "final_call"
)

// Notification is a scheduled message for a player about a match.
type Notification struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"userId"`
	MatchID      string    `json:"matchId"`
	Kind         string    `json:"kind"`
	Message      string    `json:"message"`
	ScheduledFor time.Time `json:"scheduledFor"`
	Sent         bool      `json:"sent"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewNotification is the payload for recording a notification.
type NewNotification struct {
	UserID       string    `json:"userId" msgpack:"user_id"`
	MatchID      string    `json:"matchId" msgpack:"match_id"`
	Kind         string    `json:"kind" msgpack:"kind"`
	Message      string    `json:"message" msgpack:"message"`
	ScheduledFor time.Time `json:"scheduledFor" msgpack:"scheduled_for"`
}
