package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchFull        EventType = "match-full"
	EventWaitlistPromoted EventType = "waitlist-promoted"
	EventScheduleReminder EventType = "schedule-reminder"
)

// RosterEvent is the payload published for match-full and
// waitlist-promoted events.
type RosterEvent struct {
	MatchID string `msgpack:"match_id"`
	UserID  string `msgpack:"user_id"`
	Status  string `msgpack:"status"`
}
