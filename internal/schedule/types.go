package schedule

import "time"

// Match statuses.
const (
	StatusOpen      = "open"
	StatusFull      = "full"
	StatusCancelled = "cancelled"
)

// DateFormat is how match dates are stored and exchanged.
const DateFormat = "2006-01-02"

// Match is a bookable court session.
type Match struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"timeSlot"`
	StartTime string    `json:"startTime"`
	MatchType string    `json:"matchType"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Slot is a recurring daily time slot.
type Slot struct {
	Name      string
	StartTime string
}

// DefaultSlots are generated for every weekday.
var DefaultSlots = []Slot{
	{Name: "morning", StartTime: "07:30"},
	{Name: "lunch", StartTime: "12:00"},
	{Name: "afterwork", StartTime: "17:00"},
}

// DefaultCapacity is the player capacity of a generated slot.
const DefaultCapacity = 4
