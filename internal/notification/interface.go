package notification

import "time"

// NotificationStore records scheduled notifications and tracks delivery.
type NotificationStore interface {
	Create(n NewNotification) (*Notification, error)
	// ListPending returns the user's unsent notifications scheduled after now.
	ListPending(userID string, now time.Time) ([]*Notification, error)
	// MarkSent flags a notification as delivered. Marking twice is a no-op.
	MarkSent(id int64) error
}
