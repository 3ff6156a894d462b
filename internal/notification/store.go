package notification

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new NotificationStore backed by the given database.
func New(db *sql.DB) NotificationStore {
	return &store{db: db}
}

func (s *store) Create(n NewNotification) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &Notification{
		UserID:       n.UserID,
		MatchID:      n.MatchID,
		Kind:         n.Kind,
		Message:      n.Message,
		ScheduledFor: n.ScheduledFor,
		CreatedAt:    time.Now(),
	}
	res, err := s.db.Exec(
		"INSERT INTO notifications (user_id, match_id, kind, message, scheduled_for, sent, created_at) VALUES (?, ?, ?, ?, ?, 0, ?)",
		record.UserID, record.MatchID, record.Kind, record.Message, record.ScheduledFor.Unix(), record.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}
	record.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read notification id: %w", err)
	}
	log.Info("Recorded notification", "id", record.ID, "user", record.UserID, "kind", record.Kind)
	return record, nil
}

func (s *store) ListPending(userID string, now time.Time) ([]*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, user_id, match_id, kind, message, scheduled_for, sent, created_at FROM notifications WHERE user_id = ? AND sent = 0 AND scheduled_for > ? ORDER BY scheduled_for ASC",
		userID, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var pending []*Notification
	for rows.Next() {
		var n Notification
		var scheduledFor, createdAt int64
		var sent int
		if err := rows.Scan(&n.ID, &n.UserID, &n.MatchID, &n.Kind, &n.Message, &scheduledFor, &sent, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.ScheduledFor = time.Unix(scheduledFor, 0)
		n.CreatedAt = time.Unix(createdAt, 0)
		n.Sent = sent != 0
		pending = append(pending, &n)
	}
	return pending, rows.Err()
}

func (s *store) MarkSent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("UPDATE notifications SET sent = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return nil
}
