package schedule

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ErrMatchNotFound is returned when a match id does not exist.
var ErrMatchNotFound = errors.New("match not found")

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new MatchStore backed by the given database.
func New(db *sql.DB) MatchStore {
	return &store{db: db}
}

func (s *store) EnsureWeeklySlots(base time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := 0
	for day := 0; day < 7; day++ {
		date := base.AddDate(0, 0, day)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dateStr := date.Format(DateFormat)
		for _, slot := range DefaultSlots {
			var exists int
			err := tx.QueryRow(
				"SELECT COUNT(*) FROM matches WHERE match_date = ? AND time_slot = ?",
				dateStr, slot.Name,
			).Scan(&exists)
			if err != nil {
				return 0, fmt.Errorf("failed to check slot %s %s: %w", dateStr, slot.Name, err)
			}
			if exists > 0 {
				continue
			}
			_, err = tx.Exec(
				"INSERT INTO matches (id, match_date, time_slot, start_time, match_type, capacity, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
				uuid.NewString(), dateStr, slot.Name, slot.StartTime, "Open", DefaultCapacity, StatusOpen, time.Now().Unix(),
			)
			if err != nil {
				return 0, fmt.Errorf("failed to create slot %s %s: %w", dateStr, slot.Name, err)
			}
			created++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	if created > 0 {
		log.Info("Created weekly slots", "count", created, "from", base.Format(DateFormat))
	}
	return created, nil
}

func (s *store) CreateMatch(date string, timeSlot string, startTime string, matchType string, capacity int) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if capacity < 0 {
		return nil, fmt.Errorf("capacity must not be negative, got %d", capacity)
	}
	if _, err := time.Parse(DateFormat, date); err != nil {
		return nil, fmt.Errorf("invalid match date %q: %w", date, err)
	}
	if matchType == "" {
		matchType = "Open"
	}
	match := &Match{
		ID:        uuid.NewString(),
		Date:      date,
		TimeSlot:  timeSlot,
		StartTime: startTime,
		MatchType: matchType,
		Capacity:  capacity,
		Status:    StatusOpen,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(
		"INSERT INTO matches (id, match_date, time_slot, start_time, match_type, capacity, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		match.ID, match.Date, match.TimeSlot, match.StartTime, match.MatchType, match.Capacity, match.Status, match.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	log.Info("Created match", "id", match.ID, "date", match.Date, "slot", match.TimeSlot)
	return match, nil
}

func (s *store) GetMatch(id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		"SELECT id, match_date, time_slot, start_time, match_type, capacity, status, created_at FROM matches WHERE id = ?", id)
	var m Match
	var createdAt int64
	err := row.Scan(&m.ID, &m.Date, &m.TimeSlot, &m.StartTime, &m.MatchType, &m.Capacity, &m.Status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	m.CreatedAt = time.Unix(createdAt, 0)
	return &m, nil
}

func (s *store) MatchesInRange(start string, end string) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, match_date, time_slot, start_time, match_type, capacity, status, created_at FROM matches WHERE match_date >= ? AND match_date <= ? ORDER BY match_date ASC, start_time ASC",
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		var m Match
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.Date, &m.TimeSlot, &m.StartTime, &m.MatchType, &m.Capacity, &m.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.CreatedAt = time.Unix(createdAt, 0)
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

func (s *store) CancelMatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE matches SET status = ? WHERE id = ?", StatusCancelled, id)
	if err != nil {
		return fmt.Errorf("failed to cancel match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrMatchNotFound
	}
	log.Info("Cancelled match", "id", id)
	return nil
}

// WeekBounds returns the Monday-to-Sunday week containing t, as dates.
func WeekBounds(t time.Time) (string, string) {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	monday := t.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(DateFormat), sunday.Format(DateFormat)
}
