package roster

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spikeware/courtside/internal/schedule"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new RosterStore backed by the given database.
func New(db *sql.DB) RosterStore {
	return &store{db: db}
}

func (s *store) Join(matchID string, userID string) (*JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	capacity, status, err := matchState(tx, matchID)
	if err != nil {
		return nil, err
	}
	if status == schedule.StatusCancelled {
		return nil, ErrMatchCancelled
	}

	var existing int
	err = tx.QueryRow("SELECT COUNT(*) FROM rsvps WHERE match_id = ? AND user_id = ?", matchID, userID).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing rsvp: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyJoined
	}

	confirmed, err := confirmedCount(tx, matchID)
	if err != nil {
		return nil, err
	}

	rsvp := &RSVP{
		MatchID:  matchID,
		UserID:   userID,
		Status:   StatusWaitlisted,
		JoinedAt: time.Now(),
	}
	if confirmed < capacity {
		rsvp.Status = StatusConfirmed
		confirmed++
	}

	res, err := tx.Exec(
		"INSERT INTO rsvps (match_id, user_id, status, joined_at) VALUES (?, ?, ?, ?)",
		rsvp.MatchID, rsvp.UserID, rsvp.Status, rsvp.JoinedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rsvp: %w", err)
	}
	rsvp.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read rsvp id: %w", err)
	}

	if err := deriveStatus(tx, matchID, confirmed, capacity); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result := &JoinResult{
		RSVP:      rsvp,
		MatchFull: rsvp.Status == StatusConfirmed && confirmed == capacity,
	}
	log.Info("Player joined match", "match", matchID, "user", userID, "status", rsvp.Status)
	return result, nil
}

func (s *store) Leave(matchID string, userID string) (*LeaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	capacity, status, err := matchState(tx, matchID)
	if err != nil {
		return nil, err
	}

	var rsvpStatus string
	err = tx.QueryRow("SELECT status FROM rsvps WHERE match_id = ? AND user_id = ?", matchID, userID).Scan(&rsvpStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotJoined
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rsvp: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM rsvps WHERE match_id = ? AND user_id = ?", matchID, userID); err != nil {
		return nil, fmt.Errorf("failed to delete rsvp: %w", err)
	}

	result := &LeaveResult{WasConfirmed: rsvpStatus == StatusConfirmed}

	confirmed, err := confirmedCount(tx, matchID)
	if err != nil {
		return nil, err
	}
	if result.WasConfirmed && status != schedule.StatusCancelled {
		for confirmed < capacity {
			promoted, err := promoteNext(tx, matchID)
			if err != nil {
				return nil, err
			}
			if promoted == nil {
				break
			}
			if result.Promoted == nil {
				result.Promoted = promoted
			}
			confirmed++
		}
	}

	if status != schedule.StatusCancelled {
		if err := deriveStatus(tx, matchID, confirmed, capacity); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Player left match", "match", matchID, "user", userID, "wasConfirmed", result.WasConfirmed)
	return result, nil
}

func (s *store) Promote(matchID string) (*RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	capacity, status, err := matchState(tx, matchID)
	if err != nil {
		return nil, err
	}
	if status == schedule.StatusCancelled {
		return nil, ErrMatchCancelled
	}

	confirmed, err := confirmedCount(tx, matchID)
	if err != nil {
		return nil, err
	}
	if confirmed >= capacity {
		return nil, nil
	}

	promoted, err := promoteNext(tx, matchID)
	if err != nil {
		return nil, err
	}
	if promoted == nil {
		return nil, nil
	}
	confirmed++

	if err := deriveStatus(tx, matchID, confirmed, capacity); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info("Promoted player from waitlist", "match", matchID, "user", promoted.UserID)
	return promoted, nil
}

func (s *store) RSVPsForMatch(matchID string) ([]*RSVP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryRSVPs("SELECT id, match_id, user_id, status, joined_at FROM rsvps WHERE match_id = ? ORDER BY joined_at ASC, id ASC", matchID)
}

func (s *store) RSVPsForUser(userID string) ([]*RSVP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryRSVPs("SELECT id, match_id, user_id, status, joined_at FROM rsvps WHERE user_id = ? ORDER BY joined_at ASC, id ASC", userID)
}

func (s *store) ConfirmedCount(matchID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM rsvps WHERE match_id = ? AND status = ?", matchID, StatusConfirmed).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count confirmed rsvps: %w", err)
	}
	return count, nil
}

func (s *store) queryRSVPs(query string, arg string) ([]*RSVP, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query rsvps: %w", err)
	}
	defer rows.Close()

	var rsvps []*RSVP
	for rows.Next() {
		var r RSVP
		var joinedAt int64
		if err := rows.Scan(&r.ID, &r.MatchID, &r.UserID, &r.Status, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rsvp: %w", err)
		}
		r.JoinedAt = time.Unix(joinedAt, 0)
		rsvps = append(rsvps, &r)
	}
	return rsvps, rows.Err()
}

func matchState(tx *sql.Tx, matchID string) (int, string, error) {
	var capacity int
	var status string
	err := tx.QueryRow("SELECT capacity, status FROM matches WHERE id = ?", matchID).Scan(&capacity, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrMatchNotFound
	}
	if err != nil {
		return 0, "", fmt.Errorf("failed to load match: %w", err)
	}
	return capacity, status, nil
}

func confirmedCount(tx *sql.Tx, matchID string) (int, error) {
	var count int
	err := tx.QueryRow("SELECT COUNT(*) FROM rsvps WHERE match_id = ? AND status = ?", matchID, StatusConfirmed).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count confirmed rsvps: %w", err)
	}
	return count, nil
}

// promoteNext flips the front of the waitlist to confirmed. The original
// join timestamp is kept so repeated promotions stay in order.
func promoteNext(tx *sql.Tx, matchID string) (*RSVP, error) {
	var r RSVP
	var joinedAt int64
	err := tx.QueryRow(
		"SELECT id, match_id, user_id, status, joined_at FROM rsvps WHERE match_id = ? AND status = ? ORDER BY joined_at ASC, id ASC LIMIT 1",
		matchID, StatusWaitlisted,
	).Scan(&r.ID, &r.MatchID, &r.UserID, &r.Status, &joinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find waitlisted rsvp: %w", err)
	}
	if _, err := tx.Exec("UPDATE rsvps SET status = ? WHERE id = ?", StatusConfirmed, r.ID); err != nil {
		return nil, fmt.Errorf("failed to promote rsvp: %w", err)
	}
	r.Status = StatusConfirmed
	r.JoinedAt = time.Unix(joinedAt, 0)
	return &r, nil
}

// deriveStatus recomputes the match status from the confirmed count. It is
// never called for cancelled matches.
func deriveStatus(tx *sql.Tx, matchID string, confirmed int, capacity int) error {
	status := schedule.StatusOpen
	if confirmed == capacity {
		status = schedule.StatusFull
	}
	if _, err := tx.Exec("UPDATE matches SET status = ? WHERE id = ?", status, matchID); err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	return nil
}
