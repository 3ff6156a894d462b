package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/spikeware/courtside/internal/identity"
	"github.com/spikeware/courtside/internal/roster"
)

type aggregator struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new Aggregator backed by the given database.
func New(db *sql.DB) Aggregator {
	return &aggregator{db: db}
}

func (a *aggregator) PlayerStats(start string, end string) ([]*PlayerStanding, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	// Ordering by rsvp id keeps first-appearance order for equal counts.
	rows, err := a.db.Query(`
		SELECT u.id, u.name, u.team, u.avatar
		FROM rsvps r
		JOIN matches m ON m.id = r.match_id
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.status = ? AND m.match_date >= ? AND m.match_date <= ?
		ORDER BY r.id ASC`,
		roster.StatusConfirmed, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats: %w", err)
	}
	defer rows.Close()

	var standings []*PlayerStanding
	index := make(map[string]*PlayerStanding)
	for rows.Next() {
		var id, name, team, avatar sql.NullString
		if err := rows.Scan(&id, &name, &team, &avatar); err != nil {
			return nil, fmt.Errorf("failed to scan player stats row: %w", err)
		}
		if !id.Valid {
			// The rsvp points at a user that no longer resolves.
			continue
		}
		standing, ok := index[id.String]
		if !ok {
			standing = &PlayerStanding{
				UserID: id.String,
				Name:   name.String,
				Team:   team.String,
				Avatar: avatar.String,
			}
			index[id.String] = standing
			standings = append(standings, standing)
		}
		standing.Matches++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Matches > standings[j].Matches
	})
	return standings, nil
}

func (a *aggregator) UserStats(userID string, weekStart string, weekEnd string) (*UserStats, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var name string
	err := a.db.QueryRow("SELECT name FROM users WHERE id = ?", userID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, identity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	stats := &UserStats{UserID: userID, Name: name}

	err = a.db.QueryRow(`
		SELECT COUNT(*)
		FROM rsvps r
		JOIN matches m ON m.id = r.match_id
		WHERE r.user_id = ? AND r.status = ? AND m.match_date >= ? AND m.match_date <= ?`,
		userID, roster.StatusConfirmed, weekStart, weekEnd,
	).Scan(&stats.ThisWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly matches: %w", err)
	}

	err = a.db.QueryRow(
		"SELECT COUNT(*) FROM rsvps WHERE user_id = ? AND status = ?",
		userID, roster.StatusConfirmed,
	).Scan(&stats.AllTime)
	if err != nil {
		return nil, fmt.Errorf("failed to count all-time matches: %w", err)
	}

	err = a.db.QueryRow(
		"SELECT COUNT(*) FROM rsvps WHERE user_id = ? AND status = ?",
		userID, roster.StatusWaitlisted,
	).Scan(&stats.Waitlisted)
	if err != nil {
		return nil, fmt.Errorf("failed to count waitlist positions: %w", err)
	}

	return stats, nil
}
