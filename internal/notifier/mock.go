package notifier

import (
	"sync"

	"github.com/spikeware/courtside/internal/identity"
	"github.com/spikeware/courtside/internal/schedule"
	"github.com/spikeware/courtside/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchFullCalls []struct{ Match *schedule.Match }
	SendPromotionCalls []struct {
		Match *schedule.Match
		User  *identity.User
	}

	// Spies for format functions
	FormatLeaderboardResponseFunc  func(standings []*stats.PlayerStanding) (any, error)
	FormatUserStatsResponseFunc    func(userStats *stats.UserStats) (any, error)
	FormatUserNotFoundResponseFunc func(query string) (any, error)

	// Call records for format functions
	LastLeaderboardResponse  any
	LastUserStatsResponse    any
	LastUserNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchFullCalls = nil
	m.SendPromotionCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastUserStatsResponse = nil
	m.LastUserNotFoundResponse = nil
}

func (m *Mock) SendMatchFullNotification(match *schedule.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchFullCalls = append(m.SendMatchFullCalls, struct{ Match *schedule.Match }{match})
	return nil
}

func (m *Mock) SendPromotionNotification(match *schedule.Match, user *identity.User, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPromotionCalls = append(m.SendPromotionCalls, struct {
		Match *schedule.Match
		User  *identity.User
	}{match, user})
	return nil
}

func (m *Mock) FormatLeaderboardResponse(standings []*stats.PlayerStanding) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(standings)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	m.LastLeaderboardResponse = standings
	return standings, nil
}

func (m *Mock) FormatUserStatsResponse(userStats *stats.UserStats) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatUserStatsResponseFunc != nil {
		resp, err := m.FormatUserStatsResponseFunc(userStats)
		m.LastUserStatsResponse = resp
		return resp, err
	}
	m.LastUserStatsResponse = userStats
	return userStats, nil
}

func (m *Mock) FormatUserNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatUserNotFoundResponseFunc != nil {
		resp, err := m.FormatUserNotFoundResponseFunc(query)
		m.LastUserNotFoundResponse = resp
		return resp, err
	}
	m.LastUserNotFoundResponse = query
	return query, nil
}
