package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu             sync.Mutex
	joins          int
	leaves         int
	promotions     int
	waitlisted     int
	slackCommands  int
	slackNotifSent int
	slackNotifFail int
	startupTime    float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncJoins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joins++
}

func (m *Mock) IncLeaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves++
}

func (m *Mock) IncPromotions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promotions++
}

func (m *Mock) IncWaitlisted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waitlisted++
}

func (m *Mock) IncSlackCommands() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackCommands++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFail++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Joins returns the number of times IncJoins was called.
func (m *Mock) Joins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joins
}

// Leaves returns the number of times IncLeaves was called.
func (m *Mock) Leaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaves
}

// Promotions returns the number of times IncPromotions was called.
func (m *Mock) Promotions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.promotions
}

// Waitlisted returns the number of times IncWaitlisted was called.
func (m *Mock) Waitlisted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waitlisted
}

// SlackCommands returns the number of times IncSlackCommands was called.
func (m *Mock) SlackCommands() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackCommands
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFail
}
