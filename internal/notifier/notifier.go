package notifier

import (
	"github.com/spikeware/courtside/internal/identity"
	"github.com/spikeware/courtside/internal/schedule"
	"github.com/spikeware/courtside/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For roster changes
	SendMatchFullNotification(match *schedule.Match, dryRun bool) error
	SendPromotionNotification(match *schedule.Match, user *identity.User, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(standings []*stats.PlayerStanding) (any, error)
	FormatUserStatsResponse(userStats *stats.UserStats) (any, error)
	FormatUserNotFoundResponse(query string) (any, error)
}
