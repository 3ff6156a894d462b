package slack

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/spikeware/courtside/internal/identity"
	"github.com/spikeware/courtside/internal/schedule"
	"github.com/spikeware/courtside/internal/stats"
)

// formatMatchFull creates the Slack message for a match that just filled up using Block Kit.
func (s *Notifier) formatMatchFull(match *schedule.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏐 Match is full! 🏐", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s %s at %s", match.Date, match.TimeSlot, match.StartTime)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", "New joins go on the waitlist.", true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatPromotion creates the Slack message for a waitlist promotion.
func (s *Notifier) formatPromotion(match *schedule.Match, user *identity.User) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏐 You're in! 🏐", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s got a spot in the %s match on %s at %s.",
		user.Name, match.TimeSlot, match.Date, match.StartTime)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func (s *Notifier) formatLeaderboard(standings []*stats.PlayerStanding) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Player Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, standing := range standings {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> *Matches*: %d",
			rank,
			medal,
			standing.Name,
			standing.Matches,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatUserStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatUserStats(userStats *stats.UserStats) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏐 Stats for %s 🏐", userStats.Name)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *This week*: %d\n> *All time*: %d\n> *Waitlisted*: %d",
		userStats.ThisWeek,
		userStats.AllTime,
		userStats.Waitlisted,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
