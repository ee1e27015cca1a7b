package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/cricscore/internal/metrics"
	"github.com/mauv0809/cricscore/internal/notifier"
	"github.com/mauv0809/cricscore/internal/squad"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendTeamSelection(ctx context.Context, team string, players []squad.Player, dryRun bool) error {
	msg := formatTeamSelection(team, players)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

// formatTeamSelection renders the selection as a header followed by one
// section per player in rank order.
func formatTeamSelection(team string, players []squad.Player) slack.Message {
	blocks := make([]slack.Block, 0, len(players)+2)

	title := "🏏 Best XI 🏏"
	if team != "" {
		title = fmt.Sprintf("🏏 Best XI for %s 🏏", team)
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players yet. Add some players and record their matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, p := range players {
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

		text := fmt.Sprintf("%d. %s *%s* (%s)\n> *Efficiency*: %.2f | Runs: %d | Wickets: %d | Catches: %d",
			rank,
			medal,
			p.Name,
			p.Role,
			p.Efficiency,
			p.TotalRuns,
			p.TotalWickets,
			p.TotalCatches,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil))
	}

	if len(players) < squad.TeamSize {
		note := fmt.Sprintf("Only %d of %d places filled.", len(players), squad.TeamSize)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", note, false, false)))
	}

	return slack.NewBlockMessage(blocks...)
}
