package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/cricscore/internal/metrics"
	"github.com/mauv0809/cricscore/internal/squad"
	"github.com/mauv0809/cricscore/internal/stats"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func selection() []squad.Player {
	return []squad.Player{
		{Name: "Raj", Role: stats.RoleBatsman, Aggregate: stats.Aggregate{Efficiency: 294, TotalRuns: 50, TotalCatches: 1}},
		{Name: "Sam", Role: stats.RoleBowler, Aggregate: stats.Aggregate{Efficiency: 120.5, TotalWickets: 3}},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(context.Background(), message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendTeamSelection_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := notifier.SendTeamSelection(context.Background(), "Lions", selection(), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendTeamSelection")
}

func TestFormatTeamSelection(t *testing.T) {
	t.Run("ranks players", func(t *testing.T) {
		msg := formatTeamSelection("Lions", selection())
		require.Len(t, msg.Blocks.BlockSet, 4, "header, two players and the fill note")

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok, "First block should be a HeaderBlock")
		assert.Equal(t, "🏏 Best XI for Lions 🏏", header.Text.Text)

		first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "1. 🥇 *Raj* (Batsman)\n> *Efficiency*: 294.00 | Runs: 50 | Wickets: 0 | Catches: 1", first.Text.Text)

		second, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, second.Text.Text, "2. 🥈 *Sam* (Bowler)")
		assert.Contains(t, second.Text.Text, "120.50")

		note, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
		require.True(t, ok)
		require.Len(t, note.ContextElements.Elements, 1)
		text, ok := note.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Equal(t, "Only 2 of 11 places filled.", text.Text)
	})

	t.Run("full team has no fill note", func(t *testing.T) {
		players := make([]squad.Player, squad.TeamSize)
		for i := range players {
			players[i] = squad.Player{Name: string(rune('A' + i)), Role: stats.RoleAllRounder}
		}
		msg := formatTeamSelection("", players)
		require.Len(t, msg.Blocks.BlockSet, squad.TeamSize+1)

		header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		assert.Equal(t, "🏏 Best XI 🏏", header.Text.Text)
	})

	t.Run("no players", func(t *testing.T) {
		msg := formatTeamSelection("Lions", nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No players yet. Add some players and record their matches!", section.Text.Text)
	})
}
