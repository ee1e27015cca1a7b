package notifier

import (
	"context"
	"errors"

	"github.com/mauv0809/cricscore/internal/squad"
)

// ErrNotConfigured is returned by the Noop notifier.
var ErrNotConfigured = errors.New("notifications are not configured")

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendTeamSelection posts a ranked team selection.
	SendTeamSelection(ctx context.Context, team string, players []squad.Player, dryRun bool) error
}

// Noop is used when no notification channel is configured.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) SendTeamSelection(ctx context.Context, team string, players []squad.Player, dryRun bool) error {
	return ErrNotConfigured
}
