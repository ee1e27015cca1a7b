package squad

import (
	"context"

	"github.com/mauv0809/cricscore/internal/stats"
)

// PlayerStore defines the operations on a coach's players and their match
// history. Every mutation of a match rebuilds the player's aggregate from the
// full stored history.
type PlayerStore interface {
	AddPlayer(ctx context.Context, coachID, name string, role stats.Role) (*Player, error)
	DeletePlayer(ctx context.Context, coachID, name string) error
	// RenamePlayer replaces a player with a fresh one under newName. The old
	// player's match history is discarded.
	RenamePlayer(ctx context.Context, coachID, oldName, newName string, role stats.Role) (*Player, error)
	GetPlayer(ctx context.Context, coachID, name string) (*Player, error)
	ListPlayers(ctx context.Context, coachID string) ([]Player, error)

	AddMatch(ctx context.Context, coachID, playerName, matchID string, raw stats.RawInputs) (*stats.MatchRecord, error)
	UpdateMatch(ctx context.Context, coachID, playerName, matchID string, raw stats.RawInputs) (*stats.MatchRecord, error)
	DeleteMatch(ctx context.Context, coachID, playerName, matchID string) error
	ListMatches(ctx context.Context, coachID, playerName string) ([]stats.MatchRecord, error)

	// Recalculate rebuilds a player's aggregate without changing any match.
	Recalculate(ctx context.Context, coachID, playerName string) (*Player, error)
}
