package squad

import (
	"cmp"
	"context"
	"slices"
)

// TeamSize is the number of players in a selected side.
const TeamSize = 11

// PlayerLister is the read side of PlayerStore used for selection.
type PlayerLister interface {
	ListPlayers(ctx context.Context, coachID string) ([]Player, error)
}

// Ranker picks a side from persisted player aggregates.
type Ranker struct {
	players PlayerLister
}

// NewRanker creates a Ranker reading from players.
func NewRanker(players PlayerLister) *Ranker {
	return &Ranker{players: players}
}

// SelectBestEleven returns the coach's top players by efficiency, best
// first. A coach without players gets an empty selection.
func (r *Ranker) SelectBestEleven(ctx context.Context, coachID string) ([]Player, error) {
	players, err := r.players.ListPlayers(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return RankByEfficiency(players, TeamSize), nil
}

// RankByEfficiency sorts a copy of players by descending efficiency and
// keeps at most limit of them. Equal efficiencies keep their input order.
func RankByEfficiency(players []Player, limit int) []Player {
	ranked := slices.Clone(players)
	if ranked == nil {
		ranked = []Player{}
	}
	slices.SortStableFunc(ranked, func(a, b Player) int {
		return cmp.Compare(b.Efficiency, a.Efficiency)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
