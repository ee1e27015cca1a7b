package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/cricscore/internal/squad"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendTeamSelectionFunc func(team string, players []squad.Player, dryRun bool) error

	// Call records
	SendTeamSelectionCalls []TeamSelectionCall
}

// TeamSelectionCall holds the arguments for a call to SendTeamSelection.
type TeamSelectionCall struct {
	Team    string
	Players []squad.Player
	DryRun  bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTeamSelectionCalls = nil
}

func (m *Mock) SendTeamSelection(ctx context.Context, team string, players []squad.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTeamSelectionCalls = append(m.SendTeamSelectionCalls, TeamSelectionCall{Team: team, Players: players, DryRun: dryRun})
	if m.SendTeamSelectionFunc != nil {
		return m.SendTeamSelectionFunc(team, players, dryRun)
	}
	return nil
}

// Calls returns a copy of the recorded SendTeamSelection calls.
func (m *Mock) Calls() []TeamSelectionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TeamSelectionCall(nil), m.SendTeamSelectionCalls...)
}
