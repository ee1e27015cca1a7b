package stats_test

import (
	"testing"

	"github.com/mauv0809/cricscore/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrikeRate(t *testing.T) {
	assert.Equal(t, 125.0, stats.StrikeRate(50, 40))
	assert.Equal(t, 33.33, stats.StrikeRate(1, 3))
	assert.Equal(t, 66.67, stats.StrikeRate(2, 3))
	assert.Equal(t, 0.0, stats.StrikeRate(50, 0))
	assert.Equal(t, 0.0, stats.StrikeRate(0, 12))
}

func TestEconomy(t *testing.T) {
	assert.Equal(t, 6.0, stats.Economy(24, 24))
	// Partial overs are fractional: 10 runs off 8 balls is 7.5 per over.
	assert.Equal(t, 7.5, stats.Economy(10, 8))
	assert.Equal(t, 0.0, stats.Economy(30, 0))
}

func TestRates_ExactTiesRoundToEven(t *testing.T) {
	// 1 run in 8 overs is exactly 0.125 per over.
	assert.Equal(t, 0.12, stats.Economy(1, 48))
	assert.Equal(t, 0.62, stats.Economy(5, 48))
	assert.Equal(t, 0.12, stats.StrikeRate(1, 800))
	assert.Equal(t, 0.38, stats.Economy(3, 48))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.12, stats.Round2(0.125))
	assert.Equal(t, 0.38, stats.Round2(0.375))
	assert.Equal(t, 2.68, stats.Round2(2.675000001))
	// 2.675 is stored just below the tie.
	assert.Equal(t, 2.67, stats.Round2(2.675))
	assert.Equal(t, -1.5, stats.Round2(-1.499))
	assert.Equal(t, 0.0, stats.Round2(0))
}

func TestRatesAreRoundedAndNonNegative(t *testing.T) {
	for runs := 0; runs < 40; runs += 7 {
		for balls := 0; balls < 30; balls += 4 {
			sr := stats.StrikeRate(runs, balls)
			econ := stats.Economy(runs, balls)
			assert.GreaterOrEqual(t, sr, 0.0)
			assert.GreaterOrEqual(t, econ, 0.0)
			assert.InDelta(t, stats.Round2(sr), sr, 1e-9)
			assert.InDelta(t, stats.Round2(econ), econ, 1e-9)
		}
	}
}

func TestEfficiency_BatsmanScenario(t *testing.T) {
	in := stats.RawInputs{Runs: 50, BallsFaced: 40, Fours: 5, Sixes: 2, Catches: 1, DotBalls: 10}

	rec := stats.NewMatchRecord("m1", stats.RoleBatsman, in)

	assert.Equal(t, 125.0, rec.StrikeRate)
	assert.Equal(t, 0.0, rec.Economy)
	assert.InDelta(t, 294.0, rec.Efficiency, 1e-9)
}

func TestEfficiency_RoleWeights(t *testing.T) {
	// One of every counter, with 6 balls faced and bowled so that
	// strike rate and economy are simple.
	in := stats.RawInputs{
		Runs: 6, Wickets: 1, Catches: 1, MissedCatches: 1, MissedCatchesBatsman: 1,
		MissedCatchesBowler: 1, Overthrows: 1, Misfields: 1, BallsFaced: 6, Fours: 1,
		Sixes: 1, BallsBowled: 6, DotBalls: 1, RunsConceded: 6,
	}
	// strike rate 100, economy 6

	tests := []struct {
		role     stats.Role
		expected float64
	}{
		{stats.RoleBatsman, 2*6 + 6 + 8 + 1.2*100 + 8 + 12 - 3 - 4 - 2 - 3 - 2 - 1 - 0.5*6},
		{stats.RoleBowler, 0.8*6 + 2 + 3 + 0.3*100 + 8 + 30 - 5 - 2 - 6 - 5 - 3 - 0.5 - 4*6},
		{stats.RoleAllRounder, 1.5*6 + 5 + 6 + 0.8*100 + 8 + 22 - 4 - 3 - 4 - 4 - 2.5 - 0.8 - 2.5*6},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.InDelta(t, tt.expected, stats.Efficiency(tt.role, in), 1e-9)
		})
	}
}

func TestEfficiency_UnknownRoleIsAllRounder(t *testing.T) {
	in := stats.RawInputs{Runs: 31, Wickets: 2, BallsBowled: 24, RunsConceded: 19}
	assert.Equal(t,
		stats.Efficiency(stats.RoleAllRounder, in),
		stats.Efficiency(stats.Role("Wicket Keeper"), in))
}

func TestEfficiency_IsDeterministic(t *testing.T) {
	in := stats.RawInputs{Runs: 17, BallsFaced: 23, BallsBowled: 13, RunsConceded: 22, DotBalls: 4}
	first := stats.NewMatchRecord("m", stats.RoleBowler, in)
	for i := 0; i < 5; i++ {
		again := stats.NewMatchRecord("m", stats.RoleBowler, first.RawInputs)
		assert.Equal(t, first, again)
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, stats.RoleBatsman, stats.ParseRole("Batsman"))
	assert.Equal(t, stats.RoleBatsman, stats.ParseRole(" batsman "))
	assert.Equal(t, stats.RoleBowler, stats.ParseRole("BOWLER"))
	assert.Equal(t, stats.RoleAllRounder, stats.ParseRole("All-Rounder"))
	assert.Equal(t, stats.RoleAllRounder, stats.ParseRole("all rounder"))
	assert.Equal(t, stats.RoleAllRounder, stats.ParseRole(""))
	assert.Equal(t, stats.RoleAllRounder, stats.ParseRole("keeper"))
}

func TestValidate(t *testing.T) {
	require.NoError(t, stats.RawInputs{Runs: 4}.Validate())

	err := stats.RawInputs{Overthrows: -1}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, stats.ErrNegativeInput)
	assert.Contains(t, err.Error(), "overthrows")
}
