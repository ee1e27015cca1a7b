package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecalculate_Empty(t *testing.T) {
	assert.Equal(t, Aggregate{}, Recalculate(nil))
	assert.Equal(t, Aggregate{}, Recalculate([]MatchRecord{}))
}

func TestRecalculate_SumsAndAverages(t *testing.T) {
	matches := []MatchRecord{
		{RawInputs: RawInputs{Runs: 10, Wickets: 1, Catches: 2, MissedCatches: 1, Overthrows: 1}, Efficiency: 10},
		{RawInputs: RawInputs{Runs: 25, Misfields: 3, MissedCatchesBatsman: 2, MissedCatchesBowler: 1}, Efficiency: 20.005},
		{RawInputs: RawInputs{Wickets: 3}, Efficiency: 0},
	}

	agg := Recalculate(matches)

	assert.Equal(t, 35, agg.TotalRuns)
	assert.Equal(t, 4, agg.TotalWickets)
	assert.Equal(t, 2, agg.TotalCatches)
	assert.Equal(t, 1, agg.TotalMissedCatches)
	assert.Equal(t, 2, agg.TotalMissedCatchesBatsman)
	assert.Equal(t, 1, agg.TotalMissedCatchesBowler)
	assert.Equal(t, 1, agg.TotalOverthrows)
	assert.Equal(t, 3, agg.TotalMisfields)
	assert.Equal(t, 10.0, agg.Efficiency)
}

func TestRecalculate_RoundsMeanEfficiency(t *testing.T) {
	agg := Recalculate([]MatchRecord{{Efficiency: 1}, {Efficiency: 1}, {Efficiency: 2}})
	assert.Equal(t, 1.33, agg.Efficiency)
}

func TestAggregateFields(t *testing.T) {
	fields := Aggregate{Efficiency: 12.5, TotalRuns: 3}.Fields()
	assert.Len(t, fields, 9)
	assert.Equal(t, 12.5, fields["efficiency"])
	assert.Equal(t, 3, fields["total_runs"])
	assert.Equal(t, 0, fields["total_misfields"])
}
