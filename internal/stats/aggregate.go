package stats

// Recalculate rebuilds a player's aggregate from the complete set of match
// records. Efficiency is the mean of match efficiencies rounded to two
// decimals, or 0 when there are no matches.
func Recalculate(matches []MatchRecord) Aggregate {
	var agg Aggregate
	if len(matches) == 0 {
		return agg
	}

	var totalEfficiency float64
	for _, m := range matches {
		totalEfficiency += m.Efficiency
		agg.TotalRuns += m.Runs
		agg.TotalWickets += m.Wickets
		agg.TotalCatches += m.Catches
		agg.TotalMissedCatches += m.MissedCatches
		agg.TotalMissedCatchesBatsman += m.MissedCatchesBatsman
		agg.TotalMissedCatchesBowler += m.MissedCatchesBowler
		agg.TotalOverthrows += m.Overthrows
		agg.TotalMisfields += m.Misfields
	}
	agg.Efficiency = Round2(totalEfficiency / float64(len(matches)))
	return agg
}

// Fields returns the aggregate as a partial document for a shallow merge
// into the stored player.
func (a Aggregate) Fields() map[string]any {
	return map[string]any{
		"efficiency":                   a.Efficiency,
		"total_runs":                   a.TotalRuns,
		"total_wickets":                a.TotalWickets,
		"total_catches":                a.TotalCatches,
		"total_missed_catches":         a.TotalMissedCatches,
		"total_missed_catches_batsman": a.TotalMissedCatchesBatsman,
		"total_missed_catches_bowler":  a.TotalMissedCatchesBowler,
		"total_overthrows":             a.TotalOverthrows,
		"total_misfields":              a.TotalMisfields,
	}
}
