package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNegativeInput is returned by RawInputs.Validate.
var ErrNegativeInput = errors.New("match statistics cannot be negative")

var roleWeights = map[Role]weights{
	RoleBatsman: {
		runs: 2.0, fours: 6.0, sixes: 8.0, strikeRate: 1.2,
		catches: 8.0, wickets: 12.0,
		missedCatches: -3.0, missedCatchesBatsman: -4.0, missedCatchesBowler: -2.0,
		overthrows: -3.0, misfields: -2.0, dotBalls: -1.0, economy: -0.5,
	},
	RoleBowler: {
		runs: 0.8, fours: 2.0, sixes: 3.0, strikeRate: 0.3,
		catches: 8.0, wickets: 30.0,
		missedCatches: -5.0, missedCatchesBatsman: -2.0, missedCatchesBowler: -6.0,
		overthrows: -5.0, misfields: -3.0, dotBalls: -0.5, economy: -4.0,
	},
	RoleAllRounder: {
		runs: 1.5, fours: 5.0, sixes: 6.0, strikeRate: 0.8,
		catches: 8.0, wickets: 22.0,
		missedCatches: -4.0, missedCatchesBatsman: -3.0, missedCatchesBowler: -4.0,
		overthrows: -4.0, misfields: -2.5, dotBalls: -0.8, economy: -2.5,
	},
}

// ParseRole maps free-form role text onto a Role. Anything unrecognised is
// an all-rounder.
func ParseRole(s string) Role {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", " ", "", "_", "").Replace(normalized)
	switch normalized {
	case "batsman", "batter":
		return RoleBatsman
	case "bowler":
		return RoleBowler
	default:
		return RoleAllRounder
	}
}

// Round2 rounds the exact binary value of v to two decimal places, ties to
// even.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// StrikeRate is runs per hundred balls faced, 0 when no balls were faced.
func StrikeRate(runs, ballsFaced int) float64 {
	if ballsFaced <= 0 {
		return 0
	}
	return Round2(float64(runs) / float64(ballsFaced) * 100)
}

// Economy is runs conceded per six-ball over. Partial overs count
// fractionally.
func Economy(runsConceded, ballsBowled int) float64 {
	if ballsBowled <= 0 {
		return 0
	}
	overs := float64(ballsBowled) / 6
	return Round2(float64(runsConceded) / overs)
}

// Efficiency is the role-weighted performance score for one match. The
// result is not rounded.
func Efficiency(role Role, in RawInputs) float64 {
	w, ok := roleWeights[role]
	if !ok {
		w = roleWeights[RoleAllRounder]
	}
	sr := StrikeRate(in.Runs, in.BallsFaced)
	econ := Economy(in.RunsConceded, in.BallsBowled)

	return w.runs*float64(in.Runs) +
		w.fours*float64(in.Fours) +
		w.sixes*float64(in.Sixes) +
		w.strikeRate*sr +
		w.catches*float64(in.Catches) +
		w.wickets*float64(in.Wickets) +
		w.missedCatches*float64(in.MissedCatches) +
		w.missedCatchesBatsman*float64(in.MissedCatchesBatsman) +
		w.missedCatchesBowler*float64(in.MissedCatchesBowler) +
		w.overthrows*float64(in.Overthrows) +
		w.misfields*float64(in.Misfields) +
		w.dotBalls*float64(in.DotBalls) +
		w.economy*econ
}

// NewMatchRecord computes the derived fields for a match.
func NewMatchRecord(matchID string, role Role, in RawInputs) MatchRecord {
	return MatchRecord{
		MatchID:    matchID,
		RawInputs:  in,
		StrikeRate: StrikeRate(in.Runs, in.BallsFaced),
		Economy:    Economy(in.RunsConceded, in.BallsBowled),
		Efficiency: Efficiency(role, in),
	}
}

// Validate rejects negative counters.
func (in RawInputs) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"runs", in.Runs},
		{"wickets", in.Wickets},
		{"catches", in.Catches},
		{"missed_catches", in.MissedCatches},
		{"missed_catches_batsman", in.MissedCatchesBatsman},
		{"missed_catches_bowler", in.MissedCatchesBowler},
		{"overthrows", in.Overthrows},
		{"misfields", in.Misfields},
		{"balls_faced", in.BallsFaced},
		{"fours", in.Fours},
		{"sixes", in.Sixes},
		{"balls_bowled", in.BallsBowled},
		{"dot_balls", in.DotBalls},
		{"runs_conceded", in.RunsConceded},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s is %d", ErrNegativeInput, f.name, f.value)
		}
	}
	return nil
}
