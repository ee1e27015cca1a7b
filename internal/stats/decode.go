package stats

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// NormalizeCollection turns a stored collection into an id-keyed map. Some
// stores hand back collections with sequential keys as arrays; those are
// keyed by their stringified position. Anything else is an empty collection.
func NormalizeCollection(v any) map[string]any {
	switch c := v.(type) {
	case map[string]any:
		return c
	case []any:
		out := make(map[string]any, len(c))
		for i, item := range c {
			out[strconv.Itoa(i)] = item
		}
		return out
	default:
		return map[string]any{}
	}
}

// SortedKeys returns the keys of a collection in ascending order.
func SortedKeys(c map[string]any) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DecodeMatch converts a stored match value into a MatchRecord. Values
// written as JSON text with single quotes are accepted. ok is false for
// anything that is not an object.
func DecodeMatch(matchID string, v any) (MatchRecord, bool) {
	if s, isString := v.(string); isString {
		var decoded any
		if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", "\"")), &decoded); err != nil {
			return MatchRecord{}, false
		}
		v = decoded
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		return MatchRecord{}, false
	}
	return MatchRecord{
		MatchID:    matchID,
		RawInputs:  RawInputsFromMap(m),
		StrikeRate: Float(m["strike_rate"]),
		Economy:    Float(m["economy"]),
		Efficiency: Float(m["efficiency"]),
	}, true
}

// RawInputsFromMap reads the raw counters from a loosely typed document.
// Missing or unparseable fields are 0.
func RawInputsFromMap(m map[string]any) RawInputs {
	return RawInputs{
		Runs:                 Int(m["runs"]),
		Wickets:              Int(m["wickets"]),
		Catches:              Int(m["catches"]),
		MissedCatches:        Int(m["missed_catches"]),
		MissedCatchesBatsman: Int(m["missed_catches_batsman"]),
		MissedCatchesBowler:  Int(m["missed_catches_bowler"]),
		Overthrows:           Int(m["overthrows"]),
		Misfields:            Int(m["misfields"]),
		BallsFaced:           Int(m["balls_faced"]),
		Fours:                Int(m["fours"]),
		Sixes:                Int(m["sixes"]),
		BallsBowled:          Int(m["balls_bowled"]),
		DotBalls:             Int(m["dot_balls"]),
		RunsConceded:         Int(m["runs_conceded"]),
	}
}

// Document is the stored form of a match record. The id is the document key
// and is not repeated inside it.
func (r MatchRecord) Document() map[string]any {
	return map[string]any{
		"runs":                   r.Runs,
		"wickets":                r.Wickets,
		"catches":                r.Catches,
		"missed_catches":         r.MissedCatches,
		"missed_catches_batsman": r.MissedCatchesBatsman,
		"missed_catches_bowler":  r.MissedCatchesBowler,
		"overthrows":             r.Overthrows,
		"misfields":              r.Misfields,
		"balls_faced":            r.BallsFaced,
		"fours":                  r.Fours,
		"sixes":                  r.Sixes,
		"balls_bowled":           r.BallsBowled,
		"dot_balls":              r.DotBalls,
		"runs_conceded":          r.RunsConceded,
		"strike_rate":            r.StrikeRate,
		"economy":                r.Economy,
		"efficiency":             r.Efficiency,
	}
}

// Int coerces a JSON-ish value to an int, truncating fractions. Unknown
// types are 0.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		return Int(Float(n))
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Int(f)
		}
	}
	return 0
}

// Float coerces a JSON-ish value to a float64. Unknown types are 0.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return Float(f)
	}
	return 0
}
