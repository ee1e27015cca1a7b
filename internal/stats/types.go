package stats

// Role is a player's playing role. It selects the efficiency weights.
type Role string

const (
	RoleBatsman    Role = "Batsman"
	RoleBowler     Role = "Bowler"
	RoleAllRounder Role = "AllRounder"
)

// RawInputs holds the counters a coach records for one player in one match.
type RawInputs struct {
	Runs                 int `json:"runs"`
	Wickets              int `json:"wickets"`
	Catches              int `json:"catches"`
	MissedCatches        int `json:"missed_catches"`
	MissedCatchesBatsman int `json:"missed_catches_batsman"`
	MissedCatchesBowler  int `json:"missed_catches_bowler"`
	Overthrows           int `json:"overthrows"`
	Misfields            int `json:"misfields"`
	BallsFaced           int `json:"balls_faced"`
	Fours                int `json:"fours"`
	Sixes                int `json:"sixes"`
	BallsBowled          int `json:"balls_bowled"`
	DotBalls             int `json:"dot_balls"`
	RunsConceded         int `json:"runs_conceded"`
}

// MatchRecord is one player's statistics for one match, raw and derived.
// The derived fields are computed once when the record is written.
type MatchRecord struct {
	MatchID string `json:"match_id"`
	RawInputs
	StrikeRate float64 `json:"strike_rate"`
	Economy    float64 `json:"economy"`
	Efficiency float64 `json:"efficiency"`
}

// Aggregate is a player's running totals across the full match history.
type Aggregate struct {
	Efficiency                float64 `json:"efficiency"`
	TotalRuns                 int     `json:"total_runs"`
	TotalWickets              int     `json:"total_wickets"`
	TotalCatches              int     `json:"total_catches"`
	TotalMissedCatches        int     `json:"total_missed_catches"`
	TotalMissedCatchesBatsman int     `json:"total_missed_catches_batsman"`
	TotalMissedCatchesBowler  int     `json:"total_missed_catches_bowler"`
	TotalOverthrows           int     `json:"total_overthrows"`
	TotalMisfields            int     `json:"total_misfields"`
}

// weights are the efficiency coefficients for one role. Penalty terms carry
// their sign.
type weights struct {
	runs                 float64
	fours                float64
	sixes                float64
	strikeRate           float64
	catches              float64
	wickets              float64
	missedCatches        float64
	missedCatchesBatsman float64
	missedCatchesBowler  float64
	overthrows           float64
	misfields            float64
	dotBalls             float64
	economy              float64
}
