package leaguestanding

// UnknownTeamName is shown for tracked teams without a display name.
const UnknownTeamName = "Unknown"

const (
	PointsForWin  = 3
	PointsForDraw = 1
)

// Standing represents a league table row for one team.
type Standing struct {
	TeamID         string
	TeamName       string
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// Result is one recorded (or still pending) match outcome. Nil scores mean
// the match has not been played.
type Result struct {
	MatchID    string
	HomeTeamID string
	AwayTeamID string
	HomeScore  *int
	AwayScore  *int
}

func (r Result) IsPlayed() bool {
	return r.HomeScore != nil && r.AwayScore != nil
}
