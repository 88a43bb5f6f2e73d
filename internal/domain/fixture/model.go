package fixture

// Fixture is one scheduled pairing inside a round-robin schedule.
type Fixture struct {
	HomeTeamID string
	AwayTeamID string
	Round      int
}

// RoundCount returns how many rounds a single round-robin over teamCount
// teams spans. Odd counts need an extra round for the byes.
func RoundCount(teamCount int) int {
	if teamCount < 2 {
		return 0
	}
	if teamCount%2 != 0 {
		return teamCount
	}
	return teamCount - 1
}
