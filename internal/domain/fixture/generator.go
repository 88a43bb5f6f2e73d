package fixture

// byeSlot marks the padding slot added for odd team counts. Slots hold
// indexes into the caller's team list, so no team id can collide with it.
const byeSlot = -1

// GenerateRoundRobin builds a single round-robin schedule with the circle
// method: slot 0 stays fixed while the remaining slots rotate one step per
// round. Home and away swap on even rounds.
//
// Fewer than two teams yields an empty schedule. Duplicate ids are not
// filtered.
func GenerateRoundRobin(teamIDs []string) []Fixture {
	if len(teamIDs) < 2 {
		return []Fixture{}
	}

	slots := make([]int, 0, len(teamIDs)+1)
	for idx := range teamIDs {
		slots = append(slots, idx)
	}
	if len(slots)%2 != 0 {
		slots = append(slots, byeSlot)
	}

	n := len(slots)
	out := make([]Fixture, 0, len(teamIDs)*(len(teamIDs)-1)/2)
	for round := 1; round < n; round++ {
		for i := 0; i < n/2; i++ {
			home, away := slots[i], slots[n-1-i]
			if home == byeSlot || away == byeSlot {
				continue
			}
			if round%2 == 0 {
				home, away = away, home
			}
			out = append(out, Fixture{
				HomeTeamID: teamIDs[home],
				AwayTeamID: teamIDs[away],
				Round:      round,
			})
		}

		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	return out
}
