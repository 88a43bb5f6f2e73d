package leaguestanding

import "sort"

// Calculate folds results into one standing row per distinct team id and
// ranks the table by points, goal difference and goals scored. Teams still
// level on all three keep their input order.
//
// Unplayed results and results that reference untracked teams are skipped.
func Calculate(teamIDs []string, teamNames map[string]string, results []Result) []Standing {
	rows := make([]Standing, 0, len(teamIDs))
	indexByTeam := make(map[string]int, len(teamIDs))
	for _, teamID := range teamIDs {
		if _, exists := indexByTeam[teamID]; exists {
			continue
		}
		name := teamNames[teamID]
		if name == "" {
			name = UnknownTeamName
		}
		indexByTeam[teamID] = len(rows)
		rows = append(rows, Standing{TeamID: teamID, TeamName: name})
	}

	for _, result := range results {
		if !result.IsPlayed() {
			continue
		}
		homeIdx, homeOK := indexByTeam[result.HomeTeamID]
		awayIdx, awayOK := indexByTeam[result.AwayTeamID]
		if !homeOK || !awayOK {
			continue
		}
		applyResult(&rows[homeIdx], &rows[awayIdx], *result.HomeScore, *result.AwayScore)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return ranksAbove(rows[i], rows[j])
	})
	for idx := range rows {
		rows[idx].Position = idx + 1
	}

	return rows
}

func applyResult(home, away *Standing, homeScore, awayScore int) {
	home.Played++
	away.Played++

	home.GoalsFor += homeScore
	home.GoalsAgainst += awayScore
	away.GoalsFor += awayScore
	away.GoalsAgainst += homeScore

	home.GoalDifference = home.GoalsFor - home.GoalsAgainst
	away.GoalDifference = away.GoalsFor - away.GoalsAgainst

	switch {
	case homeScore > awayScore:
		home.Won++
		home.Points += PointsForWin
		away.Lost++
	case homeScore < awayScore:
		away.Won++
		away.Points += PointsForWin
		home.Lost++
	default:
		home.Drawn++
		away.Drawn++
		home.Points += PointsForDraw
		away.Points += PointsForDraw
	}
}

func ranksAbove(a, b Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	return a.GoalsFor > b.GoalsFor
}
