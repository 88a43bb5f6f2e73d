package memory

import (
	"time"

	"github.com/riskibarqy/pitch-league/internal/domain/league"
	"github.com/riskibarqy/pitch-league/internal/domain/team"
)

const (
	SeedOwnerID      = "user-organizer"
	SeedLeagueIDOpen = "bdg-sunday-league-2026"
)

var seedCreatedAt = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:        SeedLeagueIDOpen,
			Name:      "Bandung Sunday League",
			City:      "Bandung",
			Season:    "2026",
			StartDate: "2026-02-01",
			OwnerID:   SeedOwnerID,
			Status:    league.StatusDraft,
			CreatedAt: seedCreatedAt,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-dago-fc", Name: "Dago FC", City: "Bandung", CaptainID: "user-captain-dago"},
		{ID: "team-braga-united", Name: "Braga United", City: "Bandung", CaptainID: "user-captain-braga"},
		{ID: "team-cihampelas", Name: "Cihampelas Rovers", City: "Bandung", CaptainID: "user-captain-cihampelas"},
		{ID: "team-kemang-city", Name: "Kemang City", City: "Jakarta", CaptainID: "user-captain-kemang"},
	}
}

func SeedMemberships() []league.Membership {
	return []league.Membership{
		{LeagueID: SeedLeagueIDOpen, TeamID: "team-dago-fc", JoinedAt: seedCreatedAt.Add(time.Hour)},
		{LeagueID: SeedLeagueIDOpen, TeamID: "team-braga-united", JoinedAt: seedCreatedAt.Add(2 * time.Hour)},
	}
}
