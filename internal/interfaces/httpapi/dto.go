package httpapi

import (
	"time"

	"github.com/riskibarqy/pitch-league/internal/domain/league"
	"github.com/riskibarqy/pitch-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/pitch-league/internal/domain/match"
	"github.com/riskibarqy/pitch-league/internal/domain/team"
	"github.com/riskibarqy/pitch-league/internal/usecase"
)

type createLeagueRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	City      string `json:"city" validate:"required,max=100"`
	Season    string `json:"season" validate:"omitempty,max=50"`
	StartDate string `json:"startDate" validate:"omitempty,isodate"`
}

type updateLeagueRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	City      *string `json:"city" validate:"omitempty,min=1,max=100"`
	Season    *string `json:"season" validate:"omitempty,max=50"`
	StartDate *string `json:"startDate" validate:"omitempty,isodate"`
}

type addLeagueTeamRequest struct {
	TeamID string `json:"teamId" validate:"required"`
}

type createTeamRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	City string `json:"city" validate:"omitempty,max=100"`
}

type recordResultRequest struct {
	HomeScore *int `json:"homeScore" validate:"required,min=0"`
	AwayScore *int `json:"awayScore" validate:"required,min=0"`
}

type updateMatchRequest struct {
	ScheduledDate *string `json:"scheduledDate" validate:"omitempty,isodate"`
	ScheduledTime *string `json:"scheduledTime" validate:"omitempty,clock"`
	PitchID       *string `json:"pitchId" validate:"omitempty,max=100"`
}

type leagueDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Season       string `json:"season,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	OwnerID      string `json:"ownerId"`
	Status       string `json:"status"`
	CreatedAtUTC string `json:"createdAtUtc,omitempty"`
}

type leagueSummaryDTO struct {
	leagueDTO
	TeamCount int `json:"teamCount"`
}

type leagueDetailDTO struct {
	leagueDTO
	Teams []leagueTeamDTO `json:"teams"`
}

type leagueTeamDTO struct {
	teamDTO
	JoinedAtUTC string `json:"joinedAtUtc,omitempty"`
}

type membershipDTO struct {
	LeagueID    string `json:"leagueId"`
	TeamID      string `json:"teamId"`
	JoinedAtUTC string `json:"joinedAtUtc"`
}

type lockLeagueDTO struct {
	League  leagueDTO  `json:"league"`
	Matches []matchDTO `json:"matches"`
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city,omitempty"`
	CaptainID string `json:"captainId"`
}

type matchDTO struct {
	ID            string          `json:"id"`
	LeagueID      string          `json:"leagueId"`
	HomeTeamID    string          `json:"homeTeamId"`
	AwayTeamID    string          `json:"awayTeamId"`
	HomeTeam      *teamDTO        `json:"homeTeam,omitempty"`
	AwayTeam      *teamDTO        `json:"awayTeam,omitempty"`
	Round         int             `json:"round"`
	Status        string          `json:"status"`
	ScheduledDate string          `json:"scheduledDate,omitempty"`
	ScheduledTime string          `json:"scheduledTime,omitempty"`
	PitchID       string          `json:"pitchId,omitempty"`
	Result        *matchResultDTO `json:"result,omitempty"`
}

type matchResultDTO struct {
	MatchID       string `json:"matchId"`
	HomeScore     int    `json:"homeScore"`
	AwayScore     int    `json:"awayScore"`
	RecordedBy    string `json:"recordedBy"`
	RecordedAtUTC string `json:"recordedAtUtc"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type warmStandingsDTO struct {
	SuccessCount int                      `json:"successCount"`
	FailedCount  int                      `json:"failedCount"`
	Leagues      []warmStandingsLeagueDTO `json:"leagues"`
}

type warmStandingsLeagueDTO struct {
	LeagueID   string `json:"leagueId"`
	Teams      int    `json:"teams"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:           v.ID,
		Name:         v.Name,
		City:         v.City,
		Season:       v.Season,
		StartDate:    v.StartDate,
		OwnerID:      v.OwnerID,
		Status:       league.NormalizeStatus(v.Status),
		CreatedAtUTC: formatTime(v.CreatedAt),
	}
}

func leagueDetailToDTO(v usecase.LeagueDetails) leagueDetailDTO {
	teams := make([]leagueTeamDTO, 0, len(v.Teams))
	for _, item := range v.Teams {
		teams = append(teams, leagueTeamDTO{
			teamDTO:     teamToDTO(item.Team),
			JoinedAtUTC: formatTime(item.JoinedAt),
		})
	}
	return leagueDetailDTO{leagueDTO: leagueToDTO(v.League), Teams: teams}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		City:      v.City,
		CaptainID: v.CaptainID,
	}
}

func matchToDTO(v match.Match) matchDTO {
	out := matchDTO{
		ID:            v.ID,
		LeagueID:      v.LeagueID,
		HomeTeamID:    v.HomeTeamID,
		AwayTeamID:    v.AwayTeamID,
		Round:         v.Round,
		Status:        v.Status,
		ScheduledDate: v.ScheduledDate,
		ScheduledTime: v.ScheduledTime,
		PitchID:       v.PitchID,
	}
	if v.Result != nil {
		result := matchResultToDTO(*v.Result)
		out.Result = &result
	}
	return out
}

func scheduledMatchToDTO(v usecase.ScheduledMatch) matchDTO {
	out := matchToDTO(v.Match)
	if v.HomeTeam != nil {
		home := teamToDTO(*v.HomeTeam)
		out.HomeTeam = &home
	}
	if v.AwayTeam != nil {
		away := teamToDTO(*v.AwayTeam)
		out.AwayTeam = &away
	}
	return out
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func matchResultToDTO(v match.Result) matchResultDTO {
	return matchResultDTO{
		MatchID:       v.MatchID,
		HomeScore:     v.HomeScore,
		AwayScore:     v.AwayScore,
		RecordedBy:    v.RecordedBy,
		RecordedAtUTC: formatTime(v.RecordedAt),
	}
}

func standingToDTO(v leaguestanding.Standing) standingDTO {
	return standingDTO{
		Position:       v.Position,
		TeamID:         v.TeamID,
		TeamName:       v.TeamName,
		Played:         v.Played,
		Won:            v.Won,
		Drawn:          v.Drawn,
		Lost:           v.Lost,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
