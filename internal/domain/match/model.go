package match

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/riskibarqy/pitch-league/internal/domain/leaguestanding"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusPlayed    = "PLAYED"
)

var (
	ErrScheduleExists = errors.New("schedule already generated")
	ErrResultExists   = errors.New("result already recorded")
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Match is a persisted fixture inside a league.
type Match struct {
	ID            string
	LeagueID      string
	HomeTeamID    string
	AwayTeamID    string
	Round         int
	Status        string
	ScheduledDate string
	ScheduledTime string
	PitchID       string
	Result        *Result
}

// Result is the final score recorded for a match.
type Result struct {
	MatchID    string
	HomeScore  int
	AwayScore  int
	RecordedBy string
	RecordedAt time.Time
}

// Details holds the optional scheduling metadata attached after generation.
type Details struct {
	ScheduledDate *string
	ScheduledTime *string
	PitchID       *string
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.LeagueID == "" {
		return fmt.Errorf("match league id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match teams are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match home and away team must differ")
	}
	if m.Round < 1 {
		return fmt.Errorf("match round must be >= 1")
	}

	return nil
}

func (m Match) IsPlayed() bool {
	return m.Result != nil
}

func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

// StandingResult maps the match into the calculator input. Matches without
// a recorded result stay unplayed.
func (m Match) StandingResult() leaguestanding.Result {
	out := leaguestanding.Result{
		MatchID:    m.ID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
	}
	if m.Result != nil {
		home, away := m.Result.HomeScore, m.Result.AwayScore
		out.HomeScore = &home
		out.AwayScore = &away
	}
	return out
}

func (r Result) Validate() error {
	if r.MatchID == "" {
		return fmt.Errorf("result match id is required")
	}
	if r.HomeScore < 0 || r.AwayScore < 0 {
		return fmt.Errorf("scores must be >= 0")
	}

	return nil
}

// Validate checks the formats of the set fields. An empty string clears the
// stored value and is always accepted.
func (d Details) Validate() error {
	if d.ScheduledDate != nil && *d.ScheduledDate != "" && !datePattern.MatchString(*d.ScheduledDate) {
		return fmt.Errorf("scheduled date must be YYYY-MM-DD")
	}
	if d.ScheduledTime != nil && *d.ScheduledTime != "" && !timePattern.MatchString(*d.ScheduledTime) {
		return fmt.Errorf("scheduled time must be HH:MM")
	}

	return nil
}

// Apply copies the set fields onto the match.
func (d Details) Apply(m Match) Match {
	if d.ScheduledDate != nil {
		m.ScheduledDate = *d.ScheduledDate
	}
	if d.ScheduledTime != nil {
		m.ScheduledTime = *d.ScheduledTime
	}
	if d.PitchID != nil {
		m.PitchID = *d.PitchID
	}
	return m
}

// StandingResults maps a league's matches into calculator input.
func StandingResults(items []Match) []leaguestanding.Result {
	out := make([]leaguestanding.Result, 0, len(items))
	for _, item := range items {
		out = append(out, item.StandingResult())
	}
	return out
}
