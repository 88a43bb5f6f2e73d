package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/pitch-league/internal/domain/match"
)

const matchSelectColumns = "m.public_id, m.league_public_id, m.home_team_public_id, m.away_team_public_id, " +
	"m.round, m.status, m.scheduled_date, m.scheduled_time, m.pitch_id, " +
	"r.home_score, r.away_score, r.recorded_by, r.recorded_at"

// matchRowModel is a match joined with its optional result.
type matchRowModel struct {
	PublicID         string         `db:"public_id"`
	LeaguePublicID   string         `db:"league_public_id"`
	HomeTeamPublicID string         `db:"home_team_public_id"`
	AwayTeamPublicID string         `db:"away_team_public_id"`
	Round            int            `db:"round"`
	Status           string         `db:"status"`
	ScheduledDate    sql.NullTime   `db:"scheduled_date"`
	ScheduledTime    sql.NullString `db:"scheduled_time"`
	PitchID          sql.NullString `db:"pitch_id"`
	HomeScore        sql.NullInt64  `db:"home_score"`
	AwayScore        sql.NullInt64  `db:"away_score"`
	RecordedBy       sql.NullString `db:"recorded_by"`
	RecordedAt       sql.NullTime   `db:"recorded_at"`
}

func (m matchRowModel) toDomain() match.Match {
	item := match.Match{
		ID:            m.PublicID,
		LeagueID:      m.LeaguePublicID,
		HomeTeamID:    m.HomeTeamPublicID,
		AwayTeamID:    m.AwayTeamPublicID,
		Round:         m.Round,
		Status:        m.Status,
		ScheduledDate: dateString(m.ScheduledDate),
		ScheduledTime: m.ScheduledTime.String,
		PitchID:       m.PitchID.String,
	}
	if m.HomeScore.Valid && m.AwayScore.Valid {
		item.Result = &match.Result{
			MatchID:    m.PublicID,
			HomeScore:  int(m.HomeScore.Int64),
			AwayScore:  int(m.AwayScore.Int64),
			RecordedBy: m.RecordedBy.String,
			RecordedAt: m.RecordedAt.Time.UTC(),
		}
	}
	return item
}

type matchInsertModel struct {
	PublicID         string    `db:"public_id"`
	LeaguePublicID   string    `db:"league_public_id"`
	HomeTeamPublicID string    `db:"home_team_public_id"`
	AwayTeamPublicID string    `db:"away_team_public_id"`
	Round            int       `db:"round"`
	Status           string    `db:"status"`
	ScheduledDate    *string   `db:"scheduled_date"`
	ScheduledTime    *string   `db:"scheduled_time"`
	PitchID          *string   `db:"pitch_id"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func matchInsertFromDomain(item match.Match, now time.Time) matchInsertModel {
	status := item.Status
	if status == "" {
		status = match.StatusScheduled
	}
	return matchInsertModel{
		PublicID:         item.ID,
		LeaguePublicID:   item.LeagueID,
		HomeTeamPublicID: item.HomeTeamID,
		AwayTeamPublicID: item.AwayTeamID,
		Round:            item.Round,
		Status:           status,
		ScheduledDate:    nullableString(item.ScheduledDate),
		ScheduledTime:    nullableString(item.ScheduledTime),
		PitchID:          nullableString(item.PitchID),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

type matchResultInsertModel struct {
	MatchPublicID string    `db:"match_public_id"`
	HomeScore     int       `db:"home_score"`
	AwayScore     int       `db:"away_score"`
	RecordedBy    string    `db:"recorded_by"`
	RecordedAt    time.Time `db:"recorded_at"`
}
