package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/pitch-league/internal/domain/league"
)

type leagueTableModel struct {
	ID        int64        `db:"id" qb:"readonly"`
	PublicID  string       `db:"public_id"`
	Name      string       `db:"name"`
	City      string       `db:"city"`
	Season    string       `db:"season"`
	StartDate sql.NullTime `db:"start_date"`
	OwnerID   string       `db:"owner_id"`
	Status    string       `db:"status"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
	DeletedAt *time.Time   `db:"deleted_at" qb:"readonly"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:        m.PublicID,
		Name:      m.Name,
		City:      m.City,
		Season:    m.Season,
		StartDate: dateString(m.StartDate),
		OwnerID:   m.OwnerID,
		Status:    league.NormalizeStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// leagueInsertModel carries start_date as text so Postgres casts it to DATE.
type leagueInsertModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	City      string    `db:"city"`
	Season    string    `db:"season"`
	StartDate *string   `db:"start_date"`
	OwnerID   string    `db:"owner_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func leagueInsertFromDomain(item league.League) leagueInsertModel {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = utcNow()
	}
	return leagueInsertModel{
		PublicID:  item.ID,
		Name:      item.Name,
		City:      item.City,
		Season:    item.Season,
		StartDate: nullableString(item.StartDate),
		OwnerID:   item.OwnerID,
		Status:    league.NormalizeStatus(item.Status),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

type leagueTeamTableModel struct {
	ID             int64      `db:"id" qb:"readonly"`
	LeaguePublicID string     `db:"league_public_id"`
	TeamPublicID   string     `db:"team_public_id"`
	JoinedAt       time.Time  `db:"joined_at"`
	DeletedAt      *time.Time `db:"deleted_at" qb:"readonly"`
}

func (m leagueTeamTableModel) toDomain() league.Membership {
	return league.Membership{
		LeagueID: m.LeaguePublicID,
		TeamID:   m.TeamPublicID,
		JoinedAt: m.JoinedAt.UTC(),
	}
}
