package postgres

import (
	"time"

	"github.com/riskibarqy/pitch-league/internal/domain/team"
)

type teamTableModel struct {
	ID        int64      `db:"id" qb:"readonly"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	City      string     `db:"city"`
	CaptainID string     `db:"captain_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" qb:"readonly"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:        m.PublicID,
		Name:      m.Name,
		City:      m.City,
		CaptainID: m.CaptainID,
	}
}

func teamFromDomain(item team.Team) teamTableModel {
	now := utcNow()
	return teamTableModel{
		PublicID:  item.ID,
		Name:      item.Name,
		City:      item.City,
		CaptainID: item.CaptainID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
