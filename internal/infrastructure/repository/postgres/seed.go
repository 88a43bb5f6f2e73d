package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pitch-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/pitch-league/internal/platform/querybuilder"
)

const seedOnConflict = "ON CONFLICT DO NOTHING"

// BootstrapSeed loads the development fixtures into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return withTx(ctx, db, "bootstrap seed", func(tx *sqlx.Tx) error {
		for _, t := range memory.SeedTeams() {
			query, args, err := qb.InsertModel("teams", teamFromDomain(t), seedOnConflict)
			if err != nil {
				return fmt.Errorf("build seed team %s query: %w", t.ID, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed team %s: %w", t.ID, err)
			}
		}

		for _, l := range memory.SeedLeagues() {
			query, args, err := qb.InsertModel("leagues", leagueInsertFromDomain(l), seedOnConflict)
			if err != nil {
				return fmt.Errorf("build seed league %s query: %w", l.ID, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed league %s: %w", l.ID, err)
			}
		}

		for _, m := range memory.SeedMemberships() {
			query, args, err := qb.InsertModel("league_teams", leagueTeamTableModel{
				LeaguePublicID: m.LeagueID,
				TeamPublicID:   m.TeamID,
				JoinedAt:       m.JoinedAt,
			}, seedOnConflict)
			if err != nil {
				return fmt.Errorf("build seed membership %s/%s query: %w", m.LeagueID, m.TeamID, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed membership %s/%s: %w", m.LeagueID, m.TeamID, err)
			}
		}

		return nil
	})
}
