package postgres

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pitch-league/internal/domain/league"
	qb "github.com/riskibarqy/pitch-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context, filter league.Filter) ([]league.League, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if city := strings.TrimSpace(filter.City); city != "" {
		conditions = append(conditions, qb.EqFold("city", city))
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		conditions = append(conditions, qb.Eq("status", league.NormalizeStatus(status)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, qb.Or(qb.Contains("name", search), qb.Contains("city", search)))
	}

	query, args, err := qb.Select("*").From("leagues").
		Where(conditions...).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select leagues")
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, crerr.Wrap(err, "get league by id")
	}

	return row.toDomain(), true, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	query, args, err := qb.InsertModel("leagues", leagueInsertFromDomain(item), "")
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "insert league %s", item.ID)
	}
	return nil
}

func (r *LeagueRepository) Update(ctx context.Context, item league.League) error {
	query, args, err := qb.Update("leagues").
		Set("name", item.Name).
		Set("city", item.City).
		Set("season", item.Season).
		Set("start_date", nullableString(item.StartDate)).
		Set("status", league.NormalizeStatus(item.Status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "update league %s", item.ID)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return crerr.Newf("update league %s: no rows affected", item.ID)
	}
	return nil
}

// ListMemberships returns active memberships in join order.
func (r *LeagueRepository) ListMemberships(ctx context.Context, leagueID string) ([]league.Membership, error) {
	query, args, err := qb.Select("*").From("league_teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league teams query: %w", err)
	}

	var rows []leagueTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select league teams")
	}

	out := make([]league.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) AddMembership(ctx context.Context, item league.Membership) error {
	joinedAt := item.JoinedAt
	if joinedAt.IsZero() {
		joinedAt = utcNow()
	}

	query, args, err := qb.InsertModel("league_teams", leagueTeamTableModel{
		LeaguePublicID: item.LeagueID,
		TeamPublicID:   item.TeamID,
		JoinedAt:       joinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert league team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return crerr.Wrapf(league.ErrAlreadyMember, "league=%s team=%s", item.LeagueID, item.TeamID)
		}
		return crerr.Wrapf(err, "insert league team league=%s team=%s", item.LeagueID, item.TeamID)
	}
	return nil
}

// RemoveMembership soft deletes the active membership row.
func (r *LeagueRepository) RemoveMembership(ctx context.Context, leagueID, teamID string) error {
	query, args, err := qb.Update("league_teams").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete league team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "delete league team league=%s team=%s", leagueID, teamID)
	}
	return nil
}
