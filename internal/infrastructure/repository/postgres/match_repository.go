package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pitch-league/internal/domain/match"
	qb "github.com/riskibarqy/pitch-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	query, args, err := selectMatches().
		Where(qb.Eq("m.league_public_id", leagueID), qb.IsNull("m.deleted_at")).
		OrderBy("m.round", "m.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select matches")
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := selectMatches().
		Where(qb.Eq("m.public_id", matchID), qb.IsNull("m.deleted_at")).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchRowModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, crerr.Wrap(err, "get match by id")
	}

	return row.toDomain(), true, nil
}

// CreateSchedule locks the league row so concurrent generations serialize,
// then inserts every match in one statement.
func (r *MatchRepository) CreateSchedule(ctx context.Context, leagueID string, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	return withTx(ctx, r.db, "create schedule", func(tx *sqlx.Tx) error {
		lockQuery, lockArgs, err := qb.Select("id").From("leagues").
			Where(qb.Eq("public_id", leagueID)).
			Suffix("FOR UPDATE").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock league query: %w", err)
		}
		var leagueRowID int64
		if err := tx.GetContext(ctx, &leagueRowID, lockQuery, lockArgs...); err != nil {
			return crerr.Wrapf(err, "lock league %s", leagueID)
		}

		countQuery, countArgs, err := qb.Select("COUNT(1)").From("matches").
			Where(qb.Eq("league_public_id", leagueID), qb.IsNull("deleted_at")).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build count matches query: %w", err)
		}
		var existing int
		if err := tx.GetContext(ctx, &existing, countQuery, countArgs...); err != nil {
			return crerr.Wrap(err, "count matches")
		}
		if existing > 0 {
			return crerr.Wrapf(match.ErrScheduleExists, "league=%s", leagueID)
		}

		now := utcNow()
		rows := make([]matchInsertModel, 0, len(items))
		for _, item := range items {
			rows = append(rows, matchInsertFromDomain(item, now))
		}
		query, args, err := qb.InsertModels("matches", rows, "")
		if err != nil {
			return fmt.Errorf("build insert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "insert %d matches", len(rows))
		}
		return nil
	})
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query, args, err := qb.Update("matches").
		Set("scheduled_date", nullableString(item.ScheduledDate)).
		Set("scheduled_time", nullableString(item.ScheduledTime)).
		Set("pitch_id", nullableString(item.PitchID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "update match %s", item.ID)
	}
	return nil
}

// RecordResult inserts the result and flips the match to PLAYED atomically.
// The unique match_public_id constraint rejects a second result.
func (r *MatchRepository) RecordResult(ctx context.Context, result match.Result) error {
	return withTx(ctx, r.db, "record result", func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertModel("match_results", matchResultInsertModel{
			MatchPublicID: result.MatchID,
			HomeScore:     result.HomeScore,
			AwayScore:     result.AwayScore,
			RecordedBy:    result.RecordedBy,
			RecordedAt:    result.RecordedAt,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert match result query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return crerr.Wrapf(match.ErrResultExists, "match=%s", result.MatchID)
			}
			return crerr.Wrapf(err, "insert match result %s", result.MatchID)
		}

		statusQuery, statusArgs, err := qb.Update("matches").
			Set("status", match.StatusPlayed).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("public_id", result.MatchID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update match status query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, statusQuery, statusArgs...); err != nil {
			return crerr.Wrapf(err, "mark match %s played", result.MatchID)
		}
		return nil
	})
}

func selectMatches() *qb.SelectBuilder {
	return qb.Select(matchSelectColumns).
		From("matches m").
		LeftJoin("match_results r", "r.match_public_id = m.public_id")
}
