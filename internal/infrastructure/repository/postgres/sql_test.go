package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/riskibarqy/pitch-league/internal/domain/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(sql.ErrNoRows))
	assert.True(t, isNotFound(crerr.Wrap(sql.ErrNoRows, "get league")))
	assert.False(t, isNotFound(fmt.Errorf("pq: relation leagues does not exist")))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := crerr.Wrap(&pq.Error{Code: "23505"}, "insert league team")
		assert.True(t, isUniqueViolation(err))
	})

	t.Run("ignores other codes", func(t *testing.T) {
		assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
		assert.False(t, isUniqueViolation(fmt.Errorf("duplicate key")))
	})
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString("   "))

	got := nullableString(" pitch-1 ")
	require.NotNil(t, got)
	assert.Equal(t, "pitch-1", *got)
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "", dateString(sql.NullTime{}))
	assert.Equal(t, "2026-02-01", dateString(sql.NullTime{
		Time:  time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Valid: true,
	}))
}

func TestMatchRowModel_ToDomain(t *testing.T) {
	row := matchRowModel{
		PublicID:         "m1",
		LeaguePublicID:   "l1",
		HomeTeamPublicID: "a",
		AwayTeamPublicID: "b",
		Round:            2,
		Status:           match.StatusScheduled,
	}

	item := row.toDomain()
	assert.Nil(t, item.Result)
	assert.Equal(t, 2, item.Round)
	assert.Equal(t, "", item.PitchID)

	row.Status = match.StatusPlayed
	row.HomeScore = sql.NullInt64{Int64: 3, Valid: true}
	row.AwayScore = sql.NullInt64{Int64: 1, Valid: true}
	row.RecordedBy = sql.NullString{String: "captain", Valid: true}

	item = row.toDomain()
	require.NotNil(t, item.Result)
	assert.Equal(t, "m1", item.Result.MatchID)
	assert.Equal(t, 3, item.Result.HomeScore)
	assert.Equal(t, 1, item.Result.AwayScore)
	assert.Equal(t, "captain", item.Result.RecordedBy)
}

func TestMatchInsertFromDomain_DefaultsStatus(t *testing.T) {
	now := time.Now().UTC()
	row := matchInsertFromDomain(match.Match{ID: "m1", LeagueID: "l1", HomeTeamID: "a", AwayTeamID: "b", Round: 1}, now)

	assert.Equal(t, match.StatusScheduled, row.Status)
	assert.Nil(t, row.ScheduledDate)
	assert.Nil(t, row.PitchID)
	assert.Equal(t, now, row.CreatedAt)
}
