package match

import "context"

// Repository exposes match and result persistence.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// CreateSchedule stores a full schedule. It fails with ErrScheduleExists
	// when the league already has matches.
	CreateSchedule(ctx context.Context, leagueID string, items []Match) error
	Update(ctx context.Context, item Match) error
	// RecordResult stores the result and marks the match played. It fails
	// with ErrResultExists when a result is already present.
	RecordResult(ctx context.Context, result Result) error
}
