package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/pitch-league/internal/domain/match"
)

type MatchRepository struct {
	mu       sync.RWMutex
	items    map[string]match.Match
	byLeague map[string][]string
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		items:    make(map[string]match.Match),
		byLeague: make(map[string][]string),
	}
}

func (r *MatchRepository) ListByLeague(_ context.Context, leagueID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byLeague[leagueID]
	out := make([]match.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneMatch(r.items[id]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Round < out[j].Round
	})

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) CreateSchedule(_ context.Context, leagueID string, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.byLeague[leagueID]) > 0 {
		return fmt.Errorf("%w: league=%s", match.ErrScheduleExists, leagueID)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Status == "" {
			item.Status = match.StatusScheduled
		}
		r.items[item.ID] = cloneMatch(item)
		ids = append(ids, item.ID)
	}
	r.byLeague[leagueID] = ids
	return nil
}

// Update changes scheduling details only.
func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("match %s not found", item.ID)
	}
	current.ScheduledDate = item.ScheduledDate
	current.ScheduledTime = item.ScheduledTime
	current.PitchID = item.PitchID
	r.items[item.ID] = current
	return nil
}

func (r *MatchRepository) RecordResult(_ context.Context, result match.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[result.MatchID]
	if !ok {
		return fmt.Errorf("match %s not found", result.MatchID)
	}
	if current.Result != nil {
		return fmt.Errorf("%w: match=%s", match.ErrResultExists, result.MatchID)
	}

	recorded := result
	current.Result = &recorded
	current.Status = match.StatusPlayed
	r.items[result.MatchID] = current
	return nil
}

func cloneMatch(item match.Match) match.Match {
	if item.Result != nil {
		result := *item.Result
		item.Result = &result
	}
	return item
}
