package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pitch-league/internal/domain/league"
	"github.com/riskibarqy/pitch-league/internal/domain/match"
	"github.com/riskibarqy/pitch-league/internal/domain/team"
)

type sequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

type stubLeagueRepository struct {
	mu          sync.Mutex
	byID        map[string]league.League
	order       []string
	memberships map[string][]league.Membership
	listErr     error
}

func newStubLeagueRepository(items ...league.League) *stubLeagueRepository {
	repo := &stubLeagueRepository{
		byID:        make(map[string]league.League),
		memberships: make(map[string][]league.Membership),
	}
	for _, item := range items {
		repo.byID[item.ID] = item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

func (r *stubLeagueRepository) List(_ context.Context, filter league.Filter) ([]league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]league.League, 0, len(r.order))
	for _, leagueID := range r.order {
		if item := r.byID[leagueID]; filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubLeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[leagueID]
	return item, ok, nil
}

func (r *stubLeagueRepository) Create(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *stubLeagueRepository) Update(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	return nil
}

func (r *stubLeagueRepository) ListMemberships(_ context.Context, leagueID string) ([]league.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]league.Membership, len(r.memberships[leagueID]))
	copy(out, r.memberships[leagueID])
	return out, nil
}

func (r *stubLeagueRepository) AddMembership(_ context.Context, item league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memberships[item.LeagueID] = append(r.memberships[item.LeagueID], item)
	return nil
}

func (r *stubLeagueRepository) RemoveMembership(_ context.Context, leagueID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.memberships[leagueID][:0]
	for _, item := range r.memberships[leagueID] {
		if item.TeamID != teamID {
			kept = append(kept, item)
		}
	}
	r.memberships[leagueID] = kept
	return nil
}

type stubTeamRepository struct {
	byID map[string]team.Team
}

func newStubTeamRepository(items ...team.Team) *stubTeamRepository {
	repo := &stubTeamRepository{byID: make(map[string]team.Team)}
	for _, item := range items {
		repo.byID[item.ID] = item
	}
	return repo
}

func (r *stubTeamRepository) List(_ context.Context, city string) ([]team.Team, error) {
	out := make([]team.Team, 0, len(r.byID))
	for _, item := range r.byID {
		if city == "" || item.City == city {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubTeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	out := make([]team.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if item, ok := r.byID[teamID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	item, ok := r.byID[teamID]
	return item, ok, nil
}

func (r *stubTeamRepository) Create(_ context.Context, item team.Team) error {
	r.byID[item.ID] = item
	return nil
}

type stubMatchRepository struct {
	mu       sync.Mutex
	byLeague map[string][]match.Match
	loads    int
}

func newStubMatchRepository() *stubMatchRepository {
	return &stubMatchRepository{byLeague: make(map[string][]match.Match)}
}

func (r *stubMatchRepository) ListByLeague(_ context.Context, leagueID string) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	out := make([]match.Match, len(r.byLeague[leagueID]))
	copy(out, r.byLeague[leagueID])
	return out, nil
}

func (r *stubMatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, items := range r.byLeague {
		for _, item := range items {
			if item.ID == matchID {
				return item, true, nil
			}
		}
	}
	return match.Match{}, false, nil
}

func (r *stubMatchRepository) CreateSchedule(_ context.Context, leagueID string, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.byLeague[leagueID]) > 0 {
		return match.ErrScheduleExists
	}
	r.byLeague[leagueID] = append([]match.Match(nil), items...)
	return nil
}

func (r *stubMatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.byLeague[item.LeagueID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return nil
		}
	}
	return fmt.Errorf("match %s not found", item.ID)
}

func (r *stubMatchRepository) RecordResult(_ context.Context, result match.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, items := range r.byLeague {
		for i := range items {
			if items[i].ID != result.MatchID {
				continue
			}
			if items[i].Result != nil {
				return match.ErrResultExists
			}
			stored := result
			items[i].Result = &stored
			items[i].Status = match.StatusPlayed
			return nil
		}
	}
	return fmt.Errorf("match %s not found", result.MatchID)
}

func (r *stubMatchRepository) loadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}

type recordingInvalidator struct {
	mu      sync.Mutex
	leagues []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, leagueID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leagues = append(r.leagues, leagueID)
}
