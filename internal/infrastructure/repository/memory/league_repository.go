package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/pitch-league/internal/domain/league"
)

type LeagueRepository struct {
	mu          sync.RWMutex
	items       map[string]league.League
	orders      []string
	memberships map[string][]league.Membership
}

func NewLeagueRepository(leagues []league.League, memberships []league.Membership) *LeagueRepository {
	r := &LeagueRepository{
		items:       make(map[string]league.League, len(leagues)),
		orders:      make([]string, 0, len(leagues)),
		memberships: make(map[string][]league.Membership),
	}

	for _, l := range leagues {
		r.items[l.ID] = l
		r.orders = append(r.orders, l.ID)
	}
	for _, m := range memberships {
		r.memberships[m.LeagueID] = append(r.memberships[m.LeagueID], m)
	}

	return r
}

// List returns matching leagues newest first.
func (r *LeagueRepository) List(_ context.Context, filter league.Filter) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		item := r.items[r.orders[i]]
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return l, true, nil
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("league %s already exists", item.ID)
	}
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *LeagueRepository) Update(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("league %s not found", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *LeagueRepository) ListMemberships(_ context.Context, leagueID string) ([]league.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]league.Membership(nil), r.memberships[leagueID]...), nil
}

func (r *LeagueRepository) AddMembership(_ context.Context, item league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.memberships[item.LeagueID] {
		if m.TeamID == item.TeamID {
			return fmt.Errorf("%w: league=%s team=%s", league.ErrAlreadyMember, item.LeagueID, item.TeamID)
		}
	}
	r.memberships[item.LeagueID] = append(r.memberships[item.LeagueID], item)
	return nil
}

func (r *LeagueRepository) RemoveMembership(_ context.Context, leagueID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.memberships[leagueID]
	for i, m := range items {
		if m.TeamID == teamID {
			r.memberships[leagueID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}
