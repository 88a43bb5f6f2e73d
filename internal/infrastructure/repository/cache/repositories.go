package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/pitch-league/internal/domain/league"
	"github.com/riskibarqy/pitch-league/internal/domain/team"
	basecache "github.com/riskibarqy/pitch-league/internal/platform/cache"
)

const (
	leaguePrefix = "league:"
	teamPrefix   = "team:"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context, filter league.Filter) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueListKey(filter), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := leaguePrefix + "id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, leaguePrefix+"list:")
	r.cache.Delete(ctx, leaguePrefix+"id:"+item.ID)
	return nil
}

func (r *LeagueRepository) Update(ctx context.Context, item league.League) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, leaguePrefix+"list:")
	r.cache.Delete(ctx, leaguePrefix+"id:"+item.ID)
	return nil
}

func (r *LeagueRepository) ListMemberships(ctx context.Context, leagueID string) ([]league.Membership, error) {
	v, err := r.cache.GetOrLoad(ctx, membershipKey(leagueID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListMemberships(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]league.Membership(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.Membership)
	return append([]league.Membership(nil), items...), nil
}

func (r *LeagueRepository) AddMembership(ctx context.Context, item league.Membership) error {
	defer r.cache.Delete(ctx, membershipKey(item.LeagueID))
	return r.next.AddMembership(ctx, item)
}

func (r *LeagueRepository) RemoveMembership(ctx context.Context, leagueID, teamID string) error {
	defer r.cache.Delete(ctx, membershipKey(leagueID))
	return r.next.RemoveMembership(ctx, leagueID, teamID)
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

func leagueListKey(filter league.Filter) string {
	return leaguePrefix + "list:" +
		strings.ToLower(strings.TrimSpace(filter.City)) + "|" +
		league.NormalizeStatus(filter.Status) + "|" +
		strings.ToLower(strings.TrimSpace(filter.Search))
}

func membershipKey(leagueID string) string {
	return leaguePrefix + "members:" + leagueID
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context, city string) ([]team.Team, error) {
	key := teamPrefix + "list:" + strings.ToLower(strings.TrimSpace(city))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, city)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

// ListByIDs serves from per-team entries and only loads the misses.
func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	found := make(map[string]team.Team, len(teamIDs))
	missing := make([]string, 0, len(teamIDs))
	for _, id := range teamIDs {
		if v, ok := r.cache.Get(ctx, teamKey(id)); ok {
			if cached, _ := v.(cachedTeamByID); cached.exists {
				found[id] = cached.value
			}
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		items, err := r.next.ListByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			found[item.ID] = item
			r.cache.Set(ctx, teamKey(item.ID), cachedTeamByID{value: item, exists: true})
		}
	}

	out := make([]team.Team, 0, len(found))
	for _, id := range teamIDs {
		if item, ok := found[id]; ok {
			out = append(out, item)
			delete(found, id)
		}
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, teamKey(teamID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix+"list:")
	r.cache.Delete(ctx, teamKey(item.ID))
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

func teamKey(teamID string) string {
	return teamPrefix + "id:" + teamID
}
