package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pitch-league/internal/domain/fixture"
	"github.com/riskibarqy/pitch-league/internal/domain/league"
	"github.com/riskibarqy/pitch-league/internal/domain/match"
	"github.com/riskibarqy/pitch-league/internal/domain/team"
	idgen "github.com/riskibarqy/pitch-league/internal/platform/id"
	"github.com/riskibarqy/pitch-league/internal/platform/logging"
)

type StandingsInvalidator interface {
	Invalidate(ctx context.Context, leagueID string)
}

// ScheduledMatch is a match with both sides resolved for display.
type ScheduledMatch struct {
	Match    match.Match
	HomeTeam *team.Team
	AwayTeam *team.Team
}

type ScheduleService struct {
	leagueRepo  league.Repository
	teamRepo    team.Repository
	matchRepo   match.Repository
	invalidator StandingsInvalidator
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewScheduleService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	invalidator StandingsInvalidator,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		invalidator: invalidator,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateSchedule builds the single round-robin schedule of an active league.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, userID, leagueID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GenerateSchedule")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if !item.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: only the league owner can generate the schedule", ErrForbidden)
	}
	if league.NormalizeStatus(item.Status) != league.StatusActive {
		return nil, fmt.Errorf("%w: league=%s status=%s", league.ErrLeagueNotLocked, item.ID, item.Status)
	}

	memberships, err := s.leagueRepo.ListMemberships(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	return s.generate(ctx, item, memberships)
}

func (s *ScheduleService) generate(ctx context.Context, item league.League, memberships []league.Membership) ([]match.Match, error) {
	existing, err := s.matchRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: league=%s", match.ErrScheduleExists, item.ID)
	}
	if len(memberships) < league.MinTeamsToLock {
		return nil, fmt.Errorf("%w: league=%s teams=%d", league.ErrInsufficientTeams, item.ID, len(memberships))
	}

	fixtures := fixture.GenerateRoundRobin(membershipTeamIDs(memberships))
	matches := make([]match.Match, 0, len(fixtures))
	for _, f := range fixtures {
		matchID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate match id: %w", err)
		}
		built := match.Match{
			ID:         matchID,
			LeagueID:   item.ID,
			HomeTeamID: f.HomeTeamID,
			AwayTeamID: f.AwayTeamID,
			Round:      f.Round,
			Status:     match.StatusScheduled,
		}
		if err := built.Validate(); err != nil {
			return nil, fmt.Errorf("build match round=%d: %w", f.Round, err)
		}
		matches = append(matches, built)
	}

	if err := s.matchRepo.CreateSchedule(ctx, item.ID, matches); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.logger.InfoContext(ctx, "schedule generated",
		"league_id", item.ID,
		"teams", len(memberships),
		"rounds", fixture.RoundCount(len(memberships)),
		"matches", len(matches),
	)
	return matches, nil
}

func (s *ScheduleService) ListMatches(ctx context.Context, leagueID string) ([]ScheduledMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListMatches")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	items, err := s.matchRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Round < items[j].Round
	})

	teamsByID, err := s.teamsByID(ctx, items)
	if err != nil {
		return nil, err
	}

	out := make([]ScheduledMatch, 0, len(items))
	for _, item := range items {
		row := ScheduledMatch{Match: item}
		if home, ok := teamsByID[item.HomeTeamID]; ok {
			row.HomeTeam = &home
		}
		if away, ok := teamsByID[item.AwayTeamID]; ok {
			row.AwayTeam = &away
		}
		out = append(out, row)
	}

	return out, nil
}

// RecordResult stores the final score once. The league owner and both
// captains are allowed to report it.
func (s *ScheduleService) RecordResult(ctx context.Context, userID, matchID string, homeScore, awayScore int) (match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.RecordResult")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return match.Result{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	result := match.Result{
		MatchID:    strings.TrimSpace(matchID),
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		RecordedBy: userID,
		RecordedAt: s.now().UTC(),
	}
	if err := result.Validate(); err != nil {
		return match.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, err := s.getMatch(ctx, result.MatchID)
	if err != nil {
		return match.Result{}, err
	}
	if item.IsPlayed() {
		return match.Result{}, fmt.Errorf("%w: match=%s", match.ErrResultExists, item.ID)
	}

	owner, err := s.getMatchLeague(ctx, item)
	if err != nil {
		return match.Result{}, err
	}
	if !owner.IsOwnedBy(userID) {
		allowed, err := s.isCaptainOf(ctx, userID, item)
		if err != nil {
			return match.Result{}, err
		}
		if !allowed {
			return match.Result{}, fmt.Errorf("%w: only the league owner or team captains can record results", ErrForbidden)
		}
	}

	if err := s.matchRepo.RecordResult(ctx, result); err != nil {
		if errors.Is(err, match.ErrResultExists) {
			return match.Result{}, err
		}
		return match.Result{}, fmt.Errorf("record result: %w", err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, item.LeagueID)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"league_id", item.LeagueID,
		"match_id", item.ID,
		"home_score", homeScore,
		"away_score", awayScore,
	)
	return result, nil
}

// UpdateMatch attaches date, kick-off time and pitch to a match.
func (s *ScheduleService) UpdateMatch(ctx context.Context, userID, matchID string, details match.Details) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.UpdateMatch")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return match.Match{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if err := details.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	owner, err := s.getMatchLeague(ctx, item)
	if err != nil {
		return match.Match{}, err
	}
	if !owner.IsOwnedBy(userID) {
		return match.Match{}, fmt.Errorf("%w: only the league owner can update match details", ErrForbidden)
	}

	updated := details.Apply(item)
	if err := s.matchRepo.Update(ctx, updated); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return updated, nil
}

func (s *ScheduleService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

func (s *ScheduleService) getMatchLeague(ctx context.Context, item match.Match) (league.League, error) {
	owner, exists, err := s.leagueRepo.GetByID(ctx, item.LeagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, item.LeagueID)
	}

	return owner, nil
}

func (s *ScheduleService) isCaptainOf(ctx context.Context, userID string, item match.Match) (bool, error) {
	teams, err := s.teamRepo.ListByIDs(ctx, []string{item.HomeTeamID, item.AwayTeamID})
	if err != nil {
		return false, fmt.Errorf("list match teams: %w", err)
	}
	for _, t := range teams {
		if item.Involves(t.ID) && t.IsCaptain(userID) {
			return true, nil
		}
	}

	return false, nil
}

func (s *ScheduleService) teamsByID(ctx context.Context, items []match.Match) (map[string]team.Team, error) {
	if len(items) == 0 {
		return map[string]team.Team{}, nil
	}

	seen := make(map[string]struct{}, len(items))
	teamIDs := make([]string, 0, len(items))
	for _, item := range items {
		for _, teamID := range []string{item.HomeTeamID, item.AwayTeamID} {
			if _, ok := seen[teamID]; ok {
				continue
			}
			seen[teamID] = struct{}{}
			teamIDs = append(teamIDs, teamID)
		}
	}

	teams, err := s.teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("list match teams: %w", err)
	}

	out := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		out[t.ID] = t
	}
	return out, nil
}
