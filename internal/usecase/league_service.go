package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/pitch-league/internal/domain/league"
	"github.com/riskibarqy/pitch-league/internal/domain/match"
	"github.com/riskibarqy/pitch-league/internal/domain/team"
	idgen "github.com/riskibarqy/pitch-league/internal/platform/id"
	"github.com/riskibarqy/pitch-league/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

const (
	maxLeagueNameLength   = 255
	maxLeagueCityLength   = 100
	maxLeagueSeasonLength = 50
	teamCountConcurrency  = 8
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CreateLeagueInput is the incoming payload for a new league.
type CreateLeagueInput struct {
	Name      string
	City      string
	Season    string
	StartDate string
}

// UpdateLeagueInput carries a partial league update. Nil fields are kept.
type UpdateLeagueInput struct {
	Name      *string
	City      *string
	Season    *string
	StartDate *string
}

type LeagueSummary struct {
	League    league.League
	TeamCount int
}

type LeagueDetails struct {
	League league.League
	Teams  []LeagueTeam
}

type LeagueTeam struct {
	Team     team.Team
	JoinedAt time.Time
}

type LockLeagueResult struct {
	League  league.League
	Matches []match.Match
}

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	schedules  *ScheduleService
	standings  StandingsInvalidator
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	schedules *ScheduleService,
	standings StandingsInvalidator,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		schedules:  schedules,
		standings:  standings,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, ownerID string, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return league.League{}, fmt.Errorf("%w: owner id is required", ErrUnauthorized)
	}

	input.Name = strings.TrimSpace(input.Name)
	input.City = strings.TrimSpace(input.City)
	input.Season = strings.TrimSpace(input.Season)
	input.StartDate = strings.TrimSpace(input.StartDate)
	if err := validateLeagueFields(input.Name, input.City, input.Season, input.StartDate); err != nil {
		return league.League{}, err
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	item := league.League{
		ID:        leagueID,
		Name:      input.Name,
		City:      input.City,
		Season:    input.Season,
		StartDate: input.StartDate,
		OwnerID:   ownerID,
		Status:    league.StatusDraft,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Create(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created", "league_id", item.ID, "owner_id", ownerID)
	return item, nil
}

// ListLeagues returns the filtered leagues together with their roster size.
func (s *LeagueService) ListLeagues(ctx context.Context, filter league.Filter) ([]LeagueSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	if len(leagues) == 0 {
		return []LeagueSummary{}, nil
	}

	mapper := iter.Mapper[league.League, LeagueSummary]{MaxGoroutines: teamCountConcurrency}
	out, err := mapper.MapErr(leagues, func(item *league.League) (LeagueSummary, error) {
		memberships, err := s.leagueRepo.ListMemberships(ctx, item.ID)
		if err != nil {
			return LeagueSummary{}, fmt.Errorf("list memberships league=%s: %w", item.ID, err)
		}
		return LeagueSummary{League: *item, TeamCount: len(memberships)}, nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (LeagueDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return LeagueDetails{}, err
	}

	teams, err := s.memberTeams(ctx, item.ID)
	if err != nil {
		return LeagueDetails{}, err
	}

	return LeagueDetails{League: item, Teams: teams}, nil
}

func (s *LeagueService) UpdateLeague(ctx context.Context, userID, leagueID string, input UpdateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateLeague")
	defer span.End()

	item, err := s.getOwnedLeague(ctx, userID, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if item.IsLocked() {
		return league.League{}, fmt.Errorf("%w: league=%s status=%s", league.ErrLeagueLocked, item.ID, item.Status)
	}

	updated := item
	if input.Name != nil {
		updated.Name = strings.TrimSpace(*input.Name)
	}
	if input.City != nil {
		updated.City = strings.TrimSpace(*input.City)
	}
	if input.Season != nil {
		updated.Season = strings.TrimSpace(*input.Season)
	}
	if input.StartDate != nil {
		updated.StartDate = strings.TrimSpace(*input.StartDate)
	}
	if err := validateLeagueFields(updated.Name, updated.City, updated.Season, updated.StartDate); err != nil {
		return league.League{}, err
	}

	if err := s.leagueRepo.Update(ctx, updated); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return updated, nil
}

// AddTeam enrolls a team while the league is still a draft. Either the league
// owner or the team captain may do it.
func (s *LeagueService) AddTeam(ctx context.Context, userID, leagueID, teamID string) (league.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.AddTeam")
	defer span.End()

	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" {
		return league.Membership{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if teamID == "" {
		return league.Membership{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return league.Membership{}, err
	}
	if item.IsLocked() {
		return league.Membership{}, fmt.Errorf("%w: cannot add teams to league=%s", league.ErrLeagueLocked, item.ID)
	}

	teamItem, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return league.Membership{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return league.Membership{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	if !item.IsOwnedBy(userID) && !teamItem.IsCaptain(userID) {
		return league.Membership{}, fmt.Errorf("%w: only the league owner or team captain can add teams", ErrForbidden)
	}

	memberships, err := s.leagueRepo.ListMemberships(ctx, item.ID)
	if err != nil {
		return league.Membership{}, fmt.Errorf("list memberships: %w", err)
	}
	for _, membership := range memberships {
		if membership.TeamID == teamID {
			return league.Membership{}, fmt.Errorf("%w: team=%s already in league=%s", ErrConflict, teamID, item.ID)
		}
	}

	membership := league.Membership{
		LeagueID: item.ID,
		TeamID:   teamID,
		JoinedAt: s.now().UTC(),
	}
	if err := s.leagueRepo.AddMembership(ctx, membership); err != nil {
		if errors.Is(err, league.ErrAlreadyMember) {
			return league.Membership{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return league.Membership{}, fmt.Errorf("add membership: %w", err)
	}
	s.invalidateStandings(ctx, item.ID)

	return membership, nil
}

func (s *LeagueService) RemoveTeam(ctx context.Context, userID, leagueID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.RemoveTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if item.IsLocked() {
		return fmt.Errorf("%w: cannot remove teams from league=%s", league.ErrLeagueLocked, item.ID)
	}
	if !item.IsOwnedBy(strings.TrimSpace(userID)) {
		return fmt.Errorf("%w: only the league owner can remove teams", ErrForbidden)
	}

	if err := s.leagueRepo.RemoveMembership(ctx, item.ID, teamID); err != nil {
		return fmt.Errorf("remove membership: %w", err)
	}
	s.invalidateStandings(ctx, item.ID)

	return nil
}

// invalidateStandings drops the cached table after a roster change.
func (s *LeagueService) invalidateStandings(ctx context.Context, leagueID string) {
	if s.standings != nil {
		s.standings.Invalidate(ctx, leagueID)
	}
}

// LockLeague freezes the roster, activates the league and generates its
// round-robin schedule.
func (s *LeagueService) LockLeague(ctx context.Context, userID, leagueID string) (LockLeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.LockLeague")
	defer span.End()

	item, err := s.getOwnedLeague(ctx, userID, leagueID)
	if err != nil {
		return LockLeagueResult{}, err
	}
	if item.IsLocked() {
		return LockLeagueResult{}, fmt.Errorf("%w: league=%s status=%s", league.ErrLeagueLocked, item.ID, item.Status)
	}

	memberships, err := s.leagueRepo.ListMemberships(ctx, item.ID)
	if err != nil {
		return LockLeagueResult{}, fmt.Errorf("list memberships: %w", err)
	}
	if len(memberships) < league.MinTeamsToLock {
		return LockLeagueResult{}, fmt.Errorf("%w: league=%s teams=%d need at least %d",
			league.ErrInsufficientTeams, item.ID, len(memberships), league.MinTeamsToLock)
	}

	item.Status = league.StatusActive
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		return LockLeagueResult{}, fmt.Errorf("activate league: %w", err)
	}

	result := LockLeagueResult{League: item}
	if s.schedules == nil {
		return result, nil
	}

	matches, err := s.schedules.generate(ctx, item, memberships)
	if err != nil {
		s.logger.WarnContext(ctx, "generate schedule after lock failed", "league_id", item.ID, "error", err)
		return LockLeagueResult{}, err
	}
	result.Matches = matches

	s.logger.InfoContext(ctx, "league locked", "league_id", item.ID, "teams", len(memberships), "matches", len(matches))
	return result, nil
}

func (s *LeagueService) getLeague(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return item, nil
}

func (s *LeagueService) getOwnedLeague(ctx context.Context, userID, leagueID string) (league.League, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if !item.IsOwnedBy(userID) {
		return league.League{}, fmt.Errorf("%w: only the league owner can manage league=%s", ErrForbidden, item.ID)
	}

	return item, nil
}

func (s *LeagueService) memberTeams(ctx context.Context, leagueID string) ([]LeagueTeam, error) {
	memberships, err := s.leagueRepo.ListMemberships(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	teams, err := loadMemberTeams(ctx, s.teamRepo, memberships)
	if err != nil {
		return nil, err
	}

	joinedAt := make(map[string]time.Time, len(memberships))
	for _, membership := range memberships {
		joinedAt[membership.TeamID] = membership.JoinedAt
	}

	out := make([]LeagueTeam, 0, len(teams))
	for _, item := range teams {
		out = append(out, LeagueTeam{Team: item, JoinedAt: joinedAt[item.ID]})
	}
	return out, nil
}

// loadMemberTeams resolves membership rows into teams, keeping join order.
// Memberships pointing at missing teams are dropped.
func loadMemberTeams(ctx context.Context, teamRepo team.Repository, memberships []league.Membership) ([]team.Team, error) {
	if len(memberships) == 0 {
		return []team.Team{}, nil
	}

	teamIDs := membershipTeamIDs(memberships)
	items, err := teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("list teams by ids: %w", err)
	}

	byID := make(map[string]team.Team, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	out := make([]team.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if item, ok := byID[teamID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func membershipTeamIDs(memberships []league.Membership) []string {
	out := make([]string, 0, len(memberships))
	for _, membership := range memberships {
		out = append(out, membership.TeamID)
	}
	return out
}

func validateLeagueFields(name, city, season, startDate string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: league name is required", ErrInvalidInput)
	case utf8.RuneCountInString(name) > maxLeagueNameLength:
		return fmt.Errorf("%w: league name must be at most %d characters", ErrInvalidInput, maxLeagueNameLength)
	case city == "":
		return fmt.Errorf("%w: league city is required", ErrInvalidInput)
	case utf8.RuneCountInString(city) > maxLeagueCityLength:
		return fmt.Errorf("%w: league city must be at most %d characters", ErrInvalidInput, maxLeagueCityLength)
	case utf8.RuneCountInString(season) > maxLeagueSeasonLength:
		return fmt.Errorf("%w: league season must be at most %d characters", ErrInvalidInput, maxLeagueSeasonLength)
	case startDate != "" && !isoDatePattern.MatchString(startDate):
		return fmt.Errorf("%w: league start date must be YYYY-MM-DD", ErrInvalidInput)
	}

	return nil
}
