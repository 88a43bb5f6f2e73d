package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/pitch-league/internal/domain/league"
	"github.com/riskibarqy/pitch-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/pitch-league/internal/domain/match"
	"github.com/riskibarqy/pitch-league/internal/domain/team"
	"github.com/riskibarqy/pitch-league/internal/platform/cache"
	"github.com/riskibarqy/pitch-league/internal/platform/logging"
)

const (
	standingsCachePrefix     = "standings:"
	defaultWarmupWorkerCount = 4

	warmStatusSuccess = "success"
	warmStatusFailed  = "failed"
)

type WarmStandingsLeagueResult struct {
	LeagueID   string
	Teams      int
	Status     string
	Message    string
	DurationMs int64
}

type WarmStandingsResult struct {
	Leagues      []WarmStandingsLeagueResult
	SuccessCount int
	FailedCount  int
}

type StandingService struct {
	leagueRepo  league.Repository
	teamRepo    team.Repository
	matchRepo   match.Repository
	cache       *cache.Store
	workerCount int
	logger      *logging.Logger
}

func NewStandingService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	store *cache.Store,
	workerCount int,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}
	if workerCount <= 0 {
		workerCount = defaultWarmupWorkerCount
	}

	return &StandingService{
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		cache:       store,
		workerCount: workerCount,
		logger:      logger,
	}
}

// ListByLeague returns the ranked table of a league. Results are served from
// the cache until a new match result invalidates them.
func (s *StandingService) ListByLeague(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListByLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if s.cache == nil {
		return s.compute(ctx, leagueID)
	}

	value, err := s.cache.GetOrLoad(ctx, standingsCacheKey(leagueID), func(ctx context.Context) (any, error) {
		return s.compute(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}

	rows, ok := value.([]leaguestanding.Standing)
	if !ok {
		return nil, fmt.Errorf("unexpected cached standings type %T", value)
	}

	out := make([]leaguestanding.Standing, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *StandingService) Invalidate(ctx context.Context, leagueID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, standingsCacheKey(strings.TrimSpace(leagueID)))
}

// WarmActiveLeagues recomputes and caches the table of every active league.
func (s *StandingService) WarmActiveLeagues(ctx context.Context) (WarmStandingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.WarmActiveLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx, league.Filter{Status: league.StatusActive})
	if err != nil {
		return WarmStandingsResult{}, fmt.Errorf("list active leagues: %w", err)
	}

	result := WarmStandingsResult{Leagues: make([]WarmStandingsLeagueResult, 0, len(leagues))}
	if len(leagues) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.workerCount)
	if err != nil {
		return WarmStandingsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan WarmStandingsLeagueResult, len(leagues))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, item := range leagues {
		leagueID := item.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := WarmStandingsLeagueResult{LeagueID: leagueID}

			s.Invalidate(ctx, leagueID)
			rows, err := s.ListByLeague(ctx, leagueID)
			if err != nil {
				row.Status = warmStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "warm standings failed", "league_id", leagueID, "error", err)
			} else {
				row.Status = warmStatusSuccess
				row.Teams = len(rows)
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return WarmStandingsResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Leagues = append(result.Leagues, row)
	}
	sort.SliceStable(result.Leagues, func(i, j int) bool {
		return result.Leagues[i].LeagueID < result.Leagues[j].LeagueID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	s.logger.InfoContext(ctx, "standings warmed",
		"leagues", len(leagues),
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *StandingService) compute(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	memberships, err := s.leagueRepo.ListMemberships(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return []leaguestanding.Standing{}, nil
	}

	teams, err := loadMemberTeams(ctx, s.teamRepo, memberships)
	if err != nil {
		return nil, err
	}
	teamIDs := make([]string, 0, len(teams))
	for _, item := range teams {
		teamIDs = append(teamIDs, item.ID)
	}

	matches, err := s.matchRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return leaguestanding.Calculate(teamIDs, team.NamesByID(teams), match.StandingResults(matches)), nil
}

func standingsCacheKey(leagueID string) string {
	return standingsCachePrefix + leagueID
}
