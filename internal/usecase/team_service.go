package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/riskibarqy/pitch-league/internal/domain/team"
	idgen "github.com/riskibarqy/pitch-league/internal/platform/id"
	"github.com/riskibarqy/pitch-league/internal/platform/logging"
)

const (
	maxTeamNameLength = 255
	maxTeamCityLength = 100
)

type CreateTeamInput struct {
	Name string
	City string
}

type TeamService struct {
	teamRepo team.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
}

func NewTeamService(teamRepo team.Repository, idGen idgen.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo: teamRepo,
		idGen:    idGen,
		logger:   logger,
	}
}

// CreateTeam registers a team captained by the caller.
func (s *TeamService) CreateTeam(ctx context.Context, captainID string, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	captainID = strings.TrimSpace(captainID)
	if captainID == "" {
		return team.Team{}, fmt.Errorf("%w: captain id is required", ErrUnauthorized)
	}

	input.Name = strings.TrimSpace(input.Name)
	input.City = strings.TrimSpace(input.City)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(input.Name) > maxTeamNameLength {
		return team.Team{}, fmt.Errorf("%w: team name must be at most %d characters", ErrInvalidInput, maxTeamNameLength)
	}
	if utf8.RuneCountInString(input.City) > maxTeamCityLength {
		return team.Team{}, fmt.Errorf("%w: team city must be at most %d characters", ErrInvalidInput, maxTeamCityLength)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:        teamID,
		Name:      input.Name,
		City:      input.City,
		CaptainID: captainID,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "captain_id", captainID)
	return item, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

func (s *TeamService) ListTeams(ctx context.Context, city string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx, strings.TrimSpace(city))
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}
