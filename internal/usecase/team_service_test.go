package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/pitch-league/internal/domain/team"
	teammock "github.com/riskibarqy/pitch-league/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestTeamService_CreateTeam_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, &sequenceIDGenerator{prefix: "team"}, nil)
	teamRepo.
		On("Create", mock.Anything, team.Team{ID: "team-1", Name: "Garuda FC", City: "Bogor", CaptainID: "user-9"}).
		Return(nil).
		Once()

	got, err := service.CreateTeam(context.Background(), "user-9", CreateTeamInput{Name: " Garuda FC ", City: "Bogor"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if got.CaptainID != "user-9" {
		t.Fatalf("unexpected captain: %s", got.CaptainID)
	}
}

func TestTeamService_CreateTeam_Validation(t *testing.T) {
	t.Parallel()

	service := NewTeamService(teammock.NewRepository(t), &sequenceIDGenerator{prefix: "team"}, nil)

	if _, err := service.CreateTeam(context.Background(), "", CreateTeamInput{Name: "X"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := service.CreateTeam(context.Background(), "user-1", CreateTeamInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_GetTeam_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, &sequenceIDGenerator{prefix: "team"}, nil)
	teamRepo.On("GetByID", mock.Anything, "missing").Return(team.Team{}, false, nil).Once()

	if _, err := service.GetTeam(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
