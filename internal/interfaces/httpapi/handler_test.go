package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pitch-league/internal/infrastructure/account/static"
	"github.com/riskibarqy/pitch-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pitch-league/internal/platform/cache"
	"github.com/riskibarqy/pitch-league/internal/platform/id"
	"github.com/riskibarqy/pitch-league/internal/platform/logging"
	"github.com/riskibarqy/pitch-league/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerToken     = "tok-owner"
	dagoToken      = "tok-dago"
	strangerToken  = "tok-stranger"
	testJobToken   = "job-secret"
	seedDagoTeamID = "team-dago-fc"
)

func nopLogger() *logging.Logger {
	return logging.NewNop()
}

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := nopLogger()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository()
	idGen := id.NewXIDGenerator()

	standings := usecase.NewStandingService(leagueRepo, teamRepo, matchRepo, cache.NewStore(time.Minute), 2, logger)
	schedules := usecase.NewScheduleService(leagueRepo, teamRepo, matchRepo, standings, idGen, logger)
	leagues := usecase.NewLeagueService(leagueRepo, teamRepo, schedules, standings, idGen, logger)
	teams := usecase.NewTeamService(teamRepo, idGen, logger)

	verifier := static.NewVerifier(map[string]string{
		ownerToken:    memory.SeedOwnerID,
		dagoToken:     "user-captain-dago",
		strangerToken: "user-stranger",
	})

	handler := NewHandler(leagues, teams, schedules, standings, logger)
	return NewRouter(handler, verifier, logger, true, []string{"*"}, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		encoded, err := sonic.Marshal(body)
		require.NoError(t, err)
		payload = encoded
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LeagueLifecycle(t *testing.T) {
	router := newTestRouter(t)
	leaguePath := "/v1/leagues/" + memory.SeedLeagueIDOpen

	rec := doRequest(t, router, http.MethodPost, leaguePath+"/lock", strangerToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodPost, leaguePath+"/lock", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	locked := decodeEnvelope[lockLeagueDTO](t, rec)
	assert.Equal(t, "ACTIVE", locked.Data.League.Status)
	require.Len(t, locked.Data.Matches, 1)
	played := locked.Data.Matches[0]
	assert.Equal(t, seedDagoTeamID, played.HomeTeamID)
	assert.Equal(t, 1, played.Round)

	rec = doRequest(t, router, http.MethodPost, leaguePath+"/generate-schedule", ownerToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodPost, leaguePath+"/teams", ownerToken, map[string]string{"teamId": "team-cihampelas"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "leagueLocked", decodeEnvelope[any](t, rec).Error.Errors[0].Reason)

	rec = doRequest(t, router, http.MethodPost, "/v1/matches/"+played.ID+"/result", dagoToken, map[string]int{"homeScore": 2, "awayScore": 0})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/v1/matches/"+played.ID+"/result", ownerToken, map[string]int{"homeScore": 1, "awayScore": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodGet, leaguePath+"/standings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	table := decodeEnvelope[[]standingDTO](t, rec)
	require.Len(t, table.Data, 2)
	assert.Equal(t, seedDagoTeamID, table.Data[0].TeamID)
	assert.Equal(t, 1, table.Data[0].Position)
	assert.Equal(t, 3, table.Data[0].Points)
	assert.Equal(t, 2, table.Data[0].GoalDifference)
	assert.Equal(t, 0, table.Data[1].Points)

	rec = doRequest(t, router, http.MethodGet, leaguePath+"/matches", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	matches := decodeEnvelope[[]matchDTO](t, rec)
	require.Len(t, matches.Data, 1)
	assert.Equal(t, "PLAYED", matches.Data[0].Status)
	require.NotNil(t, matches.Data[0].Result)
	assert.Equal(t, 2, matches.Data[0].Result.HomeScore)
	require.NotNil(t, matches.Data[0].HomeTeam)
	assert.Equal(t, "Dago FC", matches.Data[0].HomeTeam.Name)
}

func TestRouter_CreateLeagueAndTeam(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/leagues", "", map[string]string{"name": "X", "city": "Y"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues", ownerToken, map[string]string{"name": "Futsal Nights", "city": "Bandung", "startDate": "2026-13-01"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues", ownerToken, map[string]any{"name": "Futsal Nights", "city": "Bandung", "extra": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues", ownerToken, map[string]string{"name": "Futsal Nights", "city": "Bandung", "season": "2026"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeEnvelope[leagueDTO](t, rec)
	assert.Equal(t, "DRAFT", created.Data.Status)
	assert.Equal(t, memory.SeedOwnerID, created.Data.OwnerID)

	rec = doRequest(t, router, http.MethodPost, "/v1/teams", strangerToken, map[string]string{"name": "Stranger Things FC", "city": "Bandung"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	newTeam := decodeEnvelope[teamDTO](t, rec)
	assert.Equal(t, "user-stranger", newTeam.Data.CaptainID)

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/"+created.Data.ID+"/teams", strangerToken, map[string]string{"teamId": newTeam.Data.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/"+created.Data.ID+"/teams", strangerToken, map[string]string{"teamId": newTeam.Data.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues?city=bandung", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeEnvelope[[]leagueSummaryDTO](t, rec)
	require.Len(t, listed.Data, 2)
	counts := map[string]int{}
	for _, item := range listed.Data {
		counts[item.ID] = item.TeamCount
	}
	assert.Equal(t, 1, counts[created.Data.ID])
	assert.Equal(t, 2, counts[memory.SeedLeagueIDOpen])

	rec = doRequest(t, router, http.MethodDelete, "/v1/leagues/"+created.Data.ID+"/teams/"+newTeam.Data.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/v1/leagues/"+created.Data.ID+"/teams/"+newTeam.Data.ID, ownerToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_GetMissingResources(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodGet, "/v1/leagues/missing", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodGet, "/v1/leagues/missing/standings", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodGet, "/v1/teams/missing", "", nil).Code)
}

func TestRouter_WarmStandingsJob(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/warm-standings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/v1/leagues/"+memory.SeedLeagueIDOpen+"/lock", ownerToken, nil).Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/warm-standings", nil)
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeEnvelope[warmStandingsDTO](t, rec)
	assert.Equal(t, 1, out.Data.SuccessCount)
	require.Len(t, out.Data.Leagues, 1)
	assert.Equal(t, memory.SeedLeagueIDOpen, out.Data.Leagues[0].LeagueID)
	assert.Equal(t, 2, out.Data.Leagues[0].Teams)
}

func TestRouter_OpenAPI(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/openapi.yaml", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pitch League API")
}
