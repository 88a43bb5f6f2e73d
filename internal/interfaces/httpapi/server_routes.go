package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/matches", handler.ListLeagueMatches)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedLeagueRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("PATCH /v1/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateLeague)))
	mux.Handle("POST /v1/leagues/{leagueID}/teams", RequireAuth(verifier, http.HandlerFunc(handler.AddLeagueTeam)))
	mux.Handle("DELETE /v1/leagues/{leagueID}/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveLeagueTeam)))
	mux.Handle("POST /v1/leagues/{leagueID}/lock", RequireAuth(verifier, http.HandlerFunc(handler.LockLeague)))
	// Retries schedule generation for leagues locked before it succeeded.
	mux.Handle("POST /v1/leagues/{leagueID}/generate-schedule", RequireAuth(verifier, http.HandlerFunc(handler.GenerateSchedule)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches/{matchID}/result", RequireAuth(verifier, http.HandlerFunc(handler.RecordMatchResult)))
	mux.Handle("PATCH /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMatch)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/warm-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWarmStandingsJob)))
}
