package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/pitch-league/internal/domain/league"
	"github.com/riskibarqy/pitch-league/internal/usecase"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	query := r.URL.Query()
	filter := league.Filter{
		City:   strings.TrimSpace(query.Get("city")),
		Status: strings.TrimSpace(query.Get("status")),
		Search: strings.TrimSpace(query.Get("search")),
	}

	items, err := h.leagueService.ListLeagues(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "city", filter.City, "status", filter.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leagueSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueSummaryDTO{leagueDTO: leagueToDTO(item.League), TeamCount: item.TeamCount})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	details, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueDetailToDTO(details))
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createLeagueRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.CreateLeague(ctx, principal.UserID, usecase.CreateLeagueInput{
		Name:      req.Name,
		City:      req.City,
		Season:    req.Season,
		StartDate: req.StartDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(item))
}

func (h *Handler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req updateLeagueRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.UpdateLeague(ctx, principal.UserID, leagueID, usecase.UpdateLeagueInput{
		Name:      req.Name,
		City:      req.City,
		Season:    req.Season,
		StartDate: req.StartDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update league failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item))
}

func (h *Handler) AddLeagueTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddLeagueTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req addLeagueTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	membership, err := h.leagueService.AddTeam(ctx, principal.UserID, leagueID, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "add league team failed", "user_id", principal.UserID, "league_id", leagueID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, membershipDTO{
		LeagueID:    membership.LeagueID,
		TeamID:      membership.TeamID,
		JoinedAtUTC: formatTime(membership.JoinedAt),
	})
}

func (h *Handler) RemoveLeagueTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveLeagueTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	if err := h.leagueService.RemoveTeam(ctx, principal.UserID, leagueID, teamID); err != nil {
		h.logger.WarnContext(ctx, "remove league team failed", "user_id", principal.UserID, "league_id", leagueID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LockLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	result, err := h.leagueService.LockLeague(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "lock league failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lockLeagueDTO{
		League:  leagueToDTO(result.League),
		Matches: matchesToDTO(result.Matches),
	})
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	items, err := h.scheduleService.GenerateSchedule(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchesToDTO(items))
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rows, err := h.standingService.ListByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListLeagueMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMatches")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.scheduleService.ListMatches(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league matches failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, scheduledMatchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
