package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/pitch-league/internal/domain/match"
)

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req recordResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scheduleService.RecordResult(ctx, principal.UserID, matchID, *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchResultToDTO(result))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req updateMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.scheduleService.UpdateMatch(ctx, principal.UserID, matchID, match.Details{
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		PitchID:       req.PitchID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}
