package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/pitch-league/internal/usecase"
)

func (h *Handler) RunWarmStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarmStandingsJob")
	defer span.End()

	if h.standingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: standing service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.standingService.WarmActiveLeagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run warm standings job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := warmStandingsDTO{
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		Leagues:      make([]warmStandingsLeagueDTO, 0, len(result.Leagues)),
	}
	for _, item := range result.Leagues {
		out.Leagues = append(out.Leagues, warmStandingsLeagueDTO{
			LeagueID:   item.LeagueID,
			Teams:      item.Teams,
			Status:     item.Status,
			Message:    item.Message,
			DurationMs: item.DurationMs,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
