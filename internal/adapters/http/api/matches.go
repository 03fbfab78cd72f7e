package api

import (
	"context"
	"net/http"

	"github.com/okian/pitchside/internal/domain/types"
)

// MatchesDependencies defines the calendar view the handler reads.
type MatchesDependencies interface {
	Calendar(ctx context.Context) ([]types.CalendarDay, error)
}

// MatchesHandler handles GET /matches.
type MatchesHandler struct {
	deps MatchesDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchesDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleMatches writes the match calendar grouped by day.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	days, err := h.deps.Calendar(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}
