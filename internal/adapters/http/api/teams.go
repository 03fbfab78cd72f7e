package api

import (
	"context"
	"net/http"

	"github.com/okian/pitchside/internal/domain/types"
)

// TeamsDependencies defines the team listing the handler reads.
type TeamsDependencies interface {
	Teams(ctx context.Context) ([]types.TeamSummary, error)
}

// TeamsHandler handles GET /teams.
type TeamsHandler struct {
	deps TeamsDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleTeams writes every team in document order.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teams, err := h.deps.Teams(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}
