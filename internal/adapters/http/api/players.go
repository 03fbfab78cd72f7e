package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/internal/domain/types"
)

// PlayersDependencies defines the player views the handler reads.
type PlayersDependencies interface {
	TopPlayers(ctx context.Context) ([]types.RankedPlayer, error)
	Roster(ctx context.Context, sel roster.Selection, sort roster.SortState) (types.RosterPage, error)
}

// PlayersHandler serves the ranking and the filterable roster.
type PlayersHandler struct {
	deps PlayersDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleTop handles GET /players/top.
func (h *PlayersHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	top, err := h.deps.TopPlayers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// HandleRoster handles GET /players?team=&role=&q=&sort=.
// Missing team or role, or the value "all", selects every value.
func (h *PlayersHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sel, sort, err := parseRosterQuery(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	page, err := h.deps.Roster(r.Context(), sel, sort)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func parseRosterQuery(r *http.Request) (roster.Selection, roster.SortState, error) {
	q := r.URL.Query()
	sort, err := roster.ParseSortState(q.Get("sort"))
	if err != nil {
		return roster.Selection{}, roster.SortNone, errors.Mark(err, ErrBadRequest)
	}
	sel := roster.Selection{}.
		WithTeam(roster.ParseSelector(q.Get("team"))).
		WithRole(roster.ParseSelector(q.Get("role"))).
		WithQuery(q.Get("q"))
	return sel, sort, nil
}
