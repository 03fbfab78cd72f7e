// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/internal/domain/types"
	"github.com/okian/pitchside/pkg/logger"
)

// Dependencies required by HTTP handlers. The dashboard service satisfies
// it; tests substitute their own.
type Dependencies interface {
	TopPlayers(ctx context.Context) ([]types.RankedPlayer, error)
	Roster(ctx context.Context, sel roster.Selection, sort roster.SortState) (types.RosterPage, error)
	Teams(ctx context.Context) ([]types.TeamSummary, error)
	Calendar(ctx context.Context) ([]types.CalendarDay, error)

	// Refresh reloads the dataset; Version reports the one now served.
	Refresh(ctx context.Context) error
	Version() uint64
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	logger         logger.Logger
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	playersHandler *PlayersHandler
	teamsHandler   *TeamsHandler
	matchesHandler *MatchesHandler
	refreshHandler *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		logger:         logger.NewNop(),
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		playersHandler: NewPlayersHandler(deps),
		teamsHandler:   NewTeamsHandler(deps),
		matchesHandler: NewMatchesHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.refreshHandler = NewRefreshHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players/top", s.wrap(s.playersHandler.HandleTop, "players_top"))
	mux.HandleFunc("/players", s.wrap(s.playersHandler.HandleRoster, "players"))
	mux.HandleFunc("/teams", s.wrap(s.teamsHandler.HandleTeams, "teams"))
	mux.HandleFunc("/matches", s.wrap(s.matchesHandler.HandleMatches, "matches"))
	mux.HandleFunc("/refresh", s.wrap(s.refreshHandler.HandleRefresh, "refresh"))
}

func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.logger)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError classifies err and writes the matching response.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
