package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/pkg/logger"
)

// RefreshDependencies defines the reload hook the handler triggers.
type RefreshDependencies interface {
	Refresh(ctx context.Context) error
	Version() uint64
}

// RefreshHandler handles POST /refresh.
type RefreshHandler struct {
	deps   RefreshDependencies
	logger logger.Logger
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies, log logger.Logger) *RefreshHandler {
	return &RefreshHandler{deps: deps, logger: log}
}

type refreshResponse struct {
	Status  string `json:"status"`
	Version uint64 `json:"version"`
}

// HandleRefresh reloads the dataset synchronously and reports the version
// served afterwards. Loader failures are reported as source errors.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Refresh(r.Context()); err != nil {
		h.logger.Warn(r.Context(), "manual refresh failed", logger.Error(err))
		if !errors.Is(err, app.ErrNoLoader) {
			err = errors.Mark(err, app.ErrSource)
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Status: "refreshed", Version: h.deps.Version()})
}
