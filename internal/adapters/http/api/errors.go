package api

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/okian/pitchside/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrServe      = errors.New("http serve failed")
)

// Error codes written in the "code" field of error responses.
const (
	codeBadRequest  = "bad_request"
	codeLoading     = "loading"
	codeSourceError = "source_error"
	codeNoLoader    = "no_loader"
	codeInternal    = "internal_error"
)

// classify maps a service error to its HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, app.ErrLoading):
		return http.StatusServiceUnavailable, codeLoading
	case errors.Is(err, app.ErrNoLoader):
		return http.StatusServiceUnavailable, codeNoLoader
	case errors.Is(err, app.ErrSource):
		return http.StatusBadGateway, codeSourceError
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
