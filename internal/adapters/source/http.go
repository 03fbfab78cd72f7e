package source

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/okian/pitchside/internal/domain/model"
)

const (
	defaultFetchTimeout = 5 * time.Second
	defaultMaxBytes     = 16 << 20
)

// HTTPLoader GETs the dataset document from a URL.
type HTTPLoader struct {
	url      string
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// NewHTTPLoader creates a loader for url with configuration options.
func NewHTTPLoader(url string, opts ...Option) *HTTPLoader {
	l := &HTTPLoader{
		url:      url,
		client:   http.DefaultClient,
		timeout:  defaultFetchTimeout,
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes the document. Non-2xx responses are marked
// ErrUpstreamStatus.
func (l *HTTPLoader) Load(ctx context.Context) (*model.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build dataset request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch dataset")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Wrapf(ErrUpstreamStatus, "GET %s: %d", l.url, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read dataset body")
	}
	if int64(len(raw)) > l.maxBytes {
		return nil, errors.Wrapf(ErrTooLarge, "more than %d bytes", l.maxBytes)
	}
	return Decode(raw)
}
