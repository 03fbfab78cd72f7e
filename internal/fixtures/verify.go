package fixtures

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/okian/pitchside/internal/adapters/source"
	"github.com/okian/pitchside/internal/domain/flatten"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/rating"
	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/internal/domain/types"
	"github.com/okian/pitchside/pkg/logger"
)

const filePermission = 0o600

// Sentinel kinds for verification errors.
var (
	ErrMismatch = errors.New("server ranking does not match the dataset")
	ErrServer   = errors.New("server request failed")
)

// WriteFile encodes ds to path.
func WriteFile(path string, ds *model.Dataset) error {
	raw, err := source.Encode(ds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, filePermission); err != nil {
		return errors.Wrapf(err, "write dataset %s", path)
	}
	return nil
}

// ExpectedTop returns the ids of the n best-rated players of ds, computed
// locally.
func ExpectedTop(ds *model.Dataset, n int) []string {
	players := roster.Sort(rating.AggregateAll(flatten.Players(ds)), roster.SortDesc)
	n = min(n, len(players))
	out := make([]string, 0, n)
	for _, p := range players[:n] {
		out = append(out, p.ID)
	}
	return out
}

// FetchTop reads GET {baseURL}/players/top.
func FetchTop(ctx context.Context, client *http.Client, baseURL string) ([]types.RankedPlayer, error) {
	url := strings.TrimRight(baseURL, "/") + "/players/top"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "GET %s", url), ErrServer)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrServer, "GET %s: %d %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var top []types.RankedPlayer
	if err := sonic.Unmarshal(body, &top); err != nil {
		return nil, errors.Wrap(err, "decode ranking")
	}
	return top, nil
}

// Verify checks that the server at baseURL ranks ds the way it is computed
// locally. It waits up to wait for the server to pick the dataset up.
func Verify(ctx context.Context, baseURL string, ds *model.Dataset, n int, wait time.Duration) error {
	log := logger.Named("verify")
	client := &http.Client{Timeout: 10 * time.Second}
	want := ExpectedTop(ds, n)
	deadline := time.Now().Add(wait)

	for attempt := 1; ; attempt++ {
		got, err := FetchTop(ctx, client, baseURL)
		if err == nil {
			if err = compareTop(want, got); err == nil {
				log.Info(ctx, "server ranking verified", logger.Int("entries", len(got)), logger.Int("attempts", attempt))
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		log.Debug(ctx, "ranking not yet consistent", logger.Int("attempt", attempt), logger.Error(err))

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "verify ranking")
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// compareTop checks that got lists exactly want, in order, with
// consecutive ranks.
func compareTop(want []string, got []types.RankedPlayer) error {
	if len(want) != len(got) {
		return errors.Wrapf(ErrMismatch, "expected %d entries, got %d", len(want), len(got))
	}
	for i, r := range got {
		if r.Rank != i+1 {
			return errors.Wrapf(ErrMismatch, "entry %d has rank %d", i, r.Rank)
		}
		if r.Player.ID != want[i] {
			return errors.Wrapf(ErrMismatch, "rank %d: expected %s, got %s", i+1, want[i], r.Player.ID)
		}
	}
	return nil
}
