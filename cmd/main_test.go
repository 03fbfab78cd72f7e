package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchside/internal/adapters/http/api"
	"github.com/okian/pitchside/internal/config"
	"github.com/okian/pitchside/internal/fixtures"
	"github.com/okian/pitchside/pkg/logger"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.RefreshIntervalSec = 0
	cfg.Addr = "127.0.0.1:0"
	return cfg
}

func TestBuild(t *testing.T) {
	convey.Convey("Given a config pointing at a dataset file", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "dataset.json")
		convey.So(fixtures.WriteFile(path, fixtures.Sample()), convey.ShouldBeNil)

		cfg := testConfig()
		cfg.DataFile = path
		c := build(ctx, cfg, logger.NewNop())

		convey.Convey("When the refresh job has run once", func() {
			convey.So(c.job.Start(ctx), convey.ShouldBeNil)

			req := httptest.NewRequest(http.MethodGet, "/players/top", nil)
			w := httptest.NewRecorder()
			c.srv.Handler.ServeHTTP(w, req)

			convey.Convey("Then the wired server should serve the file's players", func() {
				convey.So(c.job.Runs(), convey.ShouldEqual, 1)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"p4"`)
				convey.So(c.srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			})
		})
	})

	convey.Convey("Given a config without any data source", t, func() {
		ctx := context.Background()
		c := build(ctx, testConfig(), logger.NewNop())
		convey.So(c.job.Start(ctx), convey.ShouldBeNil)

		convey.Convey("Then views should be served empty", func() {
			w := httptest.NewRecorder()
			c.srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teams", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldStartWith, "[]")
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given the main run loop", t, func() {
		convey.Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			convey.Convey("Then it should shut down cleanly", func() {
				convey.So(run(ctx, testConfig(), logger.NewNop()), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the listen address is invalid", func() {
			cfg := testConfig()
			cfg.Addr = "bad:addr:99"
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err := run(ctx, cfg, logger.NewNop())

			convey.Convey("Then the listener error should be returned", func() {
				convey.So(errors.Is(err, api.ErrServe), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the background metrics updaters", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		c := build(context.Background(), testConfig(), logger.NewNop())

		convey.Convey("Then they should return when the context ends", func() {
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			convey.So(func() { startServiceMetricsUpdater(ctx, c.svc) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then single updates should not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(c.svc) }, convey.ShouldNotPanic)
		})
	})
}
