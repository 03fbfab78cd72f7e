package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchside/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			convey.So(cfg.DataFile, convey.ShouldBeEmpty)
			convey.So(cfg.DataURL, convey.ShouldBeEmpty)
			convey.So(cfg.CacheSize, convey.ShouldEqual, 256)
			convey.So(cfg.CalendarOrder, convey.ShouldEqual, "first_seen")
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "pitchside")
		})

		convey.Convey("Then durations should be derived from the numeric fields", func() {
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, time.Minute)
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 5*time.Second)
		})

		convey.Convey("Then the defaults should validate", func() {
			convey.So(config.Validate(context.Background(), cfg), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		ctx := context.Background()
		cfg := config.New()

		convey.Convey("When the log format is unknown", func() {
			cfg.LogFormat = "xml"
			err := config.Validate(ctx, cfg)

			convey.Convey("Then it should be rejected naming the field", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "LogFormat")
			})
		})

		convey.Convey("When the calendar order is unknown", func() {
			cfg.CalendarOrder = "random"
			err := config.Validate(ctx, cfg)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "CalendarOrder")
			})
		})

		convey.Convey("When several fields are wrong", func() {
			cfg.CacheSize = -1
			cfg.FetchTimeoutMS = 0
			cfg.DataURL = "not a url"
			err := config.Validate(ctx, cfg)

			convey.Convey("Then every failing field should be listed", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "CacheSize")
				convey.So(err.Error(), convey.ShouldContainSubstring, "FetchTimeoutMS")
				convey.So(err.Error(), convey.ShouldContainSubstring, "DataURL")
			})
		})

		convey.Convey("When a refresh interval of zero is set", func() {
			cfg.RefreshIntervalSec = 0

			convey.Convey("Then it should be accepted as load-once", func() {
				convey.So(config.Validate(ctx, cfg), convey.ShouldBeNil)
				convey.So(cfg.RefreshInterval(), convey.ShouldEqual, time.Duration(0))
			})
		})
	})
}
