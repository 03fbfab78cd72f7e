package refresh_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchside/internal/adapters/refresh"
	. "github.com/smartystreets/goconvey/convey"
)

type countingRefresher struct {
	calls atomic.Int64
	err   error
}

func (c *countingRefresher) Refresh(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestJob(t *testing.T) {
	Convey("Given a job without an interval", t, func() {
		target := &countingRefresher{}
		job := refresh.New(target)

		Convey("When it starts", func() {
			err := job.Start(context.Background())

			Convey("Then it refreshes exactly once before returning", func() {
				So(err, ShouldBeNil)
				So(target.calls.Load(), ShouldEqual, 1)
				So(job.Runs(), ShouldEqual, 1)
				So(job.Stop(), ShouldBeNil)
			})
		})
	})

	Convey("Given a job with a short interval", t, func() {
		target := &countingRefresher{}
		job := refresh.New(target, refresh.WithInterval(20*time.Millisecond))

		Convey("When it runs for a while", func() {
			So(job.Start(context.Background()), ShouldBeNil)
			ok := waitFor(func() bool { return job.Runs() >= 3 }, 2*time.Second)
			So(job.Stop(), ShouldBeNil)

			Convey("Then it refreshed repeatedly and stopped cleanly", func() {
				So(ok, ShouldBeTrue)
				stopped := target.calls.Load()
				time.Sleep(60 * time.Millisecond)
				So(target.calls.Load(), ShouldEqual, stopped)
			})
		})

		Convey("When Start is called twice", func() {
			So(job.Start(context.Background()), ShouldBeNil)
			So(job.Start(context.Background()), ShouldBeNil)

			Convey("Then Stop still shuts everything down", func() {
				So(job.Stop(), ShouldBeNil)
				So(job.Stop(), ShouldBeNil)
			})
		})
	})

	Convey("Given a target that fails", t, func() {
		target := &countingRefresher{err: errors.New("upstream down")}
		job := refresh.New(target)

		Convey("When the job runs", func() {
			err := job.Start(context.Background())

			Convey("Then the failure is counted, not returned", func() {
				So(err, ShouldBeNil)
				So(job.Failures(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a cancelled context", t, func() {
		target := &countingRefresher{}
		job := refresh.New(target)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then no refresh is attempted", func() {
			So(job.Start(ctx), ShouldBeNil)
			So(target.calls.Load(), ShouldEqual, 0)
		})
	})
}
