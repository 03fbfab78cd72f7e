package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchside/internal/adapters/source"
	"github.com/okian/pitchside/internal/fixtures"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleJSON() []byte {
	b, err := source.Encode(fixtures.Sample())
	if err != nil {
		panic(err)
	}
	return b
}

func TestDecode(t *testing.T) {
	Convey("Given dataset documents", t, func() {
		Convey("When the document round-trips through Encode", func() {
			ds, err := source.Decode(sampleJSON())

			Convey("Then it equals the original", func() {
				So(err, ShouldBeNil)
				So(ds, ShouldResemble, fixtures.Sample())
			})
		})

		Convey("When the document uses the wire field names", func() {
			ds, err := source.Decode([]byte(`{"competitions":[{"events":[{"teams":[],"matches":[{"id":"m","date":"2024-05-01T10:00:00Z","teamA":"a","teamB":"b"}]}]}]}`))

			Convey("Then match sides are read from teamA/teamB", func() {
				So(err, ShouldBeNil)
				m := ds.Competitions[0].Events[0].Matches[0]
				So(m.TeamA, ShouldEqual, "a")
				So(m.TeamB, ShouldEqual, "b")
			})
		})

		Convey("When the body is empty or null", func() {
			Convey("Then there is no data and no error", func() {
				for _, raw := range []string{"", "  ", "null", " null\n"} {
					ds, err := source.Decode([]byte(raw))
					So(err, ShouldBeNil)
					So(ds, ShouldBeNil)
				}
			})
		})

		Convey("When the body is not JSON", func() {
			_, err := source.Decode([]byte("{competitions:"))

			Convey("Then ErrDecode is reported", func() {
				So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
			})
		})
	})
}

func TestFileLoader(t *testing.T) {
	Convey("Given a dataset file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "dataset.json")
		So(os.WriteFile(path, sampleJSON(), 0o600), ShouldBeNil)

		Convey("When loading it", func() {
			ds, err := source.NewFileLoader(path).Load(context.Background())

			Convey("Then the dataset is decoded", func() {
				So(err, ShouldBeNil)
				So(ds, ShouldResemble, fixtures.Sample())
			})
		})

		Convey("When the file is missing", func() {
			_, err := source.NewFileLoader(filepath.Join(dir, "missing.json")).Load(context.Background())

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "missing.json")
			})
		})
	})
}

func TestHTTPLoader(t *testing.T) {
	Convey("Given an upstream serving the dataset", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/dataset.json":
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(sampleJSON())
			case "/slow":
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			case "/big":
				_, _ = w.Write([]byte(`{"competitions":[` + strings.Repeat(" ", 256) + `]}`))
			default:
				http.Error(w, "nope", http.StatusNotFound)
			}
		}))
		defer srv.Close()

		Convey("When fetching the document", func() {
			ds, err := source.NewHTTPLoader(srv.URL + "/dataset.json").Load(context.Background())

			Convey("Then the dataset is decoded", func() {
				So(err, ShouldBeNil)
				So(ds, ShouldResemble, fixtures.Sample())
			})
		})

		Convey("When the upstream answers 404", func() {
			_, err := source.NewHTTPLoader(srv.URL + "/missing").Load(context.Background())

			Convey("Then ErrUpstreamStatus is reported", func() {
				So(errors.Is(err, source.ErrUpstreamStatus), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "404")
			})
		})

		Convey("When the upstream is slower than the timeout", func() {
			l := source.NewHTTPLoader(srv.URL+"/slow", source.WithTimeout(50*time.Millisecond))
			_, err := l.Load(context.Background())

			Convey("Then the fetch fails with a deadline error", func() {
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			})
		})

		Convey("When the body exceeds the size cap", func() {
			l := source.NewHTTPLoader(srv.URL+"/big", source.WithMaxBytes(64))
			_, err := l.Load(context.Background())

			Convey("Then ErrTooLarge is reported", func() {
				So(errors.Is(err, source.ErrTooLarge), ShouldBeTrue)
			})
		})
	})
}

func TestStaticAndSelect(t *testing.T) {
	Convey("Given static loaders", t, func() {
		ctx := context.Background()

		Convey("Then NewStatic yields its dataset", func() {
			ds, err := source.NewStatic(fixtures.Sample()).Load(ctx)
			So(err, ShouldBeNil)
			So(ds, ShouldNotBeNil)
		})

		Convey("Then Failing yields its error", func() {
			boom := errors.New("boom")
			_, err := source.Failing(boom).Load(ctx)
			So(errors.Is(err, boom), ShouldBeTrue)
		})

		Convey("Then a cancelled context is honoured", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := source.NewStatic(nil).Load(cctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given source settings", t, func() {
		Convey("Then a URL wins over a file", func() {
			l, err := source.Select("data.json", "http://example.invalid/data.json")
			So(err, ShouldBeNil)
			_, ok := l.(*source.HTTPLoader)
			So(ok, ShouldBeTrue)
		})

		Convey("Then a file alone selects the file loader", func() {
			l, err := source.Select("data.json", "")
			So(err, ShouldBeNil)
			_, ok := l.(*source.FileLoader)
			So(ok, ShouldBeTrue)
		})

		Convey("Then nothing configured is ErrNoSource", func() {
			_, err := source.Select("", "")
			So(errors.Is(err, source.ErrNoSource), ShouldBeTrue)
		})
	})
}
