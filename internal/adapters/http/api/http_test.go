package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/okian/pitchside/internal/adapters/http/api"
	"github.com/okian/pitchside/internal/adapters/source"
	"github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/types"
	"github.com/okian/pitchside/internal/fixtures"
	"github.com/okian/pitchside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type rosterBody struct {
	Team     string `json:"team"`
	Role     string `json:"role"`
	Sort     string `json:"sort"`
	NextSort string `json:"nextSort"`
	Count    int    `json:"count"`
	Players  []struct {
		ID     string `json:"id"`
		TeamID string `json:"teamId"`
	} `json:"players"`
	Roles []string `json:"roles"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newMux(svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	So(sonic.Unmarshal(w.Body.Bytes(), &v), ShouldBeNil)
	return v
}

func TestServer_Routes(t *testing.T) {
	Convey("Given a server over a published sample dataset", t, func() {
		svc := app.New()
		svc.Publish(context.Background(), model.Loaded(fixtures.Sample()))
		mux := newMux(svc)

		Convey("When requesting /healthz", func() {
			w := do(mux, http.MethodGet, "/healthz")

			Convey("Then it should expose metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "dataset_version")
			})
		})

		Convey("When requesting /stats", func() {
			w := do(mux, http.MethodGet, "/stats")
			stats := decode[map[string]any](w)

			Convey("Then it should describe the dataset", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(stats["players"], ShouldEqual, float64(7))
				So(stats["loading"], ShouldEqual, false)
			})
		})

		Convey("When requesting /players/top", func() {
			w := do(mux, http.MethodGet, "/players/top")
			top := decode[[]types.RankedPlayer](w)

			Convey("Then it should return the five best players", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				So(len(top), ShouldEqual, app.TopN)
				So(top[0].Player.ID, ShouldEqual, "p4")
				So(top[0].Rank, ShouldEqual, 1)
				So(top[0].Rating, ShouldEqual, "9.0")
				So(top[4].Player.ID, ShouldEqual, "p3")
			})
		})

		Convey("When requesting /players with no filter", func() {
			w := do(mux, http.MethodGet, "/players")
			page := decode[rosterBody](w)

			Convey("Then every player should be listed in document order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(page.Count, ShouldEqual, 7)
				So(page.Players[0].ID, ShouldEqual, "p1")
				So(page.Team, ShouldEqual, "all")
				So(page.Sort, ShouldEqual, "none")
				So(page.NextSort, ShouldEqual, "desc")
				So(page.Roles, ShouldResemble, []string{"Defender", "Forward", "Goalkeeper", "Midfielder"})
			})
		})

		Convey("When filtering /players by role and sorting descending", func() {
			w := do(mux, http.MethodGet, "/players?role=Forward&sort=desc")
			page := decode[rosterBody](w)

			Convey("Then forwards should be ordered by average rating", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				ids := make([]string, 0, len(page.Players))
				for _, p := range page.Players {
					ids = append(ids, p.ID)
				}
				So(ids, ShouldResemble, []string{"p4", "p1", "p6"})
				So(page.NextSort, ShouldEqual, "asc")
			})
		})

		Convey("When filtering /players by team", func() {
			w := do(mux, http.MethodGet, "/players?team=t1&role=all")
			page := decode[rosterBody](w)

			Convey("Then only that team's players should be listed", func() {
				So(page.Count, ShouldEqual, 2)
				for _, p := range page.Players {
					So(p.TeamID, ShouldEqual, "t1")
				}
			})
		})

		Convey("When /players gets an unknown sort", func() {
			w := do(mux, http.MethodGet, "/players?sort=sideways")
			body := decode[errorBody](w)

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(body.Code, ShouldEqual, "bad_request")
			})
		})

		Convey("When requesting /teams", func() {
			w := do(mux, http.MethodGet, "/teams")
			teams := decode[[]types.TeamSummary](w)

			Convey("Then all teams should be listed with player counts", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(len(teams), ShouldEqual, 4)
				So(teams[0].ID, ShouldEqual, "t1")
				So(teams[0].PlayerCount, ShouldEqual, 2)
			})
		})

		Convey("When requesting /matches", func() {
			w := do(mux, http.MethodGet, "/matches")
			days := decode[[]types.CalendarDay](w)

			Convey("Then matches should be grouped by first-seen day", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(len(days), ShouldEqual, 3)
				So(days[0].DateKey, ShouldEqual, "2024-05-01")
				So(len(days[0].Matches), ShouldEqual, 3)
				So(days[0].Matches[2].TeamB.Found, ShouldBeFalse)
			})
		})

		Convey("When using the wrong method", func() {
			Convey("Then read routes should answer 404", func() {
				So(do(mux, http.MethodPost, "/players/top").Code, ShouldEqual, http.StatusNotFound)
				So(do(mux, http.MethodDelete, "/teams").Code, ShouldEqual, http.StatusNotFound)
				So(do(mux, http.MethodGet, "/refresh").Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When requesting an unknown path", func() {
			Convey("Then it should be 404", func() {
				So(do(mux, http.MethodGet, "/unknown").Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestServer_SourceStates(t *testing.T) {
	Convey("Given a server whose service has no dataset yet", t, func() {
		svc := app.New()
		mux := newMux(svc)

		Convey("When requesting any view", func() {
			w := do(mux, http.MethodGet, "/players/top")
			body := decode[errorBody](w)

			Convey("Then it should report loading", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(body.Code, ShouldEqual, "loading")
			})
		})

		Convey("When the source reports an error", func() {
			svc.Publish(context.Background(), model.Failed("feed offline"))
			w := do(mux, http.MethodGet, "/matches")
			body := decode[errorBody](w)

			Convey("Then it should report a source error", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				So(body.Code, ShouldEqual, "source_error")
				So(body.Message, ShouldContainSubstring, "feed offline")
			})
		})

		Convey("When the source delivered no dataset", func() {
			svc.Publish(context.Background(), model.Loaded(nil))
			w := do(mux, http.MethodGet, "/players")
			page := decode[rosterBody](w)

			Convey("Then views should be empty rather than failing", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(page.Count, ShouldEqual, 0)
			})
		})
	})
}

func TestServer_Refresh(t *testing.T) {
	Convey("Given a server with a static loader", t, func() {
		svc := app.New(app.WithLoader(source.NewStatic(fixtures.Sample())))
		mux := newMux(svc)

		Convey("When posting /refresh", func() {
			w := do(mux, http.MethodPost, "/refresh")
			body := decode[map[string]any](w)

			Convey("Then the dataset should be loaded and its version reported", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body["status"], ShouldEqual, "refreshed")
				So(body["version"], ShouldEqual, float64(1))
				So(do(mux, http.MethodGet, "/players/top").Code, ShouldEqual, http.StatusOK)
			})
		})
	})

	Convey("Given a server with a failing loader", t, func() {
		svc := app.New(app.WithLoader(source.Failing(errors.New("connection refused"))))
		mux := newMux(svc)

		Convey("When posting /refresh", func() {
			w := do(mux, http.MethodPost, "/refresh")
			body := decode[errorBody](w)

			Convey("Then the failure should surface as a source error", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				So(body.Code, ShouldEqual, "source_error")
				So(do(mux, http.MethodGet, "/teams").Code, ShouldEqual, http.StatusBadGateway)
			})
		})
	})

	Convey("Given a server without a loader", t, func() {
		mux := newMux(app.New())

		Convey("When posting /refresh", func() {
			w := do(mux, http.MethodPost, "/refresh")
			body := decode[errorBody](w)

			Convey("Then it should be unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(body.Code, ShouldEqual, "no_loader")
			})
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a handler behind the request id middleware", t, func() {
		var seen string
		h := api.RequestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = logger.RequestIDFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}, logger.NewNop())

		Convey("When the caller supplies an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h(w, req)

			Convey("Then it should be echoed", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
				So(seen, ShouldEqual, "abc-123")
			})
		})

		Convey("When no id is supplied", func() {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then a uuid should be assigned and carried in the context", func() {
				So(len(w.Header().Get(api.RequestIDHeader)), ShouldEqual, 36)
				So(seen, ShouldEqual, w.Header().Get(api.RequestIDHeader))
			})
		})
	})
}
