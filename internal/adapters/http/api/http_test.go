package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/gigfeed/internal/adapters/http/api"
	"github.com/okian/gigfeed/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing

type mockDeps struct {
	events     []model.EnrichedEvent
	eventsErr  error
	cached     []model.EnrichedEvent
	lastForce  bool
	interest   map[string]*model.Stats
	lastAction model.InterestAction
}

func (m *mockDeps) Events(_ context.Context, force bool) ([]model.EnrichedEvent, error) {
	m.lastForce = force
	if m.eventsErr != nil {
		return nil, m.eventsErr
	}
	return m.events, nil
}

func (m *mockDeps) CachedEvents() ([]model.EnrichedEvent, bool) {
	return m.cached, m.cached != nil
}

func (m *mockDeps) Interest(_ context.Context, id string, action model.InterestAction) *model.Stats {
	if m.interest == nil {
		m.interest = make(map[string]*model.Stats)
	}
	if _, ok := m.interest[id]; !ok {
		m.interest[id] = &model.Stats{}
	}
	m.lastAction = action
	m.interest[id].Add(action)
	return m.interest[id]
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func event(id string, typ model.EventType, status model.StatusCode) model.EnrichedEvent {
	return model.EnrichedEvent{
		ID:     id,
		Name:   "event " + id,
		Type:   typ,
		Status: model.Status{Code: status},
		Links:  []model.Link{},
		Tags:   []string{},
		Stats:  &model.Stats{},
	}
}

func newMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func decodeEvents(body *bytes.Buffer) []model.EnrichedEvent {
	var out []model.EnrichedEvent
	if err := json.Unmarshal(body.Bytes(), &out); err != nil {
		panic(err)
	}
	return out
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDeps{events: []model.EnrichedEvent{event("1", model.TypeIRL, model.StatusUpcoming)}}
		mux := newMux(deps)

		Convey("When hitting the health endpoint", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should serve metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When hitting the stats endpoint", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return the stats JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "started")
			})
		})

		Convey("When any endpoint responds", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then a request id header is set", func() {
				So(w.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
			})
		})
	})
}

func TestEventsHandler(t *testing.T) {
	Convey("Given an events handler with a mixed feed", t, func() {
		deps := &mockDeps{events: []model.EnrichedEvent{
			event("1", model.TypeIRL, model.StatusUpcoming),
			event("2", model.TypeRadio, model.StatusLive),
			event("3", model.TypeIRL, model.StatusPast),
			event("4", model.TypeVirtual, model.StatusUpcoming),
		}}
		mux := newMux(deps)

		Convey("When requesting all events", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then past events are excluded", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				out := decodeEvents(w.Body)
				So(out, ShouldHaveLength, 3)
				for _, e := range out {
					So(e.Status.Code, ShouldNotEqual, model.StatusPast)
				}
			})

			Convey("And the cache was not bypassed", func() {
				So(deps.lastForce, ShouldBeFalse)
			})
		})

		Convey("When filtering by type", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/events?type=IRL", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the filter is case-insensitive and past still excluded", func() {
				out := decodeEvents(w.Body)
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, "1")
			})
		})

		Convey("When filtering by an unknown type", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/events?type=opera", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the result is empty, not an error", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeEvents(w.Body), ShouldBeEmpty)
			})
		})

		Convey("When forcing a refresh", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/events?force=1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the bypass flag reaches the pipeline", func() {
				So(deps.lastForce, ShouldBeTrue)
			})
		})

		Convey("When the pipeline fails with a cache available", func() {
			deps.eventsErr = errors.New("upstream down")
			deps.cached = []model.EnrichedEvent{
				event("9", model.TypeRadio, model.StatusLive),
				event("10", model.TypeRadio, model.StatusPast),
			}
			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the stale cache is served, filtered the same way", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				out := decodeEvents(w.Body)
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, "9")
			})
		})

		Convey("When the pipeline fails with no cache", func() {
			deps.eventsErr = errors.New("upstream down")
			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then a retrievable-failure response is returned", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "upstream_unavailable")
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should not be found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestInterestHandler(t *testing.T) {
	Convey("Given an interest handler", t, func() {
		deps := &mockDeps{}
		mux := newMux(deps)

		post := func(path, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("When posting a going action", func() {
			w := post("/api/events/42/interest", `{"action":"going"}`)

			Convey("Then the counter pair is returned incremented", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"going":1`)
				So(w.Body.String(), ShouldContainSubstring, `"interested":0`)
			})
		})

		Convey("When posting going repeatedly", func() {
			post("/api/events/42/interest", `{"action":"going"}`)
			post("/api/events/42/interest", `{"action":"going"}`)
			w := post("/api/events/42/interest", `{"action":"going"}`)

			Convey("Then the counter grows by one per call", func() {
				So(w.Body.String(), ShouldContainSubstring, `"going":3`)
				So(w.Body.String(), ShouldContainSubstring, `"interested":0`)
			})
		})

		Convey("When posting an interested action", func() {
			w := post("/api/events/7/interest", `{"action":"interested"}`)

			Convey("Then only the interested counter moves", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"going":0`)
				So(w.Body.String(), ShouldContainSubstring, `"interested":1`)
			})
		})

		Convey("When posting an unknown action", func() {
			w := post("/api/events/42/interest", `{"action":"maybe"}`)

			Convey("Then it is a client error with no side effects", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "invalid_action")
				So(deps.interest, ShouldBeEmpty)
			})
		})

		Convey("When posting a malformed body", func() {
			w := post("/api/events/42/interest", `{`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "bad_request")
			})
		})

		Convey("When the path has no event id", func() {
			w := post("/api/events/interest", `{"action":"going"}`)

			Convey("Then it should not be found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the path does not end in /interest", func() {
			w := post("/api/events/42/something", `{"action":"going"}`)

			Convey("Then it should not be found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/events/42/interest", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should not be found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}
