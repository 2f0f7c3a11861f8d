package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/okian/vibematch/internal/adapters/http/api"
	service "github.com/okian/vibematch/internal/app"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/rooms"
	"github.com/okian/vibematch/internal/domain/routing"
	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/internal/domain/vibe"
	"github.com/okian/vibematch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type mockDeps struct {
	sessions map[string]model.SessionInfo
	events   map[string][]model.InteractionEvent
	seen     map[string]bool

	lastOpts     model.RecommendOptions
	lastVector   vibe.Vector
	lastCategory rooms.Category
	lastContext  string
	lastLog      []model.InteractionEvent

	createErr error
	reloadErr error
}

func newMockDeps() *mockDeps {
	return &mockDeps{
		sessions: map[string]model.SessionInfo{},
		events:   map[string][]model.InteractionEvent{},
		seen:     map[string]bool{},
	}
}

func (m *mockDeps) CreateSession(_ context.Context, contextID string) (model.SessionInfo, error) {
	if m.createErr != nil {
		return model.SessionInfo{}, m.createErr
	}
	info := model.SessionInfo{SessionID: "s1", ContextID: contextID, CreatedAt: time.Unix(0, 0).UTC()}
	m.sessions[info.SessionID] = info
	return info, nil
}

func (m *mockDeps) Session(_ context.Context, id string) (model.SessionInfo, error) {
	info, ok := m.sessions[id]
	if !ok {
		return model.SessionInfo{}, service.ErrSessionNotFound
	}
	info.EventCount = len(m.events[id])
	return info, nil
}

func (m *mockDeps) DeleteSession(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *mockDeps) RecordEvent(_ context.Context, id string, ev model.InteractionEvent) (model.EventResult, error) {
	if _, ok := m.sessions[id]; !ok {
		return model.EventResult{}, service.ErrSessionNotFound
	}
	if ev.EventID != "" && m.seen[ev.EventID] {
		return model.EventResult{Duplicate: true}, nil
	}
	m.seen[ev.EventID] = true
	ev.SequenceIndex = len(m.events[id])
	m.events[id] = append(m.events[id], ev)
	return model.EventResult{Event: &model.EnrichedEvent{InteractionEvent: ev, DwellRatio: 0.5}}, nil
}

func (m *mockDeps) Profile(_ context.Context, id, contextID string) (model.BehavioralProfile, error) {
	info, ok := m.sessions[id]
	if !ok {
		return model.BehavioralProfile{}, service.ErrSessionNotFound
	}
	if contextID == "" {
		contextID = info.ContextID
	}
	return model.BehavioralProfile{ContextID: contextID, EventCount: len(m.events[id])}, nil
}

func (m *mockDeps) Summary(_ context.Context, id string) (model.SessionSummary, error) {
	if _, ok := m.sessions[id]; !ok {
		return model.SessionSummary{}, service.ErrSessionNotFound
	}
	return model.SessionSummary{TotalSeen: len(m.events[id])}, nil
}

func (m *mockDeps) BuildProfile(_ context.Context, contextID string, log []model.InteractionEvent) (model.BehavioralProfile, error) {
	m.lastContext = contextID
	m.lastLog = log
	return model.BehavioralProfile{ContextID: contextID, EventCount: len(log)}, nil
}

func (m *mockDeps) Recommend(_ context.Context, id string, opts model.RecommendOptions) ([]model.Recommendation, error) {
	if _, ok := m.sessions[id]; !ok {
		return nil, service.ErrSessionNotFound
	}
	m.lastOpts = opts
	return []model.Recommendation{{Item: model.CatalogItem{ID: "m1", Title: "Stalker"}, Score: 0.9, Reason: "x"}}, nil
}

func (m *mockDeps) RecommendVector(_ context.Context, v vibe.Vector, opts model.RecommendOptions) ([]model.Recommendation, error) {
	m.lastVector = v
	m.lastOpts = opts
	return nil, nil
}

func (m *mockDeps) Route(_ context.Context, prompt string, c rooms.Category) (routing.Result, error) {
	m.lastCategory = c
	return routing.Result{Room: "the-vinyl", Keyword: "memory"}, nil
}

func (m *mockDeps) ReloadCatalog(context.Context) (int, error) {
	if m.reloadErr != nil {
		return 0, m.reloadErr
	}
	return 12, nil
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"sessions": len(m.sessions)}
}

func newTestServer(deps api.Dependencies, opts ...api.Option) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, opts...).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func do(srv *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	So(err, ShouldBeNil)
	resp, err := srv.Client().Do(req)
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	So(err, ShouldBeNil)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		So(json.Unmarshal(raw, &out), ShouldBeNil)
	}
	return resp, out
}

func TestSessionsAndEvents(t *testing.T) {
	_ = logger.Init(logger.WithWriter(io.Discard))

	Convey("Given an API server over mock dependencies", t, func() {
		deps := newMockDeps()
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When a session is created", func() {
			resp, body := do(srv, http.MethodPost, "/sessions", `{"context_id":"the-vinyl"}`)

			Convey("Then it returns 201 with the session id and a Location header", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				So(body["session_id"], ShouldEqual, "s1")
				So(body["context_id"], ShouldEqual, "the-vinyl")
				So(resp.Header.Get("Location"), ShouldEqual, "/sessions/s1")
			})

			Convey("And an event is posted", func() {
				payload := `{"event_id":"e1","content_type":"image","action":"like","dwell_ms":4000}`
				resp, body := do(srv, http.MethodPost, "/sessions/s1/events", payload)

				Convey("Then it is recorded with the alias resolved", func() {
					So(resp.StatusCode, ShouldEqual, http.StatusCreated)
					So(body["status"], ShouldEqual, "recorded")
					So(deps.events["s1"], ShouldHaveLength, 1)
					So(deps.events["s1"][0].Action, ShouldEqual, types.ActionAccept)
					So(body["anomalies"], ShouldResemble, []any{})
				})

				Convey("Then replaying the same event id is acknowledged as a duplicate", func() {
					resp, body := do(srv, http.MethodPost, "/sessions/s1/events", payload)
					So(resp.StatusCode, ShouldEqual, http.StatusOK)
					So(body["duplicate"], ShouldEqual, true)
					So(deps.events["s1"], ShouldHaveLength, 1)
				})
			})

			Convey("And the session is fetched then deleted", func() {
				resp, _ := do(srv, http.MethodGet, "/sessions/s1", "")
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				resp, _ = do(srv, http.MethodDelete, "/sessions/s1", "")
				So(resp.StatusCode, ShouldEqual, http.StatusNoContent)

				resp, body := do(srv, http.MethodGet, "/sessions/s1", "")
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
				So(body["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When the session cap is reached", func() {
			deps.createErr = service.ErrTooManySessions
			resp, body := do(srv, http.MethodPost, "/sessions", `{"context_id":"the-vinyl"}`)

			Convey("Then it answers 429", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusTooManyRequests)
				So(body["code"], ShouldEqual, "backpressure")
			})
		})

		Convey("When requests are malformed", func() {
			deps.sessions["s1"] = model.SessionInfo{SessionID: "s1", ContextID: "the-vinyl"}
			for _, body := range []string{`{}`, `{"context_id":"x","extra":1}`, `nope`} {
				resp, _ := do(srv, http.MethodPost, "/sessions", body)
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			}

			events := []string{
				`{"content_type":"hologram","action":"accept","dwell_ms":10}`,
				`{"content_type":"text","action":"shrug","dwell_ms":10}`,
				`{"content_type":"text","action":"accept"}`,
				`{"content_type":"text","action":"accept","dwell_ms":10,"ts":"yesterday"}`,
				`{"content_type":"text","action":"accept","dwell_ms":10,"sequence_index":-2}`,
			}
			for _, body := range events {
				resp, _ := do(srv, http.MethodPost, "/sessions/s1/events", body)
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			}
			So(deps.events["s1"], ShouldBeEmpty)
		})

		Convey("When an event targets an unknown session", func() {
			resp, _ := do(srv, http.MethodPost, "/sessions/nope/events",
				`{"content_type":"text","action":"accept","dwell_ms":10}`)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestProfilesAndRecommendations(t *testing.T) {
	_ = logger.Init(logger.WithWriter(io.Discard))

	Convey("Given a server with one live session", t, func() {
		deps := newMockDeps()
		deps.sessions["s1"] = model.SessionInfo{SessionID: "s1", ContextID: "the-vinyl"}
		srv := newTestServer(deps, api.WithRecommendCounts(5, 10))
		defer srv.Close()

		Convey("Then the profile honours a context override", func() {
			resp, body := do(srv, http.MethodGet, "/sessions/s1/profile?context_id=the-gallery", "")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["context_id"], ShouldEqual, "the-gallery")
		})

		Convey("Then the summary is served", func() {
			resp, body := do(srv, http.MethodGet, "/sessions/s1/summary", "")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["total_seen"], ShouldEqual, 0.0)
		})

		Convey("Then recommendation counts default and clamp", func() {
			resp, body := do(srv, http.MethodGet, "/sessions/s1/recommendations", "")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["count"], ShouldEqual, 1.0)
			So(deps.lastOpts.Count, ShouldEqual, 5)

			resp, _ = do(srv, http.MethodGet, "/sessions/s1/recommendations?count=500&genre=Drama", "")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(deps.lastOpts.Count, ShouldEqual, 10)
			So(deps.lastOpts.Genre, ShouldEqual, "Drama")

			resp, _ = do(srv, http.MethodGet, "/sessions/s1/recommendations?count=abc", "")
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then a raw vector is decoded by scheme", func() {
			resp, body := do(srv, http.MethodPost, "/recommendations",
				`{"vector":{"scheme":"mood4","axes":{"intensity":0.7,"darkness":0.2}},"count":3}`)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["recommendations"], ShouldResemble, []any{})
			So(deps.lastVector.Scheme, ShouldEqual, vibe.SchemeMood4)
			So(deps.lastVector.Get(vibe.MoodIntensity), ShouldEqual, 0.7)
			So(deps.lastOpts.Count, ShouldEqual, 3)

			resp, _ = do(srv, http.MethodPost, "/recommendations", `{"vector":{"axes":{"awe":1}}}`)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then a batch profile numbers missing indices by position", func() {
			body := `{"context_id":"the-vinyl","events":[
				{"content_type":"text","action":"accept","dwell_ms":9000,"ts":"2026-03-01T12:00:00Z"},
				{"content_type":"video","action":"reject","dwell_ms":800,"ts":"2026-03-01T12:00:05Z"}]}`
			resp, out := do(srv, http.MethodPost, "/profile", body)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(out["event_count"], ShouldEqual, 2.0)
			So(deps.lastLog[1].SequenceIndex, ShouldEqual, 1)
			So(deps.lastLog[1].Action, ShouldEqual, types.ActionReject)

			resp, _ = do(srv, http.MethodPost, "/profile",
				`{"context_id":"the-vinyl","events":[{"content_type":"text","action":"accept","dwell_ms":1}]}`)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRouteCatalogAndOps(t *testing.T) {
	_ = logger.Init(logger.WithWriter(io.Discard))

	Convey("Given a server", t, func() {
		deps := newMockDeps()
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("Then a prompt is routed within its category", func() {
			resp, body := do(srv, http.MethodPost, "/route", `{"prompt":"an old memory","category":"music"}`)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["room"], ShouldEqual, "the-vinyl")
			So(deps.lastCategory, ShouldEqual, rooms.Category("music"))

			resp, _ = do(srv, http.MethodPost, "/route", `{"prompt":"x","category":"cooking"}`)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then a catalog reload reports the item count", func() {
			resp, body := do(srv, http.MethodPost, "/catalog/reload", "")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["items"], ShouldEqual, 12.0)
		})

		Convey("Then an unexpected reload failure is a 500", func() {
			deps.reloadErr = errors.New("disk on fire")
			resp, body := do(srv, http.MethodPost, "/catalog/reload", "")
			So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)
			So(body["code"], ShouldEqual, "internal_error")
		})

		Convey("Then health, stats and metrics are served", func() {
			resp, body := do(srv, http.MethodGet, "/healthz", "")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["status"], ShouldEqual, "ok")

			resp, body = do(srv, http.MethodGet, "/stats", "")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body, ShouldContainKey, "sessions")

			resp, _ = do(srv, http.MethodGet, "/metrics", "")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("Then the wrong method is refused by the mux", func() {
			resp, _ := do(srv, http.MethodGet, "/route", "")
			So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestRateLimit(t *testing.T) {
	_ = logger.Init(logger.WithWriter(io.Discard))

	Convey("Given an event rate limit with a burst of one", t, func() {
		deps := newMockDeps()
		deps.sessions["s1"] = model.SessionInfo{SessionID: "s1"}
		srv := newTestServer(deps, api.WithEventRateLimit(0.001, 1))
		defer srv.Close()

		Convey("When two events arrive back to back", func() {
			first, _ := do(srv, http.MethodPost, "/sessions/s1/events", `{"content_type":"text","action":"skip","dwell_ms":1}`)
			second, body := do(srv, http.MethodPost, "/sessions/s1/events", `{"content_type":"text","action":"skip","dwell_ms":1}`)

			Convey("Then the second is refused with backpressure", func() {
				So(first.StatusCode, ShouldEqual, http.StatusCreated)
				So(second.StatusCode, ShouldEqual, http.StatusTooManyRequests)
				So(body["code"], ShouldEqual, "backpressure")
				So(second.Header.Get("Retry-After"), ShouldNotBeEmpty)
			})
		})
	})
}

func TestErrorKinds(t *testing.T) {
	Convey("Given service errors", t, func() {
		Convey("Then Wrap classifies them and keeps the cause", func() {
			err := api.Wrap("op", service.ErrSessionNotFound)
			So(errors.Is(err, api.ErrNotFound), ShouldBeTrue)
			So(errors.Is(err, service.ErrSessionNotFound), ShouldBeTrue)

			err = api.Wrap("op", rooms.ErrUnknownCategory)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)

			So(api.Wrap("op", nil), ShouldBeNil)
			So(errors.Is(api.Wrap("op", errors.New("boom")), api.ErrInternal), ShouldBeTrue)
		})
	})
}
