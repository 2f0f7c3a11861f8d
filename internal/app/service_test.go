package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	service "github.com/okian/vibematch/internal/app"
	"github.com/okian/vibematch/internal/domain/engine"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/rooms"
	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/internal/domain/vibe"
	"github.com/okian/vibematch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		panic(err)
	}
}

var t0 = time.Date(2026, 5, 4, 22, 0, 0, 0, time.UTC)

// fakeClock is advanced manually by tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func event(id string, i int, ct types.ContentType, a types.Action, dwell int64, at time.Duration) model.InteractionEvent {
	return model.InteractionEvent{
		EventID:       id,
		ContentType:   ct,
		Action:        a,
		DwellMs:       dwell,
		Timestamp:     t0.Add(at),
		SequenceIndex: i,
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it serves the built-in catalog and holds no sessions", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["sessions"], ShouldEqual, 0)
			So(stats["catalogSource"], ShouldEqual, "builtin")
			So(stats["catalogItems"], ShouldBeGreaterThan, 0)
			So(stats["matchMetric"], ShouldEqual, "auto")
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a service backed by a catalog file", t, func() {
		path := filepath.Join(t.TempDir(), "catalog.json")
		So(os.WriteFile(path, []byte(`[{"id":"only","title":"Only","vector":{"scheme":"legacy5","axes":{"awe":1}}}]`), 0o600), ShouldBeNil)
		svc := service.New(service.WithCatalogPath(path), service.WithSessionTTL(time.Minute))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then the file replaces the built-in catalog", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["catalogItems"], ShouldEqual, 1)
				So(stats["catalogSource"], ShouldEqual, path)
			})

			Convey("Then starting again is a no-op and stop is idempotent", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
				svc.Stop()
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given a service whose catalog file is missing", t, func() {
		svc := service.New(service.WithCatalogPath("/does/not/exist.json"))

		Convey("Then Start fails", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})
}

func TestService_Sessions(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running service", t, func() {
		clock := &fakeClock{now: t0}
		svc := service.New(service.WithClock(clock.Now), service.WithMaxSessions(2), service.WithSessionTTL(time.Minute))

		Convey("When a session is created", func() {
			info, err := svc.CreateSession(ctx, "the-departure")
			So(err, ShouldBeNil)

			Convey("Then it can be described", func() {
				got, err := svc.Session(ctx, info.SessionID)
				So(err, ShouldBeNil)
				So(got.ContextID, ShouldEqual, "the-departure")
				So(got.EventCount, ShouldEqual, 0)
				So(got.CreatedAt, ShouldEqual, t0)
			})

			Convey("Then deleting it twice reports not found the second time", func() {
				So(svc.DeleteSession(ctx, info.SessionID), ShouldBeNil)
				So(errors.Is(svc.DeleteSession(ctx, info.SessionID), service.ErrSessionNotFound), ShouldBeTrue)
			})
		})

		Convey("When the session cap is reached", func() {
			_, _ = svc.CreateSession(ctx, "a")
			_, _ = svc.CreateSession(ctx, "b")
			_, err := svc.CreateSession(ctx, "c")
			So(errors.Is(err, service.ErrTooManySessions), ShouldBeTrue)
		})

		Convey("When a session sits idle past the TTL", func() {
			idle, _ := svc.CreateSession(ctx, "the-departure")
			clock.Advance(50 * time.Second)
			busy, _ := svc.CreateSession(ctx, "the-departure")
			clock.Advance(20 * time.Second)
			n := svc.EvictIdle(ctx)

			Convey("Then only the idle one is evicted", func() {
				So(n, ShouldEqual, 1)
				_, err := svc.Session(ctx, idle.SessionID)
				So(errors.Is(err, service.ErrSessionNotFound), ShouldBeTrue)
				_, err = svc.Session(ctx, busy.SessionID)
				So(err, ShouldBeNil)
			})
		})

		Convey("When an unknown session is used", func() {
			_, err := svc.RecordEvent(ctx, "nope", event("e", 0, types.ContentImage, types.ActionAccept, 1000, 0))
			So(errors.Is(err, service.ErrSessionNotFound), ShouldBeTrue)
			_, err = svc.Profile(ctx, "nope", "")
			So(errors.Is(err, service.ErrSessionNotFound), ShouldBeTrue)
			_, err = svc.Summary(ctx, "nope")
			So(errors.Is(err, service.ErrSessionNotFound), ShouldBeTrue)
			_, err = svc.Recommend(ctx, "nope", model.RecommendOptions{Count: 3})
			So(errors.Is(err, service.ErrSessionNotFound), ShouldBeTrue)
		})
	})
}

func TestService_RecordEvent(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session", t, func() {
		clock := &fakeClock{now: t0}
		svc := service.New(service.WithClock(clock.Now))
		info, err := svc.CreateSession(ctx, "the-departure")
		So(err, ShouldBeNil)
		id := info.SessionID

		Convey("When an event is recorded", func() {
			res, err := svc.RecordEvent(ctx, id, event("e1", 0, types.ContentImage, types.ActionAccept, 5000, 0))

			Convey("Then it is enriched and defaults the context to the session room", func() {
				So(err, ShouldBeNil)
				So(res.Duplicate, ShouldBeFalse)
				So(res.Event.DwellRatio, ShouldEqual, 1.0)
				So(res.Event.ContextID, ShouldEqual, "the-departure")
			})

			Convey("Then resubmitting the same event id is a duplicate and the log does not grow", func() {
				dup, err := svc.RecordEvent(ctx, id, event("e1", 1, types.ContentImage, types.ActionAccept, 5000, time.Second))
				So(err, ShouldBeNil)
				So(dup.Duplicate, ShouldBeTrue)
				So(dup.Event, ShouldBeNil)
				got, _ := svc.Session(ctx, id)
				So(got.EventCount, ShouldEqual, 1)
			})
		})

		Convey("When an event omits its index and timestamp", func() {
			ev := model.InteractionEvent{ContentType: types.ContentText, Action: types.ActionSkip, DwellMs: 400, SequenceIndex: -1}
			res, err := svc.RecordEvent(ctx, id, ev)

			Convey("Then the next index and the clock are used", func() {
				So(err, ShouldBeNil)
				So(res.Event.SequenceIndex, ShouldEqual, 0)
				So(res.Event.Timestamp, ShouldEqual, t0)
			})
		})

		Convey("When an invalid event is rejected", func() {
			_, err := svc.RecordEvent(ctx, id, event("bad", 0, types.ContentType("hologram"), types.ActionAccept, 100, 0))
			So(errors.Is(err, engine.ErrInvalidContentType), ShouldBeTrue)

			Convey("Then its id can be retried once corrected", func() {
				res, err := svc.RecordEvent(ctx, id, event("bad", 0, types.ContentImage, types.ActionAccept, 100, 0))
				So(err, ShouldBeNil)
				So(res.Duplicate, ShouldBeFalse)
			})
		})

		Convey("When the same event id is used in another session", func() {
			other, _ := svc.CreateSession(ctx, "the-departure")
			_, _ = svc.RecordEvent(ctx, id, event("shared", 0, types.ContentImage, types.ActionAccept, 100, 0))
			res, err := svc.RecordEvent(ctx, other.SessionID, event("shared", 0, types.ContentImage, types.ActionAccept, 100, 0))

			Convey("Then it is not a duplicate there", func() {
				So(err, ShouldBeNil)
				So(res.Duplicate, ShouldBeFalse)
			})
		})

		Convey("When three quick skips are recorded", func() {
			var anomalies []model.Anomaly
			for i := 0; i < 3; i++ {
				res, err := svc.RecordEvent(ctx, id, event(fmt.Sprintf("s%d", i), i, types.ContentImage, types.ActionSkip, 200, time.Duration(i)*time.Second))
				So(err, ShouldBeNil)
				anomalies = append(anomalies, res.Anomalies...)
			}

			Convey("Then a rush is reported and the profile reflects it", func() {
				So(anomalies, ShouldHaveLength, 1)
				So(anomalies[0].Type, ShouldEqual, types.AnomalyRush)
				p, err := svc.Profile(ctx, id, "")
				So(err, ShouldBeNil)
				So(p.EventCount, ShouldEqual, 3)
				So(p.Anomalies, ShouldResemble, anomalies)
			})

			Convey("Then the summary counts the skips", func() {
				sum, err := svc.Summary(ctx, id)
				So(err, ShouldBeNil)
				So(sum.Skipped, ShouldEqual, 3)
			})

			Convey("Then recommendations come back ranked", func() {
				recs, err := svc.Recommend(ctx, id, model.RecommendOptions{Count: 3})
				So(err, ShouldBeNil)
				So(recs, ShouldHaveLength, 3)
				So(recs[0].Score, ShouldBeGreaterThanOrEqualTo, recs[1].Score)
			})
		})
	})
}

func TestService_ConcurrentSessions(t *testing.T) {
	ctx := context.Background()

	Convey("Given many sessions fed in parallel", t, func() {
		svc := service.New()
		const sessions = 16
		const perSession = 20
		ids := make([]string, sessions)
		for i := range ids {
			info, err := svc.CreateSession(ctx, "the-reverie")
			So(err, ShouldBeNil)
			ids[i] = info.SessionID
		}

		var wg sync.WaitGroup
		errs := make(chan error, sessions*perSession)
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				for j := 0; j < perSession; j++ {
					_, err := svc.RecordEvent(ctx, id, event(fmt.Sprintf("e%d", j), j, types.ContentVideo, types.ActionAccept, 9000, time.Duration(j)*time.Second))
					if err != nil {
						errs <- err
					}
				}
			}(id)
		}
		wg.Wait()
		close(errs)

		Convey("Then every session holds exactly its own events", func() {
			So(len(errs), ShouldEqual, 0)
			for _, id := range ids {
				info, err := svc.Session(ctx, id)
				So(err, ShouldBeNil)
				So(info.EventCount, ShouldEqual, perSession)
			}
		})
	})
}

func TestService_Stateless(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service", t, func() {
		svc := service.New(service.WithRouteSeed(7), service.WithClock(func() time.Time { return t0 }))

		Convey("When a log is profiled without a session", func() {
			p, err := svc.BuildProfile(ctx, "the-departure", []model.InteractionEvent{
				event("", 0, types.ContentImage, types.ActionAccept, 5000, 0),
				event("", 1, types.ContentVideo, types.ActionAccept, 12000, time.Second),
			})

			Convey("Then the profile is returned", func() {
				So(err, ShouldBeNil)
				So(p.EventCount, ShouldEqual, 2)
				So(p.ContextID, ShouldEqual, "the-departure")
			})
		})

		Convey("When recommending for an explicit vector", func() {
			v := vibe.Vector{Scheme: vibe.SchemeLegacy5, Values: []float64{0.9, 0.8, 0.2, 0.7, 0.4}}
			recs, err := svc.RecommendVector(ctx, v, model.RecommendOptions{Count: 2})
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 2)

			_, err = svc.RecommendVector(ctx, vibe.Vector{Scheme: vibe.SchemeLegacy5, Values: []float64{2}}, model.RecommendOptions{Count: 2})
			So(err, ShouldNotBeNil)
		})

		Convey("When routing prompts", func() {
			res, err := svc.Route(ctx, "somewhere with mountains", rooms.CategoryTravel)
			So(err, ShouldBeNil)
			So(res.Room, ShouldNotBeEmpty)
			_, err = svc.Route(ctx, "anything", rooms.Category("food"))
			So(errors.Is(err, rooms.ErrUnknownCategory), ShouldBeTrue)
		})

		Convey("When reloading without a catalog path", func() {
			_, err := svc.ReloadCatalog(ctx)
			So(err, ShouldNotBeNil)
		})
	})
}
