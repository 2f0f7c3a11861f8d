package engine_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/vibematch/internal/domain/behavior"
	"github.com/okian/vibematch/internal/domain/engine"
	"github.com/okian/vibematch/internal/domain/match"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/internal/domain/vibe"
	. "github.com/smartystreets/goconvey/convey"
)

var t0 = time.Date(2026, 5, 4, 22, 0, 0, 0, time.UTC)

func ev(i int, ct types.ContentType, a types.Action, dwell, atMs int64) model.InteractionEvent {
	return model.InteractionEvent{
		EventID:       "ev-" + string(rune('a'+i)),
		ContentType:   ct,
		ContextID:     "the-departure",
		Action:        a,
		DwellMs:       dwell,
		Timestamp:     t0.Add(time.Duration(atMs) * time.Millisecond),
		SequenceIndex: i,
	}
}

func sampleLog() []model.InteractionEvent {
	return []model.InteractionEvent{
		ev(0, types.ContentImage, types.ActionAccept, 4000, 0),
		ev(1, types.ContentVideo, types.ActionReject, 30000, 6000),
		ev(2, types.ContentImage, types.ActionSkip, 200, 40000),
		ev(3, types.ContentImage, types.ActionSkip, 200, 41000),
		ev(4, types.ContentImage, types.ActionSkip, 200, 42000),
		ev(5, types.ContentSound, types.ActionAccept, 50000, 60000),
	}
}

type recorder struct {
	mu        sync.Mutex
	events    int
	anomalies []model.Anomaly
	profiles  int
	recs      int
}

func (r *recorder) EventRecorded(string, model.EnrichedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events++
}

func (r *recorder) AnomalyDetected(_ string, a model.Anomaly) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.anomalies = append(r.anomalies, a)
}

func (r *recorder) ProfileBuilt(model.BehavioralProfile, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles++
}

func (r *recorder) Recommended(string, int, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs++
}

func TestRecordEvent(t *testing.T) {
	Convey("Given an engine and an empty session", t, func() {
		rec := &recorder{}
		e := engine.New(engine.WithObserver(rec))
		s := engine.NewSession("s1", "the-departure")

		Convey("When the sample log is recorded event by event", func() {
			var all []model.Anomaly
			for _, in := range sampleLog() {
				res, err := e.RecordEvent(s, in)
				So(err, ShouldBeNil)
				So(res.Anomalies, ShouldNotBeNil)
				all = append(all, res.Anomalies...)
			}

			Convey("Then the log grows and every event is enriched", func() {
				So(s.Len(), ShouldEqual, 6)
				So(s.Events()[0].DwellRatio, ShouldAlmostEqual, 0.8, 1e-9)
				So(s.Raw()[5].ContentType, ShouldEqual, types.ContentSound)
			})

			Convey("Then incremental anomalies equal a batch scan of the whole log", func() {
				So(all, ShouldResemble, behavior.DetectAll(s.Events()))
				So(s.Anomalies(), ShouldResemble, all)
			})

			Convey("Then the observer saw every event and anomaly", func() {
				So(rec.events, ShouldEqual, 6)
				So(len(rec.anomalies), ShouldEqual, len(all))
			})

			Convey("Then the session profile equals the batch profile", func() {
				inc, err := e.SessionProfile(s, "")
				So(err, ShouldBeNil)
				batch, err := e.BuildProfile(sampleLog(), "the-departure")
				So(err, ShouldBeNil)
				So(inc, ShouldResemble, batch)
				So(batch.EventCount, ShouldEqual, 6)
				So(rec.profiles, ShouldEqual, 2)
			})

			Convey("Then the summary counts actions", func() {
				sum, err := e.Summary(s)
				So(err, ShouldBeNil)
				So(sum.TotalSeen, ShouldEqual, 6)
				So(sum.Accepted, ShouldEqual, 2)
				So(sum.Rejected, ShouldEqual, 1)
				So(sum.Skipped, ShouldEqual, 3)
			})
		})

		Convey("When an event arrives with the wrong sequence index", func() {
			_, err := e.RecordEvent(s, ev(3, types.ContentImage, types.ActionSkip, 100, 0))

			Convey("Then it is rejected and the session is untouched", func() {
				So(errors.Is(err, engine.ErrInvalidEventOrdering), ShouldBeTrue)
				So(s.Len(), ShouldEqual, 0)
				So(rec.events, ShouldEqual, 0)
			})
		})

		Convey("When an event is earlier than its predecessor", func() {
			_, err := e.RecordEvent(s, ev(0, types.ContentImage, types.ActionSkip, 100, 5000))
			So(err, ShouldBeNil)
			_, err = e.RecordEvent(s, ev(1, types.ContentImage, types.ActionSkip, 100, 4000))

			Convey("Then it is rejected as out of order", func() {
				So(errors.Is(err, engine.ErrInvalidEventOrdering), ShouldBeTrue)
				So(s.Len(), ShouldEqual, 1)
			})
		})

		Convey("When an event has an equal timestamp", func() {
			_, err := e.RecordEvent(s, ev(0, types.ContentImage, types.ActionSkip, 100, 5000))
			So(err, ShouldBeNil)
			_, err = e.RecordEvent(s, ev(1, types.ContentImage, types.ActionSkip, 100, 5000))

			Convey("Then it is accepted", func() {
				So(err, ShouldBeNil)
				So(s.Len(), ShouldEqual, 2)
			})
		})

		Convey("When invalid events are submitted", func() {
			bad := ev(0, types.ContentType("hologram"), types.ActionSkip, 100, 0)
			_, errType := e.RecordEvent(s, bad)
			neg := ev(0, types.ContentImage, types.ActionSkip, -1, 0)
			_, errDwell := e.RecordEvent(s, neg)
			act := ev(0, types.ContentImage, types.Action("maybe"), 100, 0)
			_, errAction := e.RecordEvent(s, act)

			Convey("Then each is rejected with its error and nothing is appended", func() {
				So(errors.Is(errType, engine.ErrInvalidContentType), ShouldBeTrue)
				So(errors.Is(errDwell, engine.ErrNegativeDwell), ShouldBeTrue)
				So(errors.Is(errAction, engine.ErrInvalidAction), ShouldBeTrue)
				So(s.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a nil session is used", func() {
			_, err := e.RecordEvent(nil, ev(0, types.ContentImage, types.ActionSkip, 100, 0))
			So(errors.Is(err, engine.ErrNilSession), ShouldBeTrue)
		})
	})
}

func TestBuildProfile(t *testing.T) {
	Convey("Given an engine", t, func() {
		e := engine.New()

		Convey("When the log is empty", func() {
			p, err := e.BuildProfile(nil, "the-departure")

			Convey("Then the neutral profile is returned", func() {
				So(err, ShouldBeNil)
				So(p.EventCount, ShouldEqual, 0)
				So(p.EnergyLevel, ShouldEqual, 0.5)
				So(p.Trajectory, ShouldEqual, types.TrajectorySearching)
				So(p.DecisionStyle, ShouldEqual, types.DecisionAmbiguous)
				So(p.Vibe.IsZero(), ShouldBeTrue)
				So(p.Anomalies, ShouldBeEmpty)
			})
		})

		Convey("When the log has a gap in sequence indices", func() {
			log := sampleLog()
			log[2].SequenceIndex = 7
			_, err := e.BuildProfile(log, "the-departure")
			So(errors.Is(err, engine.ErrInvalidEventOrdering), ShouldBeTrue)
		})

		Convey("When the same log is built twice", func() {
			a, _ := e.BuildProfile(sampleLog(), "the-departure")
			b, _ := e.BuildProfile(sampleLog(), "the-departure")
			So(a, ShouldResemble, b)
		})
	})
}

func TestRecommend(t *testing.T) {
	Convey("Given an engine over a small legacy catalog", t, func() {
		rec := &recorder{}
		item := func(id string, vals ...float64) model.CatalogItem {
			return model.CatalogItem{ID: id, Title: id, Rating: 7, Vector: vibe.Vector{Scheme: vibe.SchemeLegacy5, Values: vals}}
		}
		cat := engine.StaticCatalog{
			item("calm", 0.1, 0.9, 0.2, 0.8, 0.1),
			item("loud", 0.9, 0.1, 0.9, 0.1, 0.9),
		}
		e := engine.New(engine.WithCatalog(cat), engine.WithObserver(rec))

		Convey("When asked for one match to a calm vector", func() {
			q := vibe.Vector{Scheme: vibe.SchemeLegacy5, Values: []float64{0.1, 0.9, 0.2, 0.8, 0.1}}
			recs := e.Recommend(match.FromVector(q, "the-departure"), 1)

			Convey("Then the calm item ranks first", func() {
				So(recs, ShouldHaveLength, 1)
				So(recs[0].Item.ID, ShouldEqual, "calm")
				So(rec.recs, ShouldEqual, 1)
			})
		})

		Convey("When the engine has no catalog", func() {
			empty := engine.New()
			q := vibe.Vector{Scheme: vibe.SchemeLegacy5, Values: []float64{0.1, 0.9, 0.2, 0.8, 0.1}}
			So(empty.Recommend(match.FromVector(q, ""), 5), ShouldBeEmpty)
		})
	})
}

func TestMultiObserver(t *testing.T) {
	Convey("Given two recorders behind a MultiObserver", t, func() {
		a, b := &recorder{}, &recorder{}
		e := engine.New(engine.WithObserver(engine.MultiObserver{a, b}))
		s := engine.NewSession("s1", "the-departure")

		Convey("When an event is recorded", func() {
			_, err := e.RecordEvent(s, ev(0, types.ContentImage, types.ActionAccept, 4000, 0))
			So(err, ShouldBeNil)

			Convey("Then both observers are notified", func() {
				So(a.events, ShouldEqual, 1)
				So(b.events, ShouldEqual, 1)
			})
		})
	})
}
