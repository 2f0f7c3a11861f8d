// Package engine exposes the profiling and matching entry points.
//
// The engine is synchronous and holds no per-session state: RecordEvent
// appends to a caller-owned Session, BuildProfile is a pure function of an
// event log, and Recommend reads only the current catalog snapshot. Building
// a profile after every event gives the same result as one batch build over
// the full log.
package engine

import (
	"fmt"
	"time"

	"github.com/okian/vibematch/internal/domain/behavior"
	"github.com/okian/vibematch/internal/domain/match"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/scoring"
)

// Catalog provides the current read-only catalog. Implementations must
// return a slice that is never modified afterwards.
type Catalog interface {
	Items() []model.CatalogItem
}

// StaticCatalog is a Catalog over a fixed slice.
type StaticCatalog []model.CatalogItem

// Items returns the slice itself.
func (c StaticCatalog) Items() []model.CatalogItem { return c }

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithScorer sets the event scorer.
func WithScorer(s *scoring.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithMatcher sets the catalog matcher.
func WithMatcher(m *match.Matcher) Option {
	return func(e *Engine) {
		if m != nil {
			e.matcher = m
		}
	}
}

// WithCatalog sets the catalog provider.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithObserver sets the observer notified of engine activity.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// Engine wires the scorer, behavior analysis and matcher together.
// It is safe for concurrent use across distinct sessions.
type Engine struct {
	scorer   *scoring.Scorer
	matcher  *match.Matcher
	catalog  Catalog
	observer Observer
}

// New creates an Engine with default scorer and matcher, an empty catalog
// and no observer.
func New(opts ...Option) *Engine {
	e := &Engine{
		scorer:   scoring.New(),
		matcher:  match.New(),
		catalog:  StaticCatalog(nil),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RecordResult is the outcome of RecordEvent.
type RecordResult struct {
	Event     model.EnrichedEvent `json:"event"`
	Anomalies []model.Anomaly     `json:"anomalies"`
}

// RecordEvent validates and enriches ev, appends it to s and returns the
// enriched event with the anomalies it newly triggered. On error s is
// unchanged.
func (e *Engine) RecordEvent(s *Session, ev model.InteractionEvent) (RecordResult, error) {
	if s == nil {
		return RecordResult{}, ErrNilSession
	}
	if err := checkOrder(s.last(), s.Len(), ev); err != nil {
		return RecordResult{}, err
	}
	en, err := e.scorer.Enrich(ev)
	if err != nil {
		return RecordResult{}, fmt.Errorf("event %d: %w", ev.SequenceIndex, err)
	}

	s.log = append(s.log, en)
	added := s.anomalies.Add(behavior.Detect(s.log)...)
	if added == nil {
		added = []model.Anomaly{}
	}

	e.observer.EventRecorded(s.id, en)
	for _, a := range added {
		e.observer.AnomalyDetected(s.id, a)
	}
	return RecordResult{Event: en, Anomalies: added}, nil
}

// BuildProfile validates and enriches log and builds its profile. It has no
// side effects besides the observer notification.
func (e *Engine) BuildProfile(log []model.InteractionEvent, contextID string) (model.BehavioralProfile, error) {
	enriched, err := e.EnrichLog(log)
	if err != nil {
		return model.BehavioralProfile{}, err
	}
	return e.profile(enriched, contextID), nil
}

// SessionProfile builds the profile of an already-validated session log in
// contextID, or in the session's own room when contextID is empty.
func (e *Engine) SessionProfile(s *Session, contextID string) (model.BehavioralProfile, error) {
	if s == nil {
		return model.BehavioralProfile{}, ErrNilSession
	}
	if contextID == "" {
		contextID = s.contextID
	}
	return e.profile(s.log, contextID), nil
}

// Summary digests a session.
func (e *Engine) Summary(s *Session) (model.SessionSummary, error) {
	p, err := e.SessionProfile(s, "")
	if err != nil {
		return model.SessionSummary{}, err
	}
	return behavior.Summarize(s.log, p), nil
}

// EnrichLog validates the ordering of log and enriches every event.
func (e *Engine) EnrichLog(log []model.InteractionEvent) ([]model.EnrichedEvent, error) {
	out := make([]model.EnrichedEvent, 0, len(log))
	for i, ev := range log {
		var prev *model.EnrichedEvent
		if i > 0 {
			prev = &out[i-1]
		}
		if err := checkOrder(prev, i, ev); err != nil {
			return nil, err
		}
		en, err := e.scorer.Enrich(ev)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, en)
	}
	return out, nil
}

// Recommend ranks the current catalog against q.
func (e *Engine) Recommend(q match.Query, count int) []model.Recommendation {
	start := time.Now()
	recs := e.matcher.Recommend(q, e.catalog.Items(), count)
	e.observer.Recommended(q.ContextID, len(recs), time.Since(start))
	return recs
}

func (e *Engine) profile(log []model.EnrichedEvent, contextID string) model.BehavioralProfile {
	start := time.Now()
	p := behavior.Build(log, contextID)
	e.observer.ProfileBuilt(p, time.Since(start))
	return p
}

// checkOrder enforces sequenceIndex == position and non-decreasing timestamps.
func checkOrder(prev *model.EnrichedEvent, position int, ev model.InteractionEvent) error {
	if ev.SequenceIndex != position {
		return fmt.Errorf("%w: sequence index %d, expected %d", ErrInvalidEventOrdering, ev.SequenceIndex, position)
	}
	if prev != nil && ev.Timestamp.Before(prev.Timestamp) {
		return fmt.Errorf("%w: event %d at %s is before %s",
			ErrInvalidEventOrdering, position, ev.Timestamp.Format(time.RFC3339Nano), prev.Timestamp.Format(time.RFC3339Nano))
	}
	return nil
}
