// Package service wires the engine, catalog, dedupe and routing into the
// session-oriented service behind the HTTP API.
package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/vibematch/internal/adapters/catalog"
	"github.com/okian/vibematch/internal/domain/dedupe"
	"github.com/okian/vibematch/internal/domain/engine"
	"github.com/okian/vibematch/internal/domain/match"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/rooms"
	"github.com/okian/vibematch/internal/domain/routing"
	"github.com/okian/vibematch/internal/domain/scoring"
	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/internal/domain/vibe"
	"github.com/okian/vibematch/pkg/logger"
	"github.com/okian/vibematch/pkg/metrics"
)

// Service errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

type sessionEntry struct {
	mu        sync.Mutex
	session   *engine.Session
	createdAt time.Time
	lastSeen  time.Time
}

// Service implements the API dependencies for vibematch.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine  *engine.Engine
	catalog *catalog.Store
	deduper dedupe.Deduper
	routeMu sync.Mutex
	router  *routing.Router

	sessMu   sync.RWMutex
	sessions map[string]*sessionEntry

	// Configuration
	dedupeSize    int
	maxSessions   int
	sessionTTL    time.Duration
	catalogPath   string
	catalogItems  []model.CatalogItem
	metric        match.Metric
	expectedDwell map[types.ContentType]int64
	routeSeed     int64
	clock         func() time.Time
	observers     []engine.Observer

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	logger logger.Logger
}

// New constructs a Service. Components are ready for use immediately; Start
// loads the catalog file and begins idle-session eviction.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize:  50_000,
		maxSessions: 10_000,
		sessionTTL:  30 * time.Minute,
		metric:      match.MetricAuto,
		clock:       time.Now,
		sessions:    make(map[string]*sessionEntry),
		stopCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	seed := s.routeSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.router = routing.New(rand.New(rand.NewSource(seed)), routing.WithClock(s.clock)) //nolint:gosec // routing fallback, not security

	s.catalog = catalog.NewStore(
		catalog.WithPath(s.catalogPath),
		catalog.WithItems(s.catalogItems),
		catalog.WithLogger(s.logger.Named("catalog")),
	)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	obs := append([]engine.Observer{newLogObserver(s.logger.Named("engine")), metrics.Observer{}}, s.observers...)
	s.engine = engine.New(
		engine.WithScorer(scoring.New(scoring.WithExpectedDwell(s.expectedDwell))),
		engine.WithMatcher(match.New(match.WithMetric(s.metric))),
		engine.WithCatalog(s.catalog),
		engine.WithObserver(engine.MultiObserver(obs)),
	)
	return s
}

// Start loads the configured catalog file and starts the idle-session janitor.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting vibematch service...")

	if s.catalogPath != "" {
		if _, err := s.catalog.Reload(ctx); err != nil {
			return err
		}
	}

	if s.sessionTTL > 0 {
		s.wg.Add(1)
		go s.janitor(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "vibematch service started",
		logger.Int("catalog_items", s.catalog.Len()),
		logger.Int("max_sessions", s.maxSessions),
		logger.Int("dedupe_size", s.dedupeSize),
		logger.String("match_metric", string(s.metric)),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping vibematch service...")

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.wg.Wait()

	s.started = false
	s.logger.Info(context.Background(), "vibematch service stopped")
}

func (s *Service) janitor(ctx context.Context) {
	defer s.wg.Done()
	interval := s.sessionTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if n := s.EvictIdle(ctx); n > 0 {
				s.logger.Info(ctx, "evicted idle sessions", logger.Int("count", n))
			}
		}
	}
}

// CreateSession opens a session in contextID. Unknown room slugs are
// accepted; they contribute no axes to the vibe vector.
func (s *Service) CreateSession(ctx context.Context, contextID string) (model.SessionInfo, error) {
	now := s.clock()
	id := uuid.NewString()

	s.sessMu.Lock()
	if len(s.sessions) >= s.maxSessions {
		s.sessMu.Unlock()
		metrics.RecordErrorByComponent("service", "too_many_sessions")
		return model.SessionInfo{}, ErrTooManySessions
	}
	s.sessions[id] = &sessionEntry{session: engine.NewSession(id, contextID), createdAt: now, lastSeen: now}
	n := len(s.sessions)
	s.sessMu.Unlock()

	metrics.UpdateActiveSessions(n)
	if _, known := rooms.Lookup(contextID); !known {
		s.logger.Debug(ctx, "session opened in unknown room", logger.String("context_id", contextID))
	}
	s.logger.Debug(ctx, "session created", logger.String("session_id", id), logger.String("context_id", contextID))
	return model.SessionInfo{SessionID: id, ContextID: contextID, CreatedAt: now}, nil
}

// Session describes an existing session.
func (s *Service) Session(_ context.Context, sessionID string) (model.SessionInfo, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return model.SessionInfo{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return model.SessionInfo{
		SessionID:  sessionID,
		ContextID:  e.session.ContextID(),
		EventCount: e.session.Len(),
		CreatedAt:  e.createdAt,
	}, nil
}

// DeleteSession drops a session and its remembered event ids.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	s.sessMu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	n := len(s.sessions)
	s.sessMu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.deduper.Forget(ctx, dedupePrefix(sessionID))
	metrics.UpdateActiveSessions(n)
	return nil
}

// EvictIdle drops sessions idle for longer than the session TTL.
func (s *Service) EvictIdle(ctx context.Context) int {
	if s.sessionTTL <= 0 {
		return 0
	}
	cutoff := s.clock().Add(-s.sessionTTL)

	var stale []string
	s.sessMu.RLock()
	for id, e := range s.sessions {
		e.mu.Lock()
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, id)
		}
		e.mu.Unlock()
	}
	s.sessMu.RUnlock()

	evicted := 0
	for _, id := range stale {
		if s.DeleteSession(ctx, id) == nil {
			evicted++
		}
	}
	return evicted
}

// RecordEvent appends ev to the session. An event id already recorded in
// this session is acknowledged as a duplicate without touching the log. A
// negative sequence index means "next", and a zero timestamp means now.
// Calls on one session are serialized; distinct sessions proceed in parallel.
func (s *Service) RecordEvent(ctx context.Context, sessionID string, ev model.InteractionEvent) (model.EventResult, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return model.EventResult{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if ev.ContextID == "" {
		ev.ContextID = e.session.ContextID()
	}
	if ev.SequenceIndex < 0 {
		ev.SequenceIndex = e.session.Len()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = s.clock()
	}

	var key string
	if ev.EventID != "" {
		key = dedupePrefix(sessionID) + ev.EventID
		if s.deduper.SeenAndRecord(ctx, key) {
			metrics.RecordEventDuplicate()
			s.logger.Debug(ctx, "duplicate event", logger.String("session_id", sessionID), logger.String("event_id", ev.EventID))
			return model.EventResult{Duplicate: true, Anomalies: []model.Anomaly{}}, nil
		}
	}

	res, err := s.engine.RecordEvent(e.session, ev)
	if err != nil {
		if key != "" {
			s.deduper.Unrecord(ctx, key)
		}
		metrics.RecordEventRejected(rejectReason(err))
		return model.EventResult{}, err
	}
	e.lastSeen = s.clock()
	return model.EventResult{Event: &res.Event, Anomalies: res.Anomalies}, nil
}

// Profile builds the session's profile, optionally in another room.
func (s *Service) Profile(_ context.Context, sessionID, contextID string) (model.BehavioralProfile, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return model.BehavioralProfile{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.engine.SessionProfile(e.session, contextID)
}

// Summary digests the session.
func (s *Service) Summary(_ context.Context, sessionID string) (model.SessionSummary, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return model.SessionSummary{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.engine.Summary(e.session)
}

// Recommend ranks the catalog against the session's current profile.
func (s *Service) Recommend(ctx context.Context, sessionID string, opts model.RecommendOptions) ([]model.Recommendation, error) {
	p, err := s.Profile(ctx, sessionID, opts.ContextID)
	if err != nil {
		return nil, err
	}
	q := match.FromProfile(p, p.ContextID)
	q.Genre = opts.Genre
	return s.engine.Recommend(q, opts.Count), nil
}

// BuildProfile profiles a complete event log without creating a session.
func (s *Service) BuildProfile(_ context.Context, contextID string, log []model.InteractionEvent) (model.BehavioralProfile, error) {
	return s.engine.BuildProfile(log, contextID)
}

// RecommendVector ranks the catalog against an explicit vector.
func (s *Service) RecommendVector(_ context.Context, v vibe.Vector, opts model.RecommendOptions) ([]model.Recommendation, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	q := match.FromVector(v, opts.ContextID)
	q.Genre = opts.Genre
	return s.engine.Recommend(q, opts.Count), nil
}

// Route picks a room for a free-text prompt.
func (s *Service) Route(_ context.Context, prompt string, category rooms.Category) (routing.Result, error) {
	s.routeMu.Lock()
	defer s.routeMu.Unlock()
	return s.router.Route(prompt, category)
}

// ReloadCatalog swaps in the catalog file.
func (s *Service) ReloadCatalog(ctx context.Context) (int, error) {
	return s.catalog.Reload(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	s.sessMu.RLock()
	active := len(s.sessions)
	s.sessMu.RUnlock()

	snap := s.catalog.Snapshot()
	metrics.UpdateActiveSessions(active)
	return map[string]interface{}{
		"started":         started,
		"sessions":        active,
		"maxSessions":     s.maxSessions,
		"dedupeSize":      s.dedupeSize,
		"dedupeEntries":   s.deduper.Size(),
		"catalogItems":    len(snap.Items),
		"catalogSource":   snap.Source,
		"catalogLoadedAt": snap.LoadedAt,
		"matchMetric":     string(s.metric),
	}
}

func (s *Service) lookup(sessionID string) (*sessionEntry, error) {
	s.sessMu.RLock()
	e, ok := s.sessions[sessionID]
	s.sessMu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func dedupePrefix(sessionID string) string {
	return sessionID + "/"
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidContentType):
		return "invalid_content_type"
	case errors.Is(err, engine.ErrInvalidAction):
		return "invalid_action"
	case errors.Is(err, engine.ErrNegativeDwell):
		return "negative_dwell"
	case errors.Is(err, engine.ErrInvalidEventOrdering):
		return "out_of_order"
	default:
		return "other"
	}
}
