package simulate

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/okian/vibematch/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Runner drives simulated sessions.
type Runner struct {
	cfg    Config
	client *client
	clock  func() time.Time
	logger logger.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Runner) {
		if hc != nil {
			r.client = newClient(r.cfg.BaseURL, r.cfg.Timeout, hc)
		}
	}
}

// WithClock sets the start time of generated logs.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.clock = now
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner for cfg. Zero fields fall back to DefaultConfig.
func NewRunner(cfg Config, opts ...Option) *Runner {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Sessions <= 0 {
		cfg.Sessions = def.Sessions
	}
	if cfg.Events <= 0 {
		cfg.Events = def.Events
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.Count <= 0 {
		cfg.Count = def.Count
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	r := &Runner{cfg: cfg, clock: time.Now}
	r.client = newClient(cfg.BaseURL, cfg.Timeout, nil)
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("simulate")
	}
	return r
}

type counters struct {
	sessions, events, duplicates, anomalies, recs, failures atomic.Int64
}

// Run checks health, then drives cfg.Sessions sessions with at most
// cfg.Workers in flight. The first failing session cancels the rest.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	if err := r.client.health(ctx); err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	r.logger.Info(ctx, "simulation starting",
		logger.String("url", r.cfg.BaseURL),
		logger.Int("sessions", r.cfg.Sessions),
		logger.Int("events", r.cfg.Events),
		logger.Int("workers", r.cfg.Workers),
	)

	// Plans are generated up front so the output does not depend on
	// goroutine scheduling.
	gen := NewGenerator(r.cfg.Seed, r.clock())
	plans := make([]SessionPlan, r.cfg.Sessions)
	for i := range plans {
		plans[i] = gen.Plan(r.cfg.Events)
	}

	var c counters
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, plan := range plans {
		g.Go(func() error {
			if err := r.drive(gctx, plan, &c); err != nil {
				c.failures.Add(1)
				return err
			}
			c.sessions.Add(1)
			return nil
		})
	}
	err := g.Wait()

	st := Stats{
		Sessions:        int(c.sessions.Load()),
		EventsPosted:    int(c.events.Load()),
		Duplicates:      int(c.duplicates.Load()),
		Anomalies:       int(c.anomalies.Load()),
		Recommendations: int(c.recs.Load()),
		Failures:        int(c.failures.Load()),
		Duration:        time.Since(start),
	}
	if err != nil {
		r.logger.Error(ctx, "simulation failed", logger.Error(err))
		return st, err
	}
	r.logger.Info(ctx, "simulation finished",
		logger.Int("sessions", st.Sessions),
		logger.Int("events", st.EventsPosted),
		logger.Int("duplicates", st.Duplicates),
		logger.Int("anomalies", st.Anomalies),
		logger.Duration("took", st.Duration),
	)
	return st, nil
}

func (r *Runner) drive(ctx context.Context, plan SessionPlan, c *counters) error {
	info, err := r.client.createSession(ctx, plan.ContextID)
	if err != nil {
		return err
	}
	defer func() {
		// Best effort; the janitor evicts anything left behind.
		_ = r.client.deleteSession(context.WithoutCancel(ctx), info.SessionID)
	}()

	for i, ev := range plan.Events {
		rep, err := r.client.postEvent(ctx, info.SessionID, ev)
		if err != nil {
			return fmt.Errorf("session %s event %d: %w", info.SessionID, i, err)
		}
		c.events.Add(1)
		c.anomalies.Add(int64(len(rep.Anomalies)))

		if r.cfg.Replay && i == 0 {
			rep, err := r.client.postEvent(ctx, info.SessionID, ev)
			if err != nil {
				return fmt.Errorf("session %s replay: %w", info.SessionID, err)
			}
			if !rep.Duplicate {
				return fmt.Errorf("%w: replayed event %s was recorded twice", ErrVerification, ev.EventID)
			}
			c.duplicates.Add(1)
		}
	}

	p, err := r.client.profile(ctx, info.SessionID)
	if err != nil {
		return err
	}
	if err := verifyProfile(p, plan); err != nil {
		return fmt.Errorf("session %s: %w", info.SessionID, err)
	}

	recs, err := r.client.recommend(ctx, info.SessionID, r.cfg.Count)
	if err != nil {
		return err
	}
	if err := verifyRecommendations(recs.Recommendations, r.cfg.Count); err != nil {
		return fmt.Errorf("session %s: %w", info.SessionID, err)
	}
	c.recs.Add(int64(len(recs.Recommendations)))
	return nil
}
