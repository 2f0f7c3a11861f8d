package service

import (
	"time"

	"github.com/okian/vibematch/internal/domain/engine"
	"github.com/okian/vibematch/internal/domain/match"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDedupeSize sets the number of remembered event ids.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxSessions caps concurrently held sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionTTL sets the idle eviction age; 0 disables eviction.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithCatalogPath sets the JSON catalog file loaded on Start and on reload.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithCatalogItems seeds the catalog instead of the built-in one.
func WithCatalogItems(items []model.CatalogItem) Option {
	return func(s *Service) {
		s.catalogItems = items
	}
}

// WithMatchMetric selects the similarity metric.
func WithMatchMetric(m match.Metric) Option {
	return func(s *Service) {
		if m != "" {
			s.metric = m
		}
	}
}

// WithExpectedDwell overrides dwell expectations per content type.
func WithExpectedDwell(overrides map[types.ContentType]int64) Option {
	return func(s *Service) {
		s.expectedDwell = overrides
	}
}

// WithRouteSeed seeds the routing fallback; 0 seeds from the clock.
func WithRouteSeed(seed int64) Option {
	return func(s *Service) {
		s.routeSeed = seed
	}
}

// WithClock replaces time.Now for timestamps, idle eviction and routing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithObserver adds an engine observer next to the built-in logging and
// metrics observers.
func WithObserver(o engine.Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
