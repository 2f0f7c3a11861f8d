// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and VIBE_ environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/vibematch/internal/domain/match"
	"github.com/okian/vibematch/internal/domain/types"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CatalogPath points at a JSON catalog file. Empty uses the built-in catalog.
	CatalogPath string `koanf:"catalog_path"`

	// DefaultRecommendCount is used when a request omits count.
	DefaultRecommendCount int `koanf:"default_recommend_count"`

	// MaxRecommendCount caps the count query parameter.
	MaxRecommendCount int `koanf:"max_recommend_count"`

	// DedupeSize bounds the remembered event ids.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxSessions bounds concurrently held sessions.
	MaxSessions int `koanf:"max_sessions"`

	// EventRateLimit is the accepted events per second across the service; 0 disables limiting.
	EventRateLimit float64 `koanf:"event_rate_limit"`

	// EventRateBurst is the limiter bucket size.
	EventRateBurst int `koanf:"event_rate_burst"`

	// MatchMetric is auto, cosine or distance.
	MatchMetric string `koanf:"match_metric"`

	// ExpectedDwellMs overrides the per content type dwell expectation.
	ExpectedDwellMs map[string]int64 `koanf:"expected_dwell_ms"`

	// SessionTTL evicts sessions idle for longer; 0 keeps them until deleted.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// RouteSeed seeds the routing fallback; 0 seeds from the clock.
	RouteSeed int64 `koanf:"route_seed"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config with defaults. Context is accepted first to follow
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		DefaultRecommendCount: 5,
		MaxRecommendCount:     50,
		DedupeSize:            50_000,
		MaxSessions:           10_000,
		EventRateLimit:        0,
		EventRateBurst:        100,
		MatchMetric:           string(match.MetricAuto),
		ExpectedDwellMs:       map[string]int64{},
		SessionTTL:            30 * time.Minute,
		ShutdownTimeout:       10 * time.Second,
	}
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DefaultRecommendCount <= 0:
		return fmt.Errorf("%w: default_recommend_count must be positive", ErrInvalidConfig)
	case c.MaxRecommendCount < c.DefaultRecommendCount:
		return fmt.Errorf("%w: max_recommend_count must be at least default_recommend_count", ErrInvalidConfig)
	case c.DedupeSize < 0:
		return fmt.Errorf("%w: dedupe_size must not be negative", ErrInvalidConfig)
	case c.MaxSessions <= 0:
		return fmt.Errorf("%w: max_sessions must be positive", ErrInvalidConfig)
	case c.EventRateLimit < 0:
		return fmt.Errorf("%w: event_rate_limit must not be negative", ErrInvalidConfig)
	case c.EventRateLimit > 0 && c.EventRateBurst <= 0:
		return fmt.Errorf("%w: event_rate_burst must be positive when limiting", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	case c.SessionTTL < 0:
		return fmt.Errorf("%w: session_ttl must not be negative", ErrInvalidConfig)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if _, err := match.ParseMetric(c.MatchMetric); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.DwellOverrides(); err != nil {
		return err
	}
	return nil
}

// Metric returns the parsed match metric.
func (c *Config) Metric() match.Metric {
	m, err := match.ParseMetric(c.MatchMetric)
	if err != nil {
		return match.MetricAuto
	}
	return m
}

// DwellOverrides parses ExpectedDwellMs into typed keys.
func (c *Config) DwellOverrides() (map[types.ContentType]int64, error) {
	out := make(map[types.ContentType]int64, len(c.ExpectedDwellMs))
	for k, ms := range c.ExpectedDwellMs {
		ct, err := types.ParseContentType(k)
		if err != nil {
			return nil, fmt.Errorf("%w: expected_dwell_ms: %w", ErrInvalidConfig, err)
		}
		if ms <= 0 {
			return nil, fmt.Errorf("%w: expected_dwell_ms.%s must be positive", ErrInvalidConfig, k)
		}
		out[ct] = ms
	}
	return out, nil
}
