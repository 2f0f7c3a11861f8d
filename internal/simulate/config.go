// Package simulate drives seeded synthetic sessions against a running
// vibematch server and checks the responses it gets back.
package simulate

import (
	"errors"
	"time"
)

// Errors returned by Run.
var (
	ErrUnhealthy    = errors.New("service is not healthy")
	ErrVerification = errors.New("response verification failed")
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL  string        // base URL of the service
	Sessions int           // number of sessions to drive
	Events   int           // events per session
	Workers  int           // concurrent sessions
	Seed     int64         // generator seed; equal seeds give equal logs
	Count    int           // recommendations requested per session
	Timeout  time.Duration // per-request timeout
	// Replay re-posts the first event of every session to exercise dedupe.
	Replay bool
}

// DefaultConfig returns the settings used by the CLI when flags are absent.
func DefaultConfig() Config {
	return Config{
		BaseURL:  "http://localhost:9080",
		Sessions: 20,
		Events:   12,
		Workers:  4,
		Seed:     1,
		Count:    5,
		Timeout:  5 * time.Second,
		Replay:   true,
	}
}

// Stats summarises a run.
type Stats struct {
	Sessions        int           `json:"sessions"`
	EventsPosted    int           `json:"events_posted"`
	Duplicates      int           `json:"duplicates"`
	Anomalies       int           `json:"anomalies"`
	Recommendations int           `json:"recommendations"`
	Failures        int           `json:"failures"`
	Duration        time.Duration `json:"duration"`
}
