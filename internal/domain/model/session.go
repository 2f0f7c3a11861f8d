package model

import "time"

// SessionInfo describes a live session.
type SessionInfo struct {
	SessionID  string    `json:"session_id"`
	ContextID  string    `json:"context_id"`
	EventCount int       `json:"event_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventResult is the outcome of recording one event. Event is nil for
// duplicates.
type EventResult struct {
	Duplicate bool           `json:"duplicate"`
	Event     *EnrichedEvent `json:"event,omitempty"`
	Anomalies []Anomaly      `json:"anomalies"`
}

// RecommendOptions narrows a recommendation request.
type RecommendOptions struct {
	// ContextID overrides the session's room; empty keeps it.
	ContextID string
	Count     int
	Genre     string
}
