// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/internal/domain/vibe"
)

// InteractionEvent is one user decision on one content card.
// Immutable once recorded; a session log only ever grows.
type InteractionEvent struct {
	EventID       string            `json:"event_id,omitempty"` // optional client id for idempotency
	ContentType   types.ContentType `json:"content_type"`
	ContextID     string            `json:"context_id"` // room the card belonged to
	Action        types.Action      `json:"action"`
	DwellMs       int64             `json:"dwell_ms"`
	Timestamp     time.Time         `json:"ts"`
	SequenceIndex int               `json:"sequence_index"`
}

// EnrichedEvent is an InteractionEvent plus the fields derived from it alone.
type EnrichedEvent struct {
	InteractionEvent
	DwellRatio      float64               `json:"dwell_ratio"`
	Confidence      types.Confidence      `json:"confidence"`
	EngagementDepth float64               `json:"engagement_depth"`
	EngagementLevel types.EngagementLevel `json:"engagement_level"`
}

// Anomaly is a behavioral pattern detected over a window ending at EventIndex.
type Anomaly struct {
	Type        types.AnomalyType `json:"type"`
	EventIndex  int               `json:"event_index"`
	Timestamp   time.Time         `json:"ts"`
	Description string            `json:"description"`
}

// AnomalyKey identifies an anomaly for deduplication.
type AnomalyKey struct {
	Type       types.AnomalyType
	EventIndex int
}

// Key returns the dedup key of a.
func (a Anomaly) Key() AnomalyKey {
	return AnomalyKey{Type: a.Type, EventIndex: a.EventIndex}
}

// ModalityAffinity splits accepted attention across sensory channels.
type ModalityAffinity struct {
	Visual   float64 `json:"visual"`
	Auditory float64 `json:"auditory"`
	Textual  float64 `json:"textual"`
}

// BehavioralProfile is the per-session aggregate. It is rebuilt from the full
// log on every call and never mutated afterwards.
type BehavioralProfile struct {
	ContextID         string                        `json:"context_id"`
	EventCount        int                           `json:"event_count"`
	EnergyLevel       float64                       `json:"energy_level"`
	PresentDepth      float64                       `json:"present_depth"`
	Selectivity       float64                       `json:"selectivity"`
	EngagementScore   float64                       `json:"engagement_score"`
	ContentAffinities map[types.ContentType]float64 `json:"content_affinities"`
	// ContextFit is clamped to >= 0. RoutingConfidence is derived from the
	// unclamped value.
	ContextFit        float64             `json:"context_fit"`
	RoutingConfidence float64             `json:"routing_confidence"`
	Trajectory        types.Trajectory    `json:"trajectory"`
	DecisionStyle     types.DecisionStyle `json:"decision_style"`
	Anomalies         []Anomaly           `json:"anomalies"`
	Vibe              vibe.Vector         `json:"vibe"`
	DominantAxis      vibe.Axis           `json:"dominant_axis"`
	Modality          ModalityAffinity    `json:"modality"`
}

// ContentSummary is the per-content-type slice of a SessionSummary.
type ContentSummary struct {
	Seen       int     `json:"seen"`
	Accepted   int     `json:"accepted"`
	Rejected   int     `json:"rejected"`
	Skipped    int     `json:"skipped"`
	AvgDwellMs float64 `json:"avg_dwell_ms"`
}

// SessionSummary is a human-oriented digest of a session.
type SessionSummary struct {
	TotalSeen  int                                  `json:"total_seen"`
	Accepted   int                                  `json:"accepted"`
	Rejected   int                                  `json:"rejected"`
	Skipped    int                                  `json:"skipped"`
	AvgDwellMs float64                              `json:"avg_dwell_ms"`
	ByContent  map[types.ContentType]ContentSummary `json:"by_content"`
	Preferred  []types.ContentType                  `json:"preferred"`
	Avoided    []types.ContentType                  `json:"avoided"`
	Dominant   vibe.Axis                            `json:"dominant_axis"`
	Profile    BehavioralProfile                    `json:"profile"`
}
