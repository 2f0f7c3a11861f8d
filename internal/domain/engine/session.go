package engine

import (
	"github.com/okian/vibematch/internal/domain/behavior"
	"github.com/okian/vibematch/internal/domain/model"
)

// Session is the caller-owned state of one user session: the append-only
// enriched log and the anomalies found so far. The engine reads and appends
// to it but keeps nothing of its own. A Session is not safe for concurrent
// use; callers serialize access per session.
type Session struct {
	id        string
	contextID string
	log       []model.EnrichedEvent
	anomalies *behavior.Set
}

// NewSession creates an empty session opened in contextID.
func NewSession(id, contextID string) *Session {
	return &Session{id: id, contextID: contextID, anomalies: behavior.NewSet()}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// ContextID returns the room the session was opened in.
func (s *Session) ContextID() string { return s.contextID }

// Len returns the number of recorded events.
func (s *Session) Len() int { return len(s.log) }

// Events returns a copy of the enriched log.
func (s *Session) Events() []model.EnrichedEvent {
	out := make([]model.EnrichedEvent, len(s.log))
	copy(out, s.log)
	return out
}

// Raw returns the recorded events without derived fields.
func (s *Session) Raw() []model.InteractionEvent {
	out := make([]model.InteractionEvent, len(s.log))
	for i, e := range s.log {
		out[i] = e.InteractionEvent
	}
	return out
}

// Anomalies returns the anomalies detected so far, in detection order.
func (s *Session) Anomalies() []model.Anomaly {
	return s.anomalies.List()
}

func (s *Session) last() *model.EnrichedEvent {
	if len(s.log) == 0 {
		return nil
	}
	return &s.log[len(s.log)-1]
}
