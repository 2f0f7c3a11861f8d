package api

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/types"
	"github.com/okian/vibematch/internal/domain/vibe"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // validator caches struct metadata

var errMissingTimestamp = errors.New("ts is required for every event of a batch")

// createSessionRequest is the body of POST /sessions.
type createSessionRequest struct {
	ContextID string `json:"context_id" validate:"required,max=64"`
}

// eventRequest is the body of POST /sessions/{id}/events and one element of
// a batch profile request. A missing sequence_index means "next" and a
// missing ts means the server clock.
type eventRequest struct {
	EventID       string `json:"event_id" validate:"omitempty,max=128"`
	ContentType   string `json:"content_type" validate:"required"`
	ContextID     string `json:"context_id" validate:"omitempty,max=64"`
	Action        string `json:"action" validate:"required"`
	DwellMs       *int64 `json:"dwell_ms" validate:"required"`
	TS            string `json:"ts" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	SequenceIndex *int   `json:"sequence_index" validate:"omitempty,min=0"`
}

// toEvent converts the request into an InteractionEvent. Unknown content
// types and actions surface the domain errors.
func (e eventRequest) toEvent() (model.InteractionEvent, error) {
	ct, err := types.ParseContentType(e.ContentType)
	if err != nil {
		return model.InteractionEvent{}, err
	}
	action, err := types.ParseAction(e.Action)
	if err != nil {
		return model.InteractionEvent{}, err
	}
	ev := model.InteractionEvent{
		EventID:       e.EventID,
		ContentType:   ct,
		ContextID:     e.ContextID,
		Action:        action,
		DwellMs:       *e.DwellMs,
		SequenceIndex: -1,
	}
	if e.SequenceIndex != nil {
		ev.SequenceIndex = *e.SequenceIndex
	}
	if e.TS != "" {
		ts, err := time.Parse(time.RFC3339Nano, e.TS)
		if err != nil {
			return model.InteractionEvent{}, err
		}
		ev.Timestamp = ts
	}
	return ev, nil
}

// batchProfileRequest is the body of POST /profile.
type batchProfileRequest struct {
	ContextID string         `json:"context_id" validate:"required,max=64"`
	Events    []eventRequest `json:"events" validate:"max=10000,dive"`
}

func (b batchProfileRequest) toLog() ([]model.InteractionEvent, error) {
	out := make([]model.InteractionEvent, len(b.Events))
	for i, er := range b.Events {
		if er.TS == "" {
			return nil, errMissingTimestamp
		}
		ev, err := er.toEvent()
		if err != nil {
			return nil, err
		}
		if ev.SequenceIndex < 0 {
			ev.SequenceIndex = i
		}
		out[i] = ev
	}
	return out, nil
}

// vectorRecommendRequest is the body of POST /recommendations.
type vectorRecommendRequest struct {
	Vector    vibe.Vector `json:"vector"`
	ContextID string      `json:"context_id" validate:"omitempty,max=64"`
	Count     int         `json:"count" validate:"omitempty,min=1"`
	Genre     string      `json:"genre" validate:"omitempty,max=64"`
}

// recommendQuery holds the query parameters of GET /sessions/{id}/recommendations.
type recommendQuery struct {
	Count     int    `validate:"min=1"`
	ContextID string `validate:"omitempty,max=64"`
	Genre     string `validate:"omitempty,max=64"`
}

// routeRequest is the body of POST /route.
type routeRequest struct {
	Prompt   string `json:"prompt" validate:"required,max=2000"`
	Category string `json:"category" validate:"required"`
}
