package api

import (
	"net/http"

	"github.com/okian/vibematch/internal/domain/model"
)

type eventResponse struct {
	Status    string               `json:"status"`
	Duplicate bool                 `json:"duplicate"`
	Event     *model.EnrichedEvent `json:"event,omitempty"`
	Anomalies []model.Anomaly      `json:"anomalies"`
}

// EventsHandler handles event ingestion.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandlePostEvent handles POST /sessions/{id}/events. A replayed event id
// is acknowledged with 200 and duplicate=true; a new event returns 201.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	var req eventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	ev, err := req.toEvent()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.RecordEvent(r.Context(), r.PathValue("id"), ev)
	if err != nil {
		writeFailure(r.Context(), w, op, err)
		return
	}
	if res.Duplicate {
		writeJSON(w, http.StatusOK, eventResponse{Status: "duplicate", Duplicate: true, Anomalies: []model.Anomaly{}})
		return
	}
	anomalies := res.Anomalies
	if anomalies == nil {
		anomalies = []model.Anomaly{}
	}
	writeJSON(w, http.StatusCreated, eventResponse{Status: "recorded", Event: res.Event, Anomalies: anomalies})
}
