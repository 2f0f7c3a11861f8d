package api

import (
	"net/http"
)

// ProfileHandler serves profiles and summaries.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleSessionProfile handles GET /sessions/{id}/profile. The optional
// context_id query parameter scores context fit against another room.
func (h *ProfileHandler) HandleSessionProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Profile(r.Context(), r.PathValue("id"), r.URL.Query().Get("context_id"))
	if err != nil {
		writeFailure(r.Context(), w, "api.session_profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleSummary handles GET /sessions/{id}/summary.
func (h *ProfileHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.deps.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(r.Context(), w, "api.session_summary", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// HandleBatchProfile handles POST /profile: a stateless profile over a
// complete log supplied by the client.
func (h *ProfileHandler) HandleBatchProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch_profile"
	var req batchProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	log, err := req.toLog()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.BuildProfile(r.Context(), req.ContextID, log)
	if err != nil {
		writeFailure(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
