package api

import (
	"net/http"

	"github.com/okian/vibematch/internal/domain/rooms"
)

// RouteHandler maps free-text prompts to rooms.
type RouteHandler struct {
	deps RouteDependencies
}

// NewRouteHandler creates a new route handler.
func NewRouteHandler(deps RouteDependencies) *RouteHandler {
	return &RouteHandler{deps: deps}
}

// HandleRoute handles POST /route.
func (h *RouteHandler) HandleRoute(w http.ResponseWriter, r *http.Request) {
	const op = "api.route"
	var req routeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	category, err := rooms.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Route(r.Context(), req.Prompt, category)
	if err != nil {
		writeFailure(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
