package api

import (
	"net/http"
	"strconv"

	"github.com/okian/vibematch/internal/domain/model"
)

type recommendResponse struct {
	Count           int                    `json:"count"`
	Recommendations []model.Recommendation `json:"recommendations"`
}

// RecommendHandler ranks the catalog for a session or a raw vector.
type RecommendHandler struct {
	deps         RecommendDependencies
	defaultCount int
	maxCount     int
}

// NewRecommendHandler creates a new recommendation handler. Requested
// counts above maxCount are clamped.
func NewRecommendHandler(deps RecommendDependencies, defaultCount, maxCount int) *RecommendHandler {
	return &RecommendHandler{deps: deps, defaultCount: defaultCount, maxCount: maxCount}
}

func (h *RecommendHandler) clamp(n int) int {
	if n <= 0 {
		return h.defaultCount
	}
	if n > h.maxCount {
		return h.maxCount
	}
	return n
}

// HandleSession handles GET /sessions/{id}/recommendations?count=&context_id=&genre=.
func (h *RecommendHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.session_recommendations"
	q := recommendQuery{Count: h.defaultCount, ContextID: r.URL.Query().Get("context_id"), Genre: r.URL.Query().Get("genre")}
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		q.Count = n
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	recs, err := h.deps.Recommend(r.Context(), r.PathValue("id"), model.RecommendOptions{
		ContextID: q.ContextID,
		Count:     h.clamp(q.Count),
		Genre:     q.Genre,
	})
	if err != nil {
		writeFailure(r.Context(), w, op, err)
		return
	}
	writeRecommendations(w, recs)
}

// HandleVector handles POST /recommendations with an explicit mood vector.
func (h *RecommendHandler) HandleVector(w http.ResponseWriter, r *http.Request) {
	const op = "api.vector_recommendations"
	var req vectorRecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	recs, err := h.deps.RecommendVector(r.Context(), req.Vector, model.RecommendOptions{
		ContextID: req.ContextID,
		Count:     h.clamp(req.Count),
		Genre:     req.Genre,
	})
	if err != nil {
		writeFailure(r.Context(), w, op, err)
		return
	}
	writeRecommendations(w, recs)
}

func writeRecommendations(w http.ResponseWriter, recs []model.Recommendation) {
	if recs == nil {
		recs = []model.Recommendation{}
	}
	writeJSON(w, http.StatusOK, recommendResponse{Count: len(recs), Recommendations: recs})
}
