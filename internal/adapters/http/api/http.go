// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	service "github.com/okian/vibematch/internal/app"
	"github.com/okian/vibematch/internal/adapters/catalog"
	"github.com/okian/vibematch/internal/domain/engine"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/rooms"
	"github.com/okian/vibematch/internal/domain/routing"
	"github.com/okian/vibematch/internal/domain/vibe"
	"github.com/okian/vibematch/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	SessionDependencies
	EventDependencies
	ProfileDependencies
	RecommendDependencies
	RouteDependencies
	CatalogDependencies
	StatsProvider
}

// SessionDependencies manages session lifecycles.
type SessionDependencies interface {
	CreateSession(ctx context.Context, contextID string) (model.SessionInfo, error)
	Session(ctx context.Context, sessionID string) (model.SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// EventDependencies records events.
type EventDependencies interface {
	RecordEvent(ctx context.Context, sessionID string, ev model.InteractionEvent) (model.EventResult, error)
}

// ProfileDependencies builds profiles and summaries.
type ProfileDependencies interface {
	Profile(ctx context.Context, sessionID, contextID string) (model.BehavioralProfile, error)
	Summary(ctx context.Context, sessionID string) (model.SessionSummary, error)
	BuildProfile(ctx context.Context, contextID string, log []model.InteractionEvent) (model.BehavioralProfile, error)
}

// RecommendDependencies ranks the catalog.
type RecommendDependencies interface {
	Recommend(ctx context.Context, sessionID string, opts model.RecommendOptions) ([]model.Recommendation, error)
	RecommendVector(ctx context.Context, v vibe.Vector, opts model.RecommendOptions) ([]model.Recommendation, error)
}

// RouteDependencies routes prompts to rooms.
type RouteDependencies interface {
	Route(ctx context.Context, prompt string, category rooms.Category) (routing.Result, error)
}

// CatalogDependencies reloads the catalog.
type CatalogDependencies interface {
	ReloadCatalog(ctx context.Context) (int, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	opts options

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	sessionsHandler  *SessionsHandler
	eventsHandler    *EventsHandler
	profileHandler   *ProfileHandler
	recommendHandler *RecommendHandler
	routeHandler     *RouteHandler
	catalogHandler   *CatalogHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		opts:             o,
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		sessionsHandler:  NewSessionsHandler(deps),
		eventsHandler:    NewEventsHandler(deps),
		profileHandler:   NewProfileHandler(deps),
		recommendHandler: NewRecommendHandler(deps, o.defaultCount, o.maxCount),
		routeHandler:     NewRouteHandler(deps),
		catalogHandler:   NewCatalogHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	limit := RateLimitMiddleware(s.opts.limiter)

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", MetricsHandler())
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /sessions", MetricsMiddleware(s.sessionsHandler.HandleCreate, "sessions"))
	mux.HandleFunc("GET /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleGet, "session"))
	mux.HandleFunc("DELETE /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleDelete, "session"))
	mux.HandleFunc("POST /sessions/{id}/events", MetricsMiddleware(limit(s.eventsHandler.HandlePostEvent), "events"))
	mux.HandleFunc("GET /sessions/{id}/profile", MetricsMiddleware(s.profileHandler.HandleSessionProfile, "profile"))
	mux.HandleFunc("GET /sessions/{id}/summary", MetricsMiddleware(s.profileHandler.HandleSummary, "summary"))
	mux.HandleFunc("GET /sessions/{id}/recommendations", MetricsMiddleware(s.recommendHandler.HandleSession, "recommendations"))

	mux.HandleFunc("POST /profile", MetricsMiddleware(limit(s.profileHandler.HandleBatchProfile), "batch_profile"))
	mux.HandleFunc("POST /recommendations", MetricsMiddleware(s.recommendHandler.HandleVector, "vector_recommendations"))
	mux.HandleFunc("POST /route", MetricsMiddleware(s.routeHandler.HandleRoute, "route"))
	mux.HandleFunc("POST /catalog/reload", MetricsMiddleware(s.catalogHandler.HandleReload, "catalog_reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err to a status code and writes it.
func writeFailure(ctx context.Context, w http.ResponseWriter, op string, err error) {
	err = Wrap(op, err)
	status, code := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Get().Named("api").Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
	}
	writeError(w, status, code, err)
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// kindOf classifies errors coming back from the service.
func kindOf(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return ErrNotFound
	case errors.Is(err, service.ErrTooManySessions):
		return ErrBackpressure
	case errors.Is(err, engine.ErrInvalidContentType),
		errors.Is(err, engine.ErrInvalidAction),
		errors.Is(err, engine.ErrNegativeDwell),
		errors.Is(err, engine.ErrInvalidEventOrdering),
		errors.Is(err, rooms.ErrUnknownCategory),
		errors.Is(err, vibe.ErrUnknownScheme),
		errors.Is(err, vibe.ErrDimension),
		errors.Is(err, vibe.ErrOutOfRange),
		errors.Is(err, vibe.ErrUnsupportedPair),
		errors.Is(err, routing.ErrNoRooms),
		errors.Is(err, catalog.ErrNoSource):
		return ErrBadRequest
	default:
		return ErrInternal
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
