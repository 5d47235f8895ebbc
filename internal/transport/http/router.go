package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"surety/pkg/platform/httputil"
	"surety/pkg/platform/middleware/auth"
	"surety/pkg/platform/middleware/request"
	"surety/pkg/platform/middleware/requesttime"
)

// requestTimeout bounds every request, including time spent waiting on the
// ledger transaction lock.
const requestTimeout = 30 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RouterConfig carries the pieces of the router that are not ledger services.
type RouterConfig struct {
	Tokens  auth.TokenValidator
	Metrics http.Handler
	Health  map[string]HealthCheck
	Logger  *slog.Logger
	// RateLimit, when set, runs after authentication on every mutation.
	RateLimit func(http.Handler) http.Handler
}

// NewRouter mounts the consortium API. Reads are public; every mutation
// requires a bearer token naming the caller.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", handleHealth(cfg.Health, logger))
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Group(func(r chi.Router) {
		h.RegisterPublic(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireCaller(cfg.Tokens, logger))
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit)
		}
		h.RegisterAuthenticated(r)
	})
	return r
}

// RegisterPublic mounts read-only routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/operational", h.HandleGetOperational)
	r.Get("/admin/callers", h.HandleListCallers)
	r.Get("/airlines", h.HandleListAirlines)
	r.Get("/airlines/count", h.HandleCountAirlines)
	r.Get("/airlines/{id}", h.HandleGetAirline)
	r.Get("/airlines/{id}/funded", h.HandleIsFunded)
	r.Get("/proposals/{candidate}", h.HandleGetProposal)
}

// RegisterAuthenticated mounts routes that act on behalf of the caller.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Put("/operational", h.HandleSetOperational)
	r.Post("/admin/callers", h.HandleAuthorizeCaller)
	r.Delete("/admin/callers/{moduleID}", h.HandleDeauthorizeCaller)
	r.Post("/airlines", h.HandleRegisterAirline)
	r.Post("/airlines/{id}/fund", h.HandleFund)
}

func handleHealth(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"check", name,
					"error", err,
				)
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = "unavailable"
				continue
			}
			body[name] = "ok"
		}
		httputil.WriteJSON(w, status, body)
	}
}
