package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"surety/internal/ratelimit/models"
	"surety/pkg/platform/httputil"
	"surety/pkg/requestcontext"
)

// BucketStore admits requests against a sliding window per key.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

type Middleware struct {
	buckets BucketStore
	policy  models.Policy
	logger  *slog.Logger
}

func New(buckets BucketStore, policy models.Policy, logger *slog.Logger) *Middleware {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Middleware{
		buckets: buckets,
		policy:  policy,
		logger:  logger,
	}
	if !policy.Enabled() {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimitCaller limits requests per authenticated caller. It must run after
// the auth middleware. Store failures let the request through.
func (m *Middleware) RateLimitCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.policy.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		caller := requestcontext.CallerID(ctx)
		if caller.IsZero() {
			next.ServeHTTP(w, r)
			return
		}

		result, err := m.buckets.Allow(ctx, models.CallerKey(caller), m.policy.Limit, m.policy.Window)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check caller rate limit",
				"request_id", requestcontext.RequestID(ctx),
				"caller", caller.String(),
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			m.logger.WarnContext(ctx, "caller rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"caller", caller.String(),
				"retry_after", result.RetryAfter,
			)
			writeCallerRateLimitExceeded(w, result)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeCallerRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.CallerRateLimitExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests from this caller. Please try again later.",
		Limit:      result.Limit,
		RetryAfter: result.RetryAfter,
		ResetAt:    result.ResetAt,
	})
}
