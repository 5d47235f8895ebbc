// Package requesttime pins one "now" per HTTP request so that audit events,
// admission timestamps and bond updates written by the same call agree.
package requesttime

import (
	"net/http"
	"time"

	"surety/pkg/requestcontext"
)

// Middleware stores the request start time in the context. The time is UTC
// and truncated to microseconds, the precision Postgres keeps, so in-memory
// and durable ledgers report identical timestamps.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		ctx := requestcontext.WithTime(r.Context(), now)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
