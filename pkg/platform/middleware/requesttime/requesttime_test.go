package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"surety/pkg/requestcontext"
)

func TestMiddlewarePinsUTCMicroseconds(t *testing.T) {
	var seen time.Time
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.Now(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, time.UTC, seen.Location())
	assert.Zero(t, seen.Nanosecond()%int(time.Microsecond))
	assert.WithinDuration(t, time.Now(), seen, time.Minute)
}
