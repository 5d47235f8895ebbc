package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	id "surety/pkg/domain"
	"surety/pkg/requestcontext"
	"surety/pkg/testutil"
)

type stubValidator struct {
	caller id.MemberID
	err    error
}

func (v stubValidator) CallerFromToken(string) (id.MemberID, error) {
	return v.caller, v.err
}

func TestRequireCaller(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	var seen id.MemberID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.CallerID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid token sets the caller", func(t *testing.T) {
		h := RequireCaller(stubValidator{caller: testutil.Airline(1)}, logger)(next)
		req := testutil.NewRequest(t, http.MethodPost, "/airlines")
		testutil.WithBearer(req, "good")

		rr := testutil.DoRequest(h, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, testutil.Airline(1), seen)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		h := RequireCaller(stubValidator{caller: testutil.Airline(1)}, logger)(next)
		rr := testutil.DoRequest(h, testutil.NewRequest(t, http.MethodPost, "/airlines"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		h := RequireCaller(stubValidator{caller: testutil.Airline(1)}, logger)(next)
		req := testutil.NewRequest(t, http.MethodPost, "/airlines")
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		rr := testutil.DoRequest(h, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		h := RequireCaller(stubValidator{err: errors.New("expired")}, logger)(next)
		req := testutil.NewRequest(t, http.MethodPost, "/airlines")
		testutil.WithBearer(req, "stale")
		rr := testutil.DoRequest(h, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})
}
