package testutil

import (
	"net/http"

	id "surety/pkg/domain"
	"surety/pkg/requestcontext"
)

// WithCaller puts caller in the request context as RequireCaller would after
// validating a bearer token.
func WithCaller(req *http.Request, caller id.MemberID) *http.Request {
	return req.WithContext(requestcontext.WithCallerID(req.Context(), caller))
}
