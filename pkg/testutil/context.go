package testutil

import (
	"net/http"
	"time"

	"coldcheck/pkg/requestcontext"
)

// WithActor adds an authenticated subject to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithActor(req *http.Request, actor string) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor))
}

// WithTime pins the request-scoped clock.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
