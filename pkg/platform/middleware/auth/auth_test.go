package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"coldcheck/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*JWTClaims, error) { return v.claims, v.err }

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
		wantActor  string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", validator: stubValidator{err: errors.New("bad")}, wantStatus: http.StatusUnauthorized},
		{name: "empty subject", header: "Bearer ok", validator: stubValidator{claims: &JWTClaims{}}, wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer ok", validator: stubValidator{claims: &JWTClaims{Subject: "user-1", Name: "Aida"}}, wantStatus: http.StatusOK, wantActor: "user-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor string
			h := RequireAuth(tt.validator, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				actor = requestcontext.Actor(r.Context())
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantActor, actor)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rr.Body.String(), `"error":"unauthorized"`)
			}
		})
	}
}
