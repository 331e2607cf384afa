package httputil

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "coldcheck/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "bad_request" {
			t.Fatalf("expected error code bad_request, got %q", body["error"])
		}
		if body["error_description"] != "invalid input" {
			t.Fatalf("expected error_description to be returned for bad request")
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "section not found"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, io.ErrUnexpectedEOF)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "unexpected EOF")
	})
}

type sampleRequest struct {
	Name  string `json:"name" validate:"required,max=5"`
	Count int    `json:"count" validate:"gte=0"`

	validated bool
}

func (r *sampleRequest) Validate() error {
	if r.Name == "nope" {
		return dErrors.New(dErrors.CodeValidation, "name is reserved")
	}
	r.validated = true
	return nil
}

func decode(t *testing.T, body string) (*sampleRequest, *httptest.ResponseRecorder, bool) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	req, ok := DecodeAndPrepare[sampleRequest](w, r, logger, context.Background(), "req-1")
	return req, w, ok
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("valid body runs Validate", func(t *testing.T) {
		req, _, ok := decode(t, `{"name":"abc","count":1}`)
		require.True(t, ok)
		assert.Equal(t, "abc", req.Name)
		assert.True(t, req.validated)
	})

	t.Run("empty body is a bad request", func(t *testing.T) {
		_, w, ok := decode(t, ``)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "request body is required")
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		_, w, ok := decode(t, `{"name":`)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"bad_request"`)
	})

	t.Run("struct tags are checked and reported per field", func(t *testing.T) {
		_, w, ok := decode(t, `{"name":"toolong","count":-1}`)
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "validation_error", body.Error)
		assert.Equal(t, map[string]string{"name": "max", "count": "gte"}, body.Fields)
	})

	t.Run("Validate errors are written", func(t *testing.T) {
		_, w, ok := decode(t, `{"name":"nope"}`)
		require.False(t, ok)
		assert.Contains(t, w.Body.String(), "name is reserved")
	})
}
