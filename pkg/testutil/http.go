// Package testutil holds request builders and response assertions shared by
// the handler and router tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldcheck/pkg/platform/httputil"
)

// NewJSONRequest builds a request whose body is body marshaled as JSON.
// A nil body sends no payload.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		payload = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest builds a request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// DoRequest serves req on handler and returns the recorded response.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, into any) {
	t.Helper()
	raw, err := io.ReadAll(rr.Body)
	require.NoError(t, err, "read response body")
	require.NoError(t, json.Unmarshal(raw, into), "decode response body: %s", raw)
}

// UnmarshalResponse decodes the JSON response body into a T.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var out T
	decodeBody(t, rr, &out)
	return &out
}

// AssertStatus checks the response status code.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertStatusOK checks for 200.
func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertStatusAndError checks the status code and the error envelope code.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	var errResp httputil.ErrorResponse
	decodeBody(t, rr, &errResp)
	assert.Equal(t, expectedCode, errResp.Error, "unexpected error code")
}

// AssertJSONContains checks one top-level field of a JSON object response.
func AssertJSONContains(t *testing.T, rr *httptest.ResponseRecorder, key string, expectedValue any) {
	t.Helper()
	var body map[string]any
	decodeBody(t, rr, &body)
	assert.Equal(t, expectedValue, body[key], "unexpected value for key %q", key)
}
