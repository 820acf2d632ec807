package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope is the API response wrapper with a typed data field
type Envelope[T any] struct {
	Success bool                     `json:"success"`
	Data    T                        `json:"data"`
	Count   *int                     `json:"count"`
	Error   string                   `json:"error"`
	Errors  []domain.ValidationError `json:"errors"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// DecodeData decodes a success envelope and returns its data
func DecodeData[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var env Envelope[T]
	AssertJSONResponse(t, resp, &env)
	require.True(t, env.Success, "expected success envelope, got error %q", env.Error)
	return env.Data
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var env Envelope[json.RawMessage]
	AssertJSONResponse(t, resp, &env)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, expectedMessage, "error message mismatch")
}

// AssertValidationFields verifies a 400 response listing exactly the given fields, in order
func AssertValidationFields(t *testing.T, resp *http.Response, fields ...string) {
	t.Helper()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "unexpected status code")

	var env Envelope[json.RawMessage]
	AssertJSONResponse(t, resp, &env)
	assert.False(t, env.Success)

	got := make([]string, len(env.Errors))
	for i, e := range env.Errors {
		got[i] = e.Field
	}
	assert.Equal(t, fields, got, "validation fields mismatch")
}
