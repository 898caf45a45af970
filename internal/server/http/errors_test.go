package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apiError
		status int
		code   string
	}{
		{"validation", errValidation("bad input"), http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"not found", errNotFound("missing"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", errUnauthorized("no token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", errForbidden("denied"), http.StatusForbidden, "FORBIDDEN"},
		{"conflict", errConflict("exists"), http.StatusConflict, "CONFLICT"},
		{"internal", errInternal("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unavailable", errServiceUnavailable("down"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.status)
			assert.Equal(t, tt.code, tt.err.code)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestWriteAPIError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeAPIError(rr, errServiceUnavailable("capacity exhausted"))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "capacity exhausted", resp.Error)
	assert.Equal(t, "SERVICE_UNAVAILABLE", resp.Code)
}

func TestWriteAPIError_UnauthorizedChallenge(t *testing.T) {
	rr := httptest.NewRecorder()
	writeAPIError(rr, errUnauthorized("token required"))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
}
