package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shortlog/pkg/problemdetails"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayClientLog_ValidEvent_Returns202(t *testing.T) {
	d := setupTestHandler(t)
	rr := httptest.NewRecorder()

	d.handler.RelayClientLog(rr, postJSON(t, "/api/v1/client-logs", map[string]any{
		"level":   "ERROR",
		"package": "component",
		"message": "Checkout button failed to render",
	}))

	assert.Equal(t, http.StatusAccepted, rr.Code)

	events := d.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "frontend", events[0].Stack)
	assert.Equal(t, "ERROR", events[0].Level)
	assert.Equal(t, "component", events[0].Package)
	assert.Equal(t, "Checkout button failed to render", events[0].Message)
}

func TestRelayClientLog_StructuredMessage(t *testing.T) {
	d := setupTestHandler(t)
	rr := httptest.NewRecorder()

	d.handler.RelayClientLog(rr, postJSON(t, "/api/v1/client-logs", map[string]any{
		"level":   "info",
		"package": "page",
		"message": map[string]any{"route": "/dashboard", "ms": 120},
	}))

	assert.Equal(t, http.StatusAccepted, rr.Code)

	events := d.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, `{"ms":120,"route":"/dashboard"}`, events[0].Message)
}

func TestRelayClientLog_SharedPackageAccepted(t *testing.T) {
	d := setupTestHandler(t)
	rr := httptest.NewRecorder()

	d.handler.RelayClientLog(rr, postJSON(t, "/api/v1/client-logs", map[string]any{
		"level":   "warn",
		"package": "auth",
		"message": "token refresh failed",
	}))

	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestRelayClientLog_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{
			name:  "missing level",
			body:  map[string]any{"package": "api", "message": "x"},
			field: "level",
		},
		{
			name:  "missing package",
			body:  map[string]any{"level": "info", "message": "x"},
			field: "package",
		},
		{
			name:  "missing message",
			body:  map[string]any{"level": "info", "package": "api"},
			field: "message",
		},
		{
			name:  "unknown level",
			body:  map[string]any{"level": "verbose", "package": "api", "message": "x"},
			field: "level",
		},
		{
			name:  "backend package from frontend",
			body:  map[string]any{"level": "info", "package": "db", "message": "x"},
			field: "package",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupTestHandler(t)
			rr := httptest.NewRecorder()

			d.handler.RelayClientLog(rr, postJSON(t, "/api/v1/client-logs", tt.body))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			problem := decodeProblem(t, rr)
			assert.Contains(t, problem.Type, problemdetails.TypeValidationError)
			require.NotEmpty(t, problem.Errors)
			assert.Equal(t, tt.field, problem.Errors[0].Field)
			assert.Empty(t, d.events.Events())
		})
	}
}

func TestRelayClientLog_MalformedBody_Returns400(t *testing.T) {
	d := setupTestHandler(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/client-logs", bytes.NewReader([]byte("{")))

	d.handler.RelayClientLog(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	problem := decodeProblem(t, rr)
	assert.Contains(t, problem.Type, problemdetails.TypeInvalidRequest)
}

func TestRelayClientLog_OversizedBody_Returns400(t *testing.T) {
	d := setupTestHandler(t)
	rr := httptest.NewRecorder()

	big, err := json.Marshal(map[string]any{
		"level":   "info",
		"package": "api",
		"message": string(bytes.Repeat([]byte("a"), 128<<10)),
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/client-logs", bytes.NewReader(big))

	d.handler.RelayClientLog(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, d.events.Events())
}
