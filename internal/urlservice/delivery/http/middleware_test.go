package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httphandler "shortlog/internal/urlservice/delivery/http"
	"shortlog/internal/urlservice/testutil/mocks"
	"shortlog/pkg/problemdetails"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
})

func newRateLimiter(t *testing.T, perMinute int) (*httphandler.RateLimiter, *mocks.EventRecorder) {
	events := mocks.NewEventRecorder()
	rl := httphandler.NewRateLimiter(perMinute, events)
	t.Cleanup(rl.Stop)
	return rl, events
}

func TestRateLimiter_Middleware_WithinLimit_Returns200(t *testing.T) {
	rl, _ := newRateLimiter(t, 100)
	handler := rl.Middleware(okHandler)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "Request %d should succeed", i+1)
		assert.Equal(t, "100", rr.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimiter_Middleware_ExceedsLimit_Returns429(t *testing.T) {
	rl, events := newRateLimiter(t, 2)
	handler := rl.Middleware(okHandler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if i < 2 {
			assert.Equal(t, http.StatusOK, rr.Code, "Request %d should succeed", i+1)
			continue
		}

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
		assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Reset"))

		var problem problemdetails.ProblemDetail
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&problem))
		assert.Equal(t, http.StatusTooManyRequests, problem.Status)
		assert.Contains(t, problem.Type, problemdetails.TypeRateLimitExceeded)
	}

	_, ok := events.Find("backend", "warn", "middleware", "Rate limit exceeded for 192.168.1.1 on GET /test")
	assert.True(t, ok)
}

func TestRateLimiter_Middleware_DifferentIPs_IndependentLimits(t *testing.T) {
	rl, _ := newRateLimiter(t, 1)
	handler := rl.Middleware(okHandler)

	req1 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req1.RemoteAddr = "10.0.0.1:1234"
	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, req1)
	assert.Equal(t, http.StatusOK, rr1.Code)

	req2 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req2.RemoteAddr = "10.0.0.2:5678"
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req2)
	assert.Equal(t, http.StatusOK, rr2.Code)
}

func TestRateLimiter_Middleware_SamePortlessIP_SharesLimit(t *testing.T) {
	rl, _ := newRateLimiter(t, 1)
	handler := rl.Middleware(okHandler)

	req1 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req1.RemoteAddr = "10.0.0.1:1111"
	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, req1)
	assert.Equal(t, http.StatusOK, rr1.Code)

	req2 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req2.RemoteAddr = "10.0.0.1:2222"
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rr2.Code)
}

func TestLoggerMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := httphandler.LoggerMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code, "Status code should be preserved")
	assert.Equal(t, "Not Found", rr.Body.String())

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/test", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
}

func TestEventMiddleware_EmitsIncomingRequest(t *testing.T) {
	events := mocks.NewEventRecorder()
	handler := httphandler.EventMiddleware(events)(okHandler)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/urls", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	recorded := events.Events()
	require.Len(t, recorded, 1)
	assert.Equal(t, mocks.RecordedEvent{
		Stack:   "backend",
		Level:   "info",
		Package: "middleware",
		Message: "Incoming request: POST /api/v1/urls",
	}, recorded[0])
}
