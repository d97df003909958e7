package eventlog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"shortlog/internal/eventlog"

	"github.com/stretchr/testify/assert"
)

type collectedEvent struct {
	auth    string
	payload eventlog.Payload
}

type fakeCollector struct {
	*httptest.Server

	mu     sync.Mutex
	events []collectedEvent
}

func newFakeCollector(t *testing.T) *fakeCollector {
	c := &fakeCollector{}
	c.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p eventlog.Payload
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&p)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.mu.Lock()
		c.events = append(c.events, collectedEvent{auth: r.Header.Get("Authorization"), payload: p})
		c.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"logID":"a1b2","message":"log created successfully"}`))
	}))
	t.Cleanup(c.Close)
	return c
}

func (c *fakeCollector) received() []collectedEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]collectedEvent(nil), c.events...)
}
