package eventlog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// gatedTransport blocks every Send until the gate is opened.
type gatedTransport struct {
	gate    chan struct{}
	started chan Payload

	mu   sync.Mutex
	sent []Payload
}

func newGatedTransport() *gatedTransport {
	return &gatedTransport{
		gate:    make(chan struct{}),
		started: make(chan Payload, 64),
	}
}

func (g *gatedTransport) Send(_ context.Context, p Payload) error {
	g.started <- p
	<-g.gate
	g.mu.Lock()
	g.sent = append(g.sent, p)
	g.mu.Unlock()
	return nil
}

func (g *gatedTransport) messages() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.sent))
	for _, p := range g.sent {
		out = append(out, p.Message)
	}
	return out
}

type panicTransport struct{}

func (panicTransport) Send(context.Context, Payload) error { panic("collector client bug") }

type errTransport struct{}

func (errTransport) Send(context.Context, Payload) error { return errors.New("connection refused") }

func testSender(t Transport) (sender, *Metrics) {
	m := NewMetrics(nil)
	return sender{
		transport: t,
		timeout:   time.Second,
		diag:      &diagnostics{log: zap.NewNop(), metrics: m},
	}, m
}

func payload(msg string) Payload {
	return Payload{Stack: "backend", Level: "info", Package: "service", Message: msg}
}

func TestPoolDispatcher_DropNew_DiscardsIncomingWhenFull(t *testing.T) {
	transport := newGatedTransport()
	s, metrics := testSender(transport)
	d := newPoolDispatcher(s, 1, 2, DropNew)

	d.Dispatch(payload("in-flight"))
	<-transport.started // the single worker is now busy

	d.Dispatch(payload("queued-1"))
	d.Dispatch(payload("queued-2"))
	d.Dispatch(payload("dropped"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Dropped.WithLabelValues("queue_full")))

	close(transport.gate)
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{"in-flight", "queued-1", "queued-2"}, transport.messages())
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Delivered))
}

func TestPoolDispatcher_DropOldest_EvictsHeadWhenFull(t *testing.T) {
	transport := newGatedTransport()
	s, metrics := testSender(transport)
	d := newPoolDispatcher(s, 1, 2, DropOldest)

	d.Dispatch(payload("in-flight"))
	<-transport.started

	d.Dispatch(payload("evicted"))
	d.Dispatch(payload("kept"))
	d.Dispatch(payload("newest"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Dropped.WithLabelValues("queue_full")))

	close(transport.gate)
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{"in-flight", "kept", "newest"}, transport.messages())
}

func TestPoolDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	s, metrics := testSender(errTransport{})
	d := newPoolDispatcher(s, 2, 4, DropNew)

	require.NoError(t, d.Close(context.Background()))
	assert.NotPanics(t, func() { d.Dispatch(payload("late")) })

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Dropped.WithLabelValues("closed")))
}

func TestPoolDispatcher_CloseHonoursContext(t *testing.T) {
	transport := newGatedTransport()
	defer close(transport.gate)
	s, _ := testSender(transport)
	d := newPoolDispatcher(s, 1, 1, DropNew)

	d.Dispatch(payload("stuck"))
	<-transport.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}

func TestGoDispatcher_CloseWaitsForInFlight(t *testing.T) {
	transport := newGatedTransport()
	s, metrics := testSender(transport)
	d := newGoDispatcher(s)

	for i := 0; i < 5; i++ {
		d.Dispatch(payload("event"))
	}
	for i := 0; i < 5; i++ {
		<-transport.started
	}

	close(transport.gate)
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, transport.messages(), 5)
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.Delivered))

	d.Dispatch(payload("late"))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Dropped.WithLabelValues("closed")))
}

func TestSender_RecoversFromTransportPanic(t *testing.T) {
	s, metrics := testSender(panicTransport{})
	d := newGoDispatcher(s)

	d.Dispatch(payload("x"))
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Failed))
}
