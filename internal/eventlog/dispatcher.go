package eventlog

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Dispatcher hands payloads to a Transport in the background. Dispatch never
// blocks on the network and never reports failures to its caller.
type Dispatcher interface {
	Dispatch(p Payload)
	// Close stops accepting payloads and waits for pending deliveries until
	// ctx is done.
	Close(ctx context.Context) error
}

// sender performs one bounded delivery and reports the outcome.
type sender struct {
	transport Transport
	timeout   time.Duration
	diag      *diagnostics
}

func (s *sender) send(p Payload) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.diag.failed(p, fmt.Errorf("transport panicked: %v", r))
		}
	}()

	if err := s.transport.Send(ctx, p); err != nil {
		s.diag.failed(p, err)
		return
	}
	s.diag.delivered()
}

// goDispatcher starts one goroutine per payload.
type goDispatcher struct {
	sender

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func newGoDispatcher(s sender) *goDispatcher {
	return &goDispatcher{sender: s}
}

func (d *goDispatcher) Dispatch(p Payload) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.diag.dropped(p, "closed")
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.send(p)
	}()
}

func (d *goDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	return waitGroup(ctx, &d.wg)
}

// poolDispatcher queues payloads in a bounded channel drained by a fixed
// number of workers. A full queue applies the drop policy instead of blocking.
type poolDispatcher struct {
	sender

	queue  chan Payload
	policy DropPolicy

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func newPoolDispatcher(s sender, workers, size int, policy DropPolicy) *poolDispatcher {
	d := &poolDispatcher{
		sender: s,
		queue:  make(chan Payload, size),
		policy: policy,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

func (d *poolDispatcher) worker() {
	defer d.wg.Done()
	for p := range d.queue {
		d.send(p)
	}
}

func (d *poolDispatcher) Dispatch(p Payload) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.diag.dropped(p, "closed")
		return
	}

	select {
	case d.queue <- p:
		return
	default:
	}

	if d.policy == DropOldest {
		select {
		case old := <-d.queue:
			d.diag.dropped(old, "queue_full")
		default:
		}
		select {
		case d.queue <- p:
			return
		default:
		}
	}

	d.diag.dropped(p, "queue_full")
}

func (d *poolDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	return waitGroup(ctx, &d.wg)
}

func waitGroup(ctx context.Context, wg *sync.WaitGroup) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(Payload) {}

func (nopDispatcher) Close(context.Context) error { return nil }
