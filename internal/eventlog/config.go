package eventlog

import "time"

const (
	// DefaultURL is the collector endpoint used when none is configured.
	DefaultURL = "http://20.244.56.144/evaluation-service/logs"
	// DefaultTimeout bounds a single delivery attempt.
	DefaultTimeout   = 5 * time.Second
	DefaultQueueSize = 1024
)

// DropPolicy decides which event is discarded when the dispatch queue is full.
type DropPolicy string

const (
	// DropNew discards the event being dispatched.
	DropNew DropPolicy = "drop_new"
	// DropOldest evicts the event at the head of the queue to make room.
	DropOldest DropPolicy = "drop_oldest"
)

// Config is the collector configuration. It is built once at start-up and
// never mutated afterwards.
type Config struct {
	// URL of the collector. Empty means DefaultURL.
	URL string
	// Token is sent as a bearer token when non-empty.
	Token string
	// Timeout of one delivery. Zero means DefaultTimeout.
	Timeout time.Duration
	// Workers is the size of the delivery pool. Zero starts one goroutine per
	// event with no bound on concurrent deliveries.
	Workers int
	// QueueSize is the pool's queue capacity. Ignored when Workers is zero.
	QueueSize  int
	DropPolicy DropPolicy
}

func (c Config) withDefaults() Config {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.DropPolicy != DropOldest {
		c.DropPolicy = DropNew
	}
	return c
}
