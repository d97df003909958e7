// Package eventlog ships structured log events to a remote HTTP collector.
//
// Log validates an event against a fixed taxonomy of stacks, levels and
// packages, normalizes its message and hands it to a background dispatcher.
// It returns as soon as the delivery is queued or started. Nothing that goes
// wrong (invalid input, a slow or failing collector, a full queue) is ever
// reported to the caller; it is written to the diagnostic zap logger and
// counted in Prometheus metrics instead.
package eventlog

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Logger is safe for concurrent use.
type Logger struct {
	dispatcher Dispatcher
	transport  Transport
	diag       *diagnostics
}

type options struct {
	transport  Transport
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// Option configures a Logger.
type Option func(*options)

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithDiagnostics sets the local logger failures are reported to.
func WithDiagnostics(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegisterer registers the logger's metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New creates a Logger delivering to the collector described by cfg.
func New(cfg Config, opts ...Option) *Logger {
	cfg = cfg.withDefaults()

	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	diag := &diagnostics{
		log:     o.logger.Named("eventlog"),
		metrics: NewMetrics(o.registerer),
	}

	transport := o.transport
	if transport == nil {
		transport = NewHTTPTransport(cfg, diag.log)
	}

	s := sender{transport: transport, timeout: cfg.Timeout, diag: diag}

	var d Dispatcher
	if cfg.Workers > 0 {
		d = newPoolDispatcher(s, cfg.Workers, cfg.QueueSize, cfg.DropPolicy)
	} else {
		d = newGoDispatcher(s)
	}

	diag.log.Info("event logger started",
		zap.String("url", cfg.URL),
		zap.Bool("auth", cfg.Token != ""),
		zap.Int("workers", cfg.Workers),
		zap.Int("queue_size", cfg.QueueSize),
		zap.String("drop_policy", string(cfg.DropPolicy)),
	)

	return &Logger{dispatcher: d, transport: transport, diag: diag}
}

// NewNop returns a Logger that discards every event.
func NewNop() *Logger {
	return &Logger{
		dispatcher: nopDispatcher{},
		diag:       &diagnostics{log: zap.NewNop(), metrics: NewMetrics(nil)},
	}
}

// Log validates the event, normalizes message and dispatches it in the
// background. It never blocks on the collector, never panics and has no
// failure visible to the caller. A nil Logger discards the event.
func (l *Logger) Log(stack, level, pkg string, message any) {
	if l == nil {
		return
	}

	event, err := Validate(stack, level, pkg)
	if err != nil {
		l.diag.rejected(err, stack, level, pkg)
		return
	}

	l.dispatcher.Dispatch(event.Payload(NormalizeMessage(message)))
	l.diag.accepted()
}

// Close stops accepting events and waits for pending deliveries until ctx is
// done. Events logged after Close are dropped.
func (l *Logger) Close(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if err := l.dispatcher.Close(ctx); err != nil {
		return err
	}
	if c, ok := l.transport.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}

// Scope returns a helper bound to one stack and package.
func (l *Logger) Scope(stack Stack, pkg Package) Scoped {
	return Scoped{logger: l, stack: string(stack), pkg: string(pkg)}
}

// Scoped logs events for a fixed stack and package.
type Scoped struct {
	logger *Logger
	stack  string
	pkg    string
}

// Log records message at level for the scope's stack and package.
func (s Scoped) Log(level Level, message any) {
	s.logger.Log(s.stack, string(level), s.pkg, message)
}

// Debug records a debug event.
func (s Scoped) Debug(message any) { s.Log(LevelDebug, message) }

// Info records an info event.
func (s Scoped) Info(message any) { s.Log(LevelInfo, message) }

// Warn records a warn event.
func (s Scoped) Warn(message any) { s.Log(LevelWarn, message) }

// Error records an error event.
func (s Scoped) Error(message any) { s.Log(LevelError, message) }

// Fatal records a fatal event. It does not exit the process.
func (s Scoped) Fatal(message any) { s.Log(LevelFatal, message) }
