package eventlog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Metrics counts what happens to events after Log is called.
type Metrics struct {
	Accepted  prometheus.Counter
	Rejected  *prometheus.CounterVec
	Dropped   *prometheus.CounterVec
	Delivered prometheus.Counter
	Failed    prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Accepted: f.NewCounter(prometheus.CounterOpts{
			Name: "eventlog_events_accepted_total",
			Help: "Events that passed validation and were handed to the dispatcher",
		}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventlog_events_rejected_total",
			Help: "Events rejected by validation",
		}, []string{"reason"}),
		Dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventlog_events_dropped_total",
			Help: "Events discarded before delivery",
		}, []string{"reason"}),
		Delivered: f.NewCounter(prometheus.CounterOpts{
			Name: "eventlog_events_delivered_total",
			Help: "Events acknowledged by the collector",
		}),
		Failed: f.NewCounter(prometheus.CounterOpts{
			Name: "eventlog_delivery_failures_total",
			Help: "Deliveries that failed with a transport error or non-2xx status",
		}),
	}
}

// diagnostics is the single sink for every failure the logger swallows.
type diagnostics struct {
	log     *zap.Logger
	metrics *Metrics
}

func (d *diagnostics) rejected(err error, stack, level, pkg string) {
	d.metrics.Rejected.WithLabelValues(rejectReason(err)).Inc()
	d.log.Warn("log event rejected",
		zap.String("stack", stack),
		zap.String("level", level),
		zap.String("package", pkg),
		zap.Error(err),
	)
}

func (d *diagnostics) accepted() {
	d.metrics.Accepted.Inc()
}

func (d *diagnostics) dropped(p Payload, reason string) {
	d.metrics.Dropped.WithLabelValues(reason).Inc()
	d.log.Warn("log event dropped",
		zap.String("reason", reason),
		zap.String("stack", p.Stack),
		zap.String("level", p.Level),
		zap.String("package", p.Package),
	)
}

func (d *diagnostics) delivered() {
	d.metrics.Delivered.Inc()
}

func (d *diagnostics) failed(p Payload, err error) {
	d.metrics.Failed.Inc()
	d.log.Error("failed to send log event",
		zap.String("stack", p.Stack),
		zap.String("level", p.Level),
		zap.String("package", p.Package),
		zap.Error(err),
	)
}
