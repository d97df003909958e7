package mocks

import (
	"strings"
	"sync"

	"shortlog/internal/eventlog"
	"shortlog/internal/urlservice/usecase"
)

var _ usecase.EventLogger = (*EventRecorder)(nil)

// RecordedEvent is one Log call seen by an EventRecorder.
type RecordedEvent struct {
	Stack   string
	Level   string
	Package string
	Message string
}

// EventRecorder records Log calls instead of shipping them.
type EventRecorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) Log(stack, level, pkg string, message any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{
		Stack:   stack,
		Level:   level,
		Package: pkg,
		Message: eventlog.NormalizeMessage(message),
	})
}

func (r *EventRecorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedEvent(nil), r.events...)
}

// Find returns the first event for stack, level and pkg whose message
// contains substr.
func (r *EventRecorder) Find(stack, level, pkg, substr string) (RecordedEvent, bool) {
	for _, e := range r.Events() {
		if e.Stack == stack && e.Level == level && e.Package == pkg && strings.Contains(e.Message, substr) {
			return e, true
		}
	}
	return RecordedEvent{}, false
}
