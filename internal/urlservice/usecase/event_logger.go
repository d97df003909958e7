package usecase

// EventLogger is the part of *eventlog.Logger the service layers call. Log
// never blocks on the collector and never fails.
type EventLogger interface {
	Log(stack, level, pkg string, message any)
}
