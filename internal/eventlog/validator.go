package eventlog

import "strings"

// Event is a validated, lowercased (stack, level, package) triple.
type Event struct {
	Stack   Stack
	Level   Level
	Package Package
}

// Validate checks raw stack, level and package values against the taxonomy.
// All three must be non-empty. Matching is case-insensitive and the returned
// Event carries the lowercased values. Checks run in a fixed order (presence,
// stack, level, package) and the first failure is returned.
func Validate(stack, level, pkg string) (Event, error) {
	switch {
	case stack == "":
		return Event{}, &MissingFieldError{Field: "stack"}
	case level == "":
		return Event{}, &MissingFieldError{Field: "level"}
	case pkg == "":
		return Event{}, &MissingFieldError{Field: "package"}
	}

	s := Stack(strings.ToLower(stack))
	l := Level(strings.ToLower(level))
	p := Package(strings.ToLower(pkg))

	if !s.Valid() {
		return Event{}, &InvalidStackError{Value: string(s)}
	}
	if !l.Valid() {
		return Event{}, &InvalidLevelError{Value: string(l)}
	}
	if !s.Allows(p) {
		return Event{}, &InvalidPackageError{Value: string(p), Stack: s}
	}

	return Event{Stack: s, Level: l, Package: p}, nil
}

// Payload builds the wire form of e with an already normalized message.
func (e Event) Payload(message string) Payload {
	return Payload{
		Stack:   string(e.Stack),
		Level:   string(e.Level),
		Package: string(e.Package),
		Message: message,
	}
}
