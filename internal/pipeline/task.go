package pipeline

// EventKind classifies events on a task's event channel.
type EventKind int

const (
	// EventProgress is a human-readable status update or warning.
	EventProgress EventKind = iota
	// EventDone is the single terminal success event.
	EventDone
	// EventFailed is the single terminal failure event.
	EventFailed
)

// Event is one notification from a running task. A task emits zero or more
// progress events followed by exactly one terminal event, then closes its
// channel. For a successful transcription, Result carries the subtitle
// text; for a successful synthesis, the destination path.
type Event struct {
	Kind    EventKind
	Message string
	Result  string
}

// emitter wraps a task's event channel with the single-terminal-event
// discipline.
type emitter struct {
	events chan Event
	closed bool
}

func newEmitter() *emitter {
	return &emitter{events: make(chan Event, 16)}
}

func (e *emitter) progress(msg string) {
	if e.closed {
		return
	}
	e.events <- Event{Kind: EventProgress, Message: msg}
}

func (e *emitter) done(msg, result string) {
	if e.closed {
		return
	}
	e.events <- Event{Kind: EventDone, Message: msg, Result: result}
	e.closed = true
	close(e.events)
}

func (e *emitter) fail(err error) {
	if e.closed {
		return
	}
	e.events <- Event{Kind: EventFailed, Message: err.Error()}
	e.closed = true
	close(e.events)
}
