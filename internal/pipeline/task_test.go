package pipeline

import (
	"testing"
	"time"
)

// collectEvents drains a task's event channel until it closes, failing the
// test if no terminal event arrives in time.
func collectEvents(t *testing.T, events <-chan Event) []Event {
	t.Helper()

	var collected []Event
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return collected
			}
			collected = append(collected, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %d so far", len(collected))
		}
	}
}

// terminalEvent asserts exactly one terminal event, placed last.
func terminalEvent(t *testing.T, events []Event) Event {
	t.Helper()

	if len(events) == 0 {
		t.Fatal("no events emitted")
	}

	terminals := 0
	for _, ev := range events {
		if ev.Kind == EventDone || ev.Kind == EventFailed {
			terminals++
		}
	}
	if terminals != 1 {
		t.Fatalf("expected exactly 1 terminal event, got %d", terminals)
	}

	last := events[len(events)-1]
	if last.Kind == EventProgress {
		t.Fatalf("terminal event is not last; last event: %+v", last)
	}
	return last
}

func TestEmitterIgnoresEventsAfterTerminal(t *testing.T) {
	e := newEmitter()
	e.done("finished", "result")

	// must not panic on a closed channel
	e.progress("late")
	e.fail(nil)

	events := collectEvents(t, e.events)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Kind != EventDone {
		t.Errorf("event kind = %v, want EventDone", events[0].Kind)
	}
}
