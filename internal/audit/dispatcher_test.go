package audit

import (
	"context"
	"sync"
	"testing"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
}

func (m *memorySink) Log(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func TestDispatcher_DeliversBeforeClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink)

	uid := uint(7)
	for i := 0; i < 10; i++ {
		d.Dispatch(Event{UserID: &uid, Action: "appointment_created", Entity: "appointment", EntityID: "1"})
	}
	d.Close()

	if len(sink.events) != 10 {
		t.Errorf("expected 10 events, got %d", len(sink.events))
	}
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "appointment_created"})
	d.Close()
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink)
	d.Close()

	d.Dispatch(Event{Action: "appointment_cancelled", Entity: "appointment", EntityID: "3"})
	d.Close()

	if len(sink.events) != 0 {
		t.Errorf("expected no events after close, got %d", len(sink.events))
	}
}
