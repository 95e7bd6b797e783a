package vdom

import "sync/atomic"

// Event is delivered to listeners by Dispatch.
type Event struct {
	Type   string // "click", "input", etc.
	Target *VNode // Node the event was dispatched on
	Detail any    // Optional payload supplied by the dispatcher
}

// Listener handles an event.
type Listener func(Event)

type listenerEntry struct {
	id uint64
	fn Listener
}

// listenerSeq numbers registrations across all trees.
var listenerSeq atomic.Uint64

// AddEventListener registers fn for the named event and returns a function
// that removes exactly this registration.
func (v *VNode) AddEventListener(event string, fn Listener) (remove func()) {
	if fn == nil {
		return func() {}
	}
	if v.listeners == nil {
		v.listeners = make(map[string][]listenerEntry)
	}
	id := listenerSeq.Add(1)
	v.listeners[event] = append(v.listeners[event], listenerEntry{id: id, fn: fn})
	return func() {
		ls := v.listeners[event]
		for i, e := range ls {
			if e.id != id {
				continue
			}
			ls = append(ls[:i:i], ls[i+1:]...)
			if len(ls) == 0 {
				delete(v.listeners, event)
			} else {
				v.listeners[event] = ls
			}
			return
		}
	}
}

// ListenerCount returns how many listeners are registered for event.
func (v *VNode) ListenerCount(event string) int {
	if v == nil {
		return 0
	}
	return len(v.listeners[event])
}

// Events returns the names of events that have listeners.
func (v *VNode) Events() []string {
	if v == nil || len(v.listeners) == 0 {
		return nil
	}
	names := make([]string, 0, len(v.listeners))
	for name := range v.listeners {
		names = append(names, name)
	}
	return names
}

// Dispatch invokes the listeners registered for event in registration
// order and returns how many ran. It does not bubble.
func (v *VNode) Dispatch(event string, detail any) int {
	if v == nil {
		return 0
	}
	ls := append([]listenerEntry(nil), v.listeners[event]...)
	ev := Event{Type: event, Target: v, Detail: detail}
	for _, e := range ls {
		e.fn(ev)
	}
	return len(ls)
}
