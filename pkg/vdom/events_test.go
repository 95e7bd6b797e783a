package vdom

import "testing"

func TestDispatchOrder(t *testing.T) {
	node := Button()
	var calls []string
	node.AddEventListener("click", func(Event) { calls = append(calls, "a") })
	node.AddEventListener("click", func(Event) { calls = append(calls, "b") })

	if n := node.Dispatch("click", nil); n != 2 {
		t.Errorf("Dispatch() = %d, want 2", n)
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Errorf("calls = %v", calls)
	}
}

func TestDispatchEvent(t *testing.T) {
	node := Button()
	var got Event
	node.AddEventListener("input", func(e Event) { got = e })

	node.Dispatch("input", "payload")

	if got.Type != "input" || got.Target != node || got.Detail != "payload" {
		t.Errorf("event = %+v", got)
	}
}

func TestRemoveEventListener(t *testing.T) {
	node := Button()
	calls := 0
	removeA := node.AddEventListener("click", func(Event) { calls += 1 })
	removeB := node.AddEventListener("click", func(Event) { calls += 10 })

	removeA()
	removeA()
	node.Dispatch("click", nil)
	if calls != 10 {
		t.Errorf("calls = %d, want 10", calls)
	}

	removeB()
	if node.ListenerCount("click") != 0 {
		t.Errorf("ListenerCount = %d, want 0", node.ListenerCount("click"))
	}
	if len(node.Events()) != 0 {
		t.Errorf("Events() = %v, want none", node.Events())
	}
}

func TestAddNilListener(t *testing.T) {
	node := Button()
	remove := node.AddEventListener("click", nil)
	remove()
	if node.ListenerCount("click") != 0 {
		t.Error("nil listener was registered")
	}
}

func TestDispatchWithoutListeners(t *testing.T) {
	var node *VNode
	if n := node.Dispatch("click", nil); n != 0 {
		t.Errorf("Dispatch on nil = %d", n)
	}
	if n := Div().Dispatch("click", nil); n != 0 {
		t.Errorf("Dispatch without listeners = %d", n)
	}
}
