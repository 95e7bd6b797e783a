// Package vtest provides testing helpers for templates bound with vbind.
//
// A fluent builder parses a template, mounts a view-model on it and fails
// the test on any error:
//
//	func TestGreeting(t *testing.T) {
//	    m := vtest.NewMount(`<div id="app"><p>Hi {{ user.name }}</p></div>`).
//	        WithData("user", map[string]any{"name": "Ada"}).
//	        Build(t)
//	    vtest.ExpectContains(t, m.Root, "<p>Hi Ada</p>")
//	}
//
// # Render Assertions
//
// Assertions render the node to HTML and compare substrings:
//
//	vtest.ExpectElement(t, m.Root, "button")
//	vtest.ExpectAttribute(t, m.Root, "value", "Ada")
//	vtest.ExpectNotContains(t, m.Root, "{{")
//
// # Events
//
// Click dispatches an event on the first element matching a selector and
// reports how many listeners ran:
//
//	m := vtest.NewMount(tmpl).
//	    WithData("count", 0).
//	    WithMethod("inc", func(vm *viewmodel.ViewModel, _ vdom.Event) { ... }).
//	    Build(t)
//	m.Click(t, "button")
package vtest
