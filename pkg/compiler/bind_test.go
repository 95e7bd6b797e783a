package compiler_test

import (
	"testing"

	"github.com/vango-dev/vbind/pkg/compiler"
	"github.com/vango-dev/vbind/pkg/vdom"
	"github.com/vango-dev/vbind/pkg/viewmodel"
	"github.com/vango-dev/vbind/pkg/vtest"
)

func TestBindCounter(t *testing.T) {
	m := vtest.NewMount(`<div id="app"><p>{{ label }}: <b v-text="count"></b></p><button v-on:click="inc">+</button></div>`).
		WithData("label", "Clicks").
		WithData("count", 0).
		WithMethod("inc", func(vm *viewmodel.ViewModel, _ vdom.Event) {
			data := vm.Data.(map[string]any)
			data["count"] = data["count"].(int) + 1
		}).
		Build(t)

	vtest.ExpectContains(t, m.Root, `<p>Clicks: <b v-text="count">0</b></p>`)

	if n := m.Click(t, "button"); n != 1 {
		t.Fatalf("Click ran %d listeners, want 1", n)
	}
	m.Click(t, "button")
	if got := m.VM.Data.(map[string]any)["count"]; got != 2 {
		t.Errorf("count = %v, want 2", got)
	}
	vtest.ExpectContains(t, m.Root, `<b v-text="count">0</b>`)
}

func TestBindWrittenContent(t *testing.T) {
	m := vtest.NewMount(`<div id="app"><span v-text="msg"></span><div v-html="markup"></div></div>`).
		WithData("msg", "{{name}}").
		WithData("markup", `<b class="who">{{name}}</b>`).
		WithData("name", "Ann").
		WithOptions(compiler.WithStripDirectives(true)).
		Build(t)

	vtest.ExpectContains(t, m.Root, `<span>Ann</span><div><b class="who">Ann</b></div>`)
	vtest.ExpectNotContains(t, m.Root, "{{")
	if m.Result.Interpolations != 2 {
		t.Errorf("Interpolations = %d, want 2", m.Result.Interpolations)
	}
}

func TestBindMalformedInterpolation(t *testing.T) {
	m := vtest.NewMount(`<div id="app"><p>{{{a}}}</p><p>x {{a{{b}}</p></div>`).
		WithData("a", 1).
		Build(t)

	vtest.ExpectContains(t, m.Root, "<p>{{{a}}}</p><p>x {{a{{b}}</p>")
}
