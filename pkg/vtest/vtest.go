package vtest

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/vbind/pkg/compiler"
	"github.com/vango-dev/vbind/pkg/render"
	"github.com/vango-dev/vbind/pkg/vdom"
	"github.com/vango-dev/vbind/pkg/viewmodel"
)

// MountBuilder is a fluent builder for compiled test documents.
type MountBuilder struct {
	markup   string
	selector string
	data     map[string]any
	methods  map[string]viewmodel.Method
	opts     []compiler.Option
}

// Mounted is a compiled document.
type Mounted struct {
	Doc    *vdom.Document
	Root   *vdom.VNode
	VM     *viewmodel.ViewModel
	Result *compiler.Result
}

// NewMount starts a builder for markup mounted on "#app".
func NewMount(markup string) *MountBuilder {
	return &MountBuilder{
		markup:   markup,
		selector: "#app",
		data:     make(map[string]any),
		methods:  make(map[string]viewmodel.Method),
	}
}

// WithSelector sets the mount target.
func (b *MountBuilder) WithSelector(sel string) *MountBuilder {
	b.selector = sel
	return b
}

// WithData sets a top-level data key.
func (b *MountBuilder) WithData(key string, val any) *MountBuilder {
	b.data[key] = val
	return b
}

// WithMethod registers a method.
func (b *MountBuilder) WithMethod(name string, fn viewmodel.Method) *MountBuilder {
	b.methods[name] = fn
	return b
}

// WithOptions adds compiler options.
func (b *MountBuilder) WithOptions(opts ...compiler.Option) *MountBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Build parses and compiles the template. Any error fails the test
// immediately, as does a mount target that matches nothing.
func (b *MountBuilder) Build(t testing.TB) *Mounted {
	t.Helper()

	doc, err := vdom.ParseString(b.markup)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	vm := viewmodel.New(viewmodel.Options{
		El:      b.selector,
		Data:    b.data,
		Methods: b.methods,
	})
	res, err := compiler.New(b.opts...).Compile(context.Background(), doc, nil, vm)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res.Status != compiler.StatusCompiled {
		t.Fatalf("mount target %q: status %s", b.selector, res.Status)
	}
	return &Mounted{Doc: doc, Root: res.Root, VM: vm, Result: res}
}

// Click dispatches a click on the first element matching sel under the
// mount root and returns the number of listeners that ran.
func (m *Mounted) Click(t testing.TB, sel string) int {
	t.Helper()
	return m.Dispatch(t, sel, "click", nil)
}

// Dispatch dispatches event on the first element matching sel under the
// mount root.
func (m *Mounted) Dispatch(t testing.TB, sel, event string, detail any) int {
	t.Helper()
	n, err := vdom.QuerySelector(m.Root, sel)
	if err != nil {
		t.Fatalf("selector %q: %v", sel, err)
	}
	if n == nil {
		t.Fatalf("no element matches %q", sel)
	}
	return n.Dispatch(event, detail)
}

// RenderToString renders a node to HTML. Render errors yield "".
func RenderToString(node *vdom.VNode) string {
	html, err := render.NewRenderer(render.Config{}).RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
