package render

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/vango-dev/vbind/pkg/vdom"
)

func render(t *testing.T, cfg Config, node *vdom.VNode) string {
	t.Helper()
	out, err := NewRenderer(cfg).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	return out
}

func TestRenderElements(t *testing.T) {
	tests := []struct {
		name     string
		node     *vdom.VNode
		expected string
	}{
		{
			name:     "empty element",
			node:     vdom.Div(),
			expected: "<div></div>",
		},
		{
			name:     "attributes keep source order",
			node:     vdom.Div(vdom.ID("app"), vdom.Class("a", "b"), vdom.Data("x", "1")),
			expected: `<div id="app" class="a b" data-x="1"></div>`,
		},
		{
			name:     "directive attributes are ordinary attributes",
			node:     vdom.Button(vdom.VOn("click", "increment"), vdom.Text("+")),
			expected: `<button v-on:click="increment">+</button>`,
		},
		{
			name:     "text is escaped",
			node:     vdom.P(vdom.Text(`<b>"x" & y</b>`)),
			expected: "<p>&lt;b&gt;&quot;x&quot; &amp; y&lt;/b&gt;</p>",
		},
		{
			name:     "void element",
			node:     vdom.Div(vdom.Br(), vdom.Input(vdom.Type("text"))),
			expected: `<div><br><input type="text"></div>`,
		},
		{
			name:     "boolean attribute",
			node:     vdom.Input(vdom.Attribute("disabled", ""), vdom.Attribute("checked", "checked")),
			expected: "<input disabled checked>",
		},
		{
			name:     "empty attribute value",
			node:     vdom.Div(vdom.Attribute("v-foo", "")),
			expected: `<div v-foo=""></div>`,
		},
		{
			name:     "raw markup is verbatim",
			node:     vdom.Div(vdom.Raw("<b>{{x}}</b>")),
			expected: "<div><b>{{x}}</b></div>",
		},
		{
			name:     "comment",
			node:     vdom.Div(vdom.Comment(" note ")),
			expected: "<div><!-- note --></div>",
		},
		{
			name:     "fragment has no wrapper",
			node:     vdom.Fragment(vdom.Span(), vdom.Text("x")),
			expected: "<span></span>x",
		},
		{
			name:     "script content is not escaped",
			node:     vdom.Element("script", vdom.Text("if (a < b) {}")),
			expected: "<script>if (a < b) {}</script>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, Config{}, tt.node); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRenderValueProperty(t *testing.T) {
	withValue := func(n *vdom.VNode, v string) *vdom.VNode {
		n.SetValue(v)
		return n
	}

	tests := []struct {
		name     string
		cfg      Config
		node     *vdom.VNode
		expected string
	}{
		{
			name:     "appended to input",
			node:     withValue(vdom.Input(vdom.VModel("count")), "5"),
			expected: `<input v-model="count" value="5">`,
		},
		{
			name:     "replaces value attribute in place",
			node:     withValue(vdom.Input(vdom.ValueAttr("old"), vdom.Name("n")), `a"b`),
			expected: `<input value="a&quot;b" name="n">`,
		},
		{
			name:     "textarea content",
			node:     withValue(vdom.Textarea(vdom.Text("old")), "<new>"),
			expected: "<textarea>&lt;new&gt;</textarea>",
		},
		{
			name:     "omitted",
			cfg:      Config{OmitValue: true},
			node:     withValue(vdom.Input(), "5"),
			expected: "<input>",
		},
		{
			name:     "unassigned",
			node:     vdom.Input(vdom.ValueAttr("keep")),
			expected: `<input value="keep">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.cfg, tt.node); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRenderPretty(t *testing.T) {
	node := vdom.Div(vdom.ID("app"),
		vdom.H1(vdom.Text("Title")),
		vdom.P(vdom.Text("Hello "), vdom.Span(vdom.Text("Ada"))),
		vdom.Comment("c"),
	)
	expected := "<div id=\"app\">\n" +
		"  <h1>Title</h1>\n" +
		"  <p>Hello <span>Ada</span></p>\n" +
		"  <!--c-->\n" +
		"</div>\n"

	got := render(t, Config{Pretty: true}, node)
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}

	got = render(t, Config{Pretty: true, Indent: "\t"}, vdom.Ul(vdom.Li(vdom.Text("x"))))
	if want := "<ul>\n\t<li>x</li>\n</ul>\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderChildren(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(Config{}).RenderChildren(&buf, vdom.Div(vdom.ID("app"), vdom.P(vdom.Text("a")), vdom.Text("b")))
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "<p>a</p>b" {
		t.Errorf("got %q", got)
	}
}

func TestRenderDocument(t *testing.T) {
	doc, err := vdom.ParseString(`<!DOCTYPE html><html><head><title>T</title></head><body><div id="app">{{x}}</div></body></html>`)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewRenderer(Config{}).RenderDocument(&buf, doc); err != nil {
		t.Fatal(err)
	}
	want := `<!DOCTYPE html><html><head><title>T</title></head><body><div id="app">{{x}}</div></body></html>`
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

type failingWriter struct {
	n int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.n == 0 {
		return 0, errors.New("write failed")
	}
	f.n--
	return len(p), nil
}

func TestRenderWriteError(t *testing.T) {
	err := NewRenderer(Config{}).RenderToWriter(&failingWriter{n: 2}, vdom.Div(vdom.P(vdom.Text("x"))))
	if err == nil || err.Error() != "write failed" {
		t.Fatalf("err = %v, want write failed", err)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := NewRenderer(Config{}).RenderToString(&vdom.VNode{Kind: vdom.VKind(99)})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

type flushRecorder struct {
	*httptest.ResponseRecorder
	flushedAt []int
}

func (f *flushRecorder) Flush() {
	f.flushedAt = append(f.flushedAt, f.Body.Len())
}

func TestStreamingRenderer(t *testing.T) {
	doc := vdom.NewDocument(vdom.Html(vdom.Head(vdom.Title(vdom.Text("T"))), vdom.Body(vdom.P(vdom.Text("x")))))
	doc.Doctype = "html"

	rec := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}
	if err := NewStreamingRenderer(rec, Config{}).Render(doc); err != nil {
		t.Fatal(err)
	}

	head := len("<!DOCTYPE html><html><head><title>T</title></head>")
	if len(rec.flushedAt) != 2 || rec.flushedAt[0] != head || rec.flushedAt[1] != rec.Body.Len() {
		t.Errorf("flushedAt = %v, body length %d", rec.flushedAt, rec.Body.Len())
	}
}
