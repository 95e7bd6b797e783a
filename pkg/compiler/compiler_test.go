package compiler

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vbind/internal/errors"
	"github.com/vango-dev/vbind/pkg/keypath"
	"github.com/vango-dev/vbind/pkg/vdom"
	"github.com/vango-dev/vbind/pkg/viewmodel"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCompiler(opts ...Option) *Compiler {
	return New(append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func appDocument(children ...any) (*vdom.Document, *vdom.VNode) {
	app := vdom.Div(append([]any{vdom.ID("app")}, children...)...)
	doc := vdom.NewDocument(vdom.Html(vdom.Body(app)))
	return doc, app
}

func TestCompileInterpolation(t *testing.T) {
	doc, app := appDocument(vdom.P(vdom.Text("Hello {{user.name}}!")))
	vm := viewmodel.New(viewmodel.Options{
		El:   "#app",
		Data: map[string]any{"user": map[string]any{"name": "Ada"}},
	})

	res, err := newCompiler().Compile(context.Background(), doc, nil, vm)
	require.NoError(t, err)
	assert.Equal(t, StatusCompiled, res.Status)
	assert.Same(t, app, res.Root)
	assert.Equal(t, "Hello Ada!", app.TextContent())
	assert.Equal(t, 1, res.Interpolations)
}

func TestCompileDirectives(t *testing.T) {
	span := vdom.Span(vdom.VText("count"), vdom.Text("stale"))
	input := vdom.Input(vdom.VModel("count"))
	body := vdom.Div(vdom.VHTML("markup"))
	_, app := appDocument(span, input, body)

	vm := viewmodel.New(viewmodel.Options{Data: map[string]any{
		"count":  5,
		"markup": "<b>{{count}}</b>",
	}})

	res, err := newCompiler().Compile(context.Background(), nil, app, vm)
	require.NoError(t, err)

	assert.Equal(t, "5", span.TextContent())
	assert.Equal(t, "5", input.Value)
	assert.Empty(t, input.Events(), "v-model binds one way")

	require.Len(t, body.Children, 1)
	assert.Equal(t, "b", body.Children[0].Tag)
	assert.Equal(t, "5", body.TextContent(), "inserted markup is compiled")

	assert.Equal(t, 3, res.Directives)
	assert.Equal(t, 1, res.Interpolations)
	assert.Empty(t, res.Skipped)
}

func TestCompileWalksWrittenContent(t *testing.T) {
	span := vdom.Span(vdom.VText("msg"))
	div := vdom.Div(vdom.VHTML("markup"))
	_, app := appDocument(span, div)
	before := app.Clone()

	data := map[string]any{
		"msg":    "{{name}}",
		"markup": "<b>{{name}}</b> <i>{{missing}}</i>",
		"name":   "Ann",
	}
	_, err := newCompiler().Compile(context.Background(), nil, app, viewmodel.New(viewmodel.Options{Data: data}))
	require.Error(t, err, "content written by v-html is resolved")
	assert.Equal(t, "E001", errors.CodeOf(err))
	assert.Equal(t, before, app.Clone())

	data["markup"] = "<b>{{name}}</b>"
	res, err := newCompiler().Compile(context.Background(), nil, app, viewmodel.New(viewmodel.Options{Data: data}))
	require.NoError(t, err)
	assert.Equal(t, "Ann", span.TextContent())
	require.Len(t, div.Children, 1)
	assert.Equal(t, "b", div.Children[0].Tag)
	assert.Equal(t, "Ann", div.TextContent())
	assert.Equal(t, 2, res.Interpolations)
	assert.Equal(t, 3, res.Elements)
}

func TestCompileMalformedInterpolation(t *testing.T) {
	texts := []string{"{{{a}}}", "{{ {{a}} }}", "x {{a{{b}}"}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			p := vdom.P(vdom.Text(text))
			_, app := appDocument(p)

			res, err := newCompiler().Compile(context.Background(), nil, app,
				viewmodel.New(viewmodel.Options{Data: map[string]any{"a": 1}}))
			require.NoError(t, err)
			assert.Equal(t, text, p.TextContent())
			assert.Equal(t, 0, res.Interpolations)
		})
	}
}

func TestCompileEvent(t *testing.T) {
	button := vdom.Button(vdom.VOn("click", "increment"), vdom.Text("+"))
	_, app := appDocument(button)

	var calls int
	vm := viewmodel.New(viewmodel.Options{
		Data: map[string]any{"count": 0},
		Methods: map[string]viewmodel.Method{
			"increment": func(vm *viewmodel.ViewModel, e vdom.Event) {
				calls++
				data := vm.Data.(map[string]any)
				data["count"] = data["count"].(int) + 1
			},
		},
	})

	_, err := newCompiler().Compile(context.Background(), nil, app, vm)
	require.NoError(t, err)
	require.Equal(t, 1, button.ListenerCount("click"))

	button.Dispatch("click", nil)
	button.Dispatch("click", nil)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, vm.Data.(map[string]any)["count"])
	assert.Equal(t, "+", button.TextContent(), "handlers do not trigger recompilation")
}

func TestCompileSkips(t *testing.T) {
	_, app := appDocument(
		vdom.Div(vdom.Attribute("v-foo", "bar")),
		vdom.Button(vdom.Attribute("v-on", "go")),
		vdom.Button(vdom.VOn("click", "missing")),
	)
	vm := viewmodel.New(viewmodel.Options{Methods: map[string]viewmodel.Method{
		"go": func(*viewmodel.ViewModel, vdom.Event) {},
	}})

	res, err := newCompiler().Compile(context.Background(), nil, app, vm)
	require.NoError(t, err)
	require.Len(t, res.Skipped, 3)

	assert.Equal(t, SkipUnknownDirective, res.Skipped[0].Reason)
	assert.Equal(t, "v-foo", res.Skipped[0].Attr)
	assert.Equal(t, "bar", res.Skipped[0].Value)
	assert.Equal(t, "html > body > div#app > div", res.Skipped[0].Node)

	assert.Equal(t, SkipNoEvent, res.Skipped[1].Reason)
	assert.Equal(t, SkipNoMethod, res.Skipped[2].Reason)
	assert.Equal(t, 0, res.Directives)

	app.Walk(func(n *vdom.VNode) bool {
		assert.Empty(t, n.Events())
		return true
	})
}

func TestCompileNoRoot(t *testing.T) {
	doc, app := appDocument(vdom.P(vdom.Text("{{missing}}")))
	before := app.Clone()

	tests := []struct {
		name string
		doc  *vdom.Document
		el   any
	}{
		{"selector matches nothing", doc, "#nope"},
		{"nil target", doc, nil},
		{"nil node", doc, (*vdom.VNode)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newCompiler().Compile(context.Background(), tt.doc, tt.el, viewmodel.New(viewmodel.Options{}))
			require.NoError(t, err)
			assert.Equal(t, StatusNoRoot, res.Status)
			assert.Nil(t, res.Root)
			assert.Equal(t, before, app.Clone())
		})
	}
}

func TestCompileTargetErrors(t *testing.T) {
	doc, _ := appDocument()

	tests := []struct {
		name string
		doc  *vdom.Document
		el   any
		code string
	}{
		{"invalid selector", doc, "#", "E010"},
		{"unsupported type", doc, 42, "E011"},
		{"selector without document", nil, "#app", "E012"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCompiler().Compile(context.Background(), tt.doc, tt.el, nil)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestCompilePreservesChildren(t *testing.T) {
	a := vdom.P(vdom.Text("{{a}}"))
	b := vdom.Comment("keep")
	c := vdom.Span(vdom.VText("b"))
	d := vdom.Text("  ")
	_, app := appDocument(a, b, c, d)

	vm := viewmodel.New(viewmodel.Options{Data: map[string]any{"a": 1, "b": 2}})
	_, err := newCompiler().Compile(context.Background(), nil, app, vm)
	require.NoError(t, err)

	require.Len(t, app.Children, 4)
	for i, want := range []*vdom.VNode{a, b, c, d} {
		assert.Same(t, want, app.Children[i])
		assert.Same(t, app, app.Children[i].Parent())
	}
	assert.Equal(t, "keep", b.Text)
	assert.Equal(t, "  ", d.Text)
}

func TestCompileIdentity(t *testing.T) {
	_, app := appDocument(
		vdom.H1(vdom.Text("Plain title")),
		vdom.Ul(vdom.Li(vdom.Text("one")), vdom.Li(vdom.Class("x"), vdom.Text("two"))),
		vdom.Input(vdom.Type("text"), vdom.ValueAttr("v")),
	)
	before := app.Clone()

	res, err := newCompiler().Compile(context.Background(), nil, app, viewmodel.New(viewmodel.Options{}))
	require.NoError(t, err)
	assert.Equal(t, before, app.Clone())
	assert.Equal(t, 0, res.Directives+res.Interpolations)
}

func TestCompileRollback(t *testing.T) {
	title := vdom.H1(vdom.Text("{{title}}"))
	span := vdom.Span(vdom.VText("count"), vdom.Text("old"))
	input := vdom.Input(vdom.VModel("count"))
	button := vdom.Button(vdom.VOn("click", "go"))
	broken := vdom.P(vdom.Text("{{user.name}}"))
	_, app := appDocument(title, span, input, button, broken)
	before := app.Clone()

	vm := viewmodel.New(viewmodel.Options{
		Data:    map[string]any{"title": "T", "count": 5},
		Methods: map[string]viewmodel.Method{"go": func(*viewmodel.ViewModel, vdom.Event) {}},
	})

	res, err := newCompiler(WithStripDirectives(true)).Compile(context.Background(), nil, app, vm)
	require.Error(t, err)
	assert.Nil(t, res)

	var e *errors.Error
	require.True(t, stderrors.As(err, &e))
	assert.Equal(t, "E001", e.Code)
	assert.Equal(t, "user.name", e.Expr)
	assert.Equal(t, "html > body > div#app > p > #text", e.Node)

	var pe *keypath.Error
	require.True(t, stderrors.As(err, &pe))
	assert.Equal(t, "user", pe.Segment)
	assert.ErrorIs(t, err, keypath.ErrNotFound)

	assert.Equal(t, before, app.Clone(), "tree must be restored")
	assert.Same(t, title, app.Children[0])
	assert.False(t, input.HasValue)
	assert.Empty(t, button.Events())
}

func TestCompileMissingZero(t *testing.T) {
	_, app := appDocument(
		vdom.P(vdom.Text("[{{user.name}}]")),
		vdom.Span(vdom.VText("nope")),
	)

	_, err := newCompiler(WithMissingKey(keypath.MissingZero)).
		Compile(context.Background(), nil, app, viewmodel.New(viewmodel.Options{Data: map[string]any{}}))
	require.NoError(t, err)
	assert.Equal(t, "[]", app.TextContent())
}

func TestCompileResolveCodes(t *testing.T) {
	tests := []struct {
		expr string
		code string
	}{
		{"missing", "E001"},
		{"n.x", "E002"},
		{"a..b", "E003"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, app := appDocument(vdom.Span(vdom.VText(tt.expr)))
			vm := viewmodel.New(viewmodel.Options{Data: map[string]any{"n": 1}})

			_, err := newCompiler().Compile(context.Background(), nil, app, vm)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestCompileCancelled(t *testing.T) {
	_, app := appDocument(vdom.P(vdom.Text("{{a}}")), vdom.P(vdom.Text("{{a}}")))
	before := app.Clone()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newCompiler().Compile(ctx, nil, app, viewmodel.New(viewmodel.Options{Data: map[string]any{"a": 1}}))
	require.Error(t, err)
	assert.Equal(t, "E050", errors.CodeOf(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, app.Clone())
}

func TestCompileStripDirectives(t *testing.T) {
	span := vdom.Span(vdom.ID("s"), vdom.VText("a"), vdom.Class("c"))
	unknown := vdom.Div(vdom.Attribute("v-foo", "x"))
	button := vdom.Button(vdom.VOn("click", "missing"))
	_, app := appDocument(span, unknown, button)

	vm := viewmodel.New(viewmodel.Options{Data: map[string]any{"a": "x"}})
	res, err := newCompiler(WithStripDirectives(true)).Compile(context.Background(), nil, app, vm)
	require.NoError(t, err)

	assert.Equal(t, []vdom.Attr{{Key: "id", Value: "s"}, {Key: "class", Value: "c"}}, span.Attrs)
	assert.True(t, unknown.HasAttr("v-foo"), "unknown directives are kept")
	assert.False(t, button.HasAttr("v-on:click"))
	assert.Equal(t, 2, res.Stripped)
}

func TestCompileKeepsDirectivesByDefault(t *testing.T) {
	span := vdom.Span(vdom.VText("a"))
	_, app := appDocument(span)

	res, err := newCompiler().Compile(context.Background(), nil, app,
		viewmodel.New(viewmodel.Options{Data: map[string]any{"a": "x"}}))
	require.NoError(t, err)
	assert.True(t, span.HasAttr("v-text"))
	assert.Equal(t, 0, res.Stripped)
}

func TestCompileNested(t *testing.T) {
	_, app := appDocument(
		vdom.Section(
			vdom.H2(vdom.Text("{{post.title}}")),
			vdom.Div(vdom.P(vdom.Text("by {{post.author.name}}")), vdom.Span(vdom.VText("post.tags.1"))),
		),
	)
	vm := viewmodel.New(viewmodel.Options{Data: map[string]any{
		"post": map[string]any{
			"title":  "Go",
			"author": map[string]any{"name": "Rob"},
			"tags":   []any{"lang", "tools"},
		},
	}})

	res, err := newCompiler().Compile(context.Background(), nil, app, vm)
	require.NoError(t, err)
	assert.Equal(t, "Goby Robtools", app.TextContent())
	assert.Equal(t, 2, res.Interpolations)
	assert.Equal(t, 1, res.Directives)
	assert.Equal(t, 5, res.Elements)
}

func TestCompileDocumentTarget(t *testing.T) {
	doc, err := vdom.ParseString(`<!DOCTYPE html><html><head><title>{{title}}</title></head><body><p>{{title}}</p></body></html>`)
	require.NoError(t, err)

	_, err = newCompiler().Compile(context.Background(), doc, doc,
		viewmodel.New(viewmodel.Options{Data: map[string]any{"title": "Hi"}}))
	require.NoError(t, err)

	p, _ := doc.QuerySelector("p")
	title, _ := doc.QuerySelector("title")
	assert.Equal(t, "Hi", p.TextContent())
	assert.Equal(t, "Hi", title.TextContent())
}

func TestCompileStructData(t *testing.T) {
	type user struct {
		Name string `json:"name"`
		Age  int
	}
	_, app := appDocument(vdom.P(vdom.Text("{{user.name}} is {{user.age}}")), vdom.Span(vdom.VText("user.Age")))

	vm := viewmodel.New(viewmodel.Options{Data: map[string]any{"user": &user{Name: "Ada", Age: 36}}})
	_, err := newCompiler().Compile(context.Background(), nil, app, vm)
	require.NoError(t, err)
	assert.Equal(t, "Ada is {{user.age}}36", app.TextContent())
}
