package compiler

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vbind/internal/errors"
	"github.com/vango-dev/vbind/pkg/keypath"
	"github.com/vango-dev/vbind/pkg/vdom"
	"github.com/vango-dev/vbind/pkg/viewmodel"
)

// Default tracer name for compile spans.
const defaultTracerName = "vbind"

// Compiler compiles trees against view-models. A Compiler holds no
// per-pass state and may be shared between goroutines as long as each
// pass works on its own tree.
type Compiler struct {
	logger   *slog.Logger
	resolver keypath.Resolver
	strip    bool
	metrics  *Metrics
	tracer   trace.Tracer
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMissingKey sets the policy for expressions naming missing data.
// Default: keypath.MissingError.
func WithMissingKey(m keypath.MissingKey) Option {
	return func(c *Compiler) {
		c.resolver.Missing = m
	}
}

// WithStripDirectives removes recognized directive attributes from
// elements once applied. Default: false, attributes stay in place.
func WithStripDirectives(strip bool) Option {
	return func(c *Compiler) {
		c.strip = strip
	}
}

// WithMetrics records compile metrics. Default: none.
func WithMetrics(m *Metrics) Option {
	return func(c *Compiler) {
		c.metrics = m
	}
}

// WithTracer sets the tracer used for compile spans.
// Default: the global provider's "vbind" tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Compiler) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger: slog.Default(),
		tracer: otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile binds the children of the mount root to vm.
//
// el selects the root: a *vdom.VNode, a selector string queried against
// doc, or nil to use vm.El. A target that resolves to nothing returns a
// Result with StatusNoRoot and a nil error.
//
// On error the tree is restored and the returned error is an
// *errors.Error; resolution failures also wrap a *keypath.Error.
func (c *Compiler) Compile(ctx context.Context, doc *vdom.Document, el any, vm *viewmodel.ViewModel) (*Result, error) {
	start := time.Now()
	if el == nil && vm != nil {
		el = vm.El
	}

	ctx, span := c.tracer.Start(ctx, "vbind.compile",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("vbind.target", describeTarget(el))),
	)
	defer span.End()

	res, err := c.compile(ctx, doc, el, vm)
	elapsed := time.Since(start)

	if err != nil {
		code := errors.CodeOf(err)
		c.metrics.observeCompile("error", elapsed)
		c.metrics.observeError(code)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("compile failed, tree restored",
			"target", describeTarget(el),
			"code", code,
			"error", err,
		)
		return nil, err
	}

	c.metrics.observeCompile(res.Status.String(), elapsed)
	span.SetAttributes(
		attribute.String("vbind.status", res.Status.String()),
		attribute.Int("vbind.nodes", res.Nodes),
		attribute.Int("vbind.directives", res.Directives),
		attribute.Int("vbind.interpolations", res.Interpolations),
		attribute.Int("vbind.skipped", len(res.Skipped)),
	)
	span.SetStatus(codes.Ok, "")
	c.logger.Debug("compile finished",
		"target", describeTarget(el),
		"status", res.Status.String(),
		"nodes", res.Nodes,
		"directives", res.Directives,
		"interpolations", res.Interpolations,
		"skipped", len(res.Skipped),
		"duration", elapsed,
	)
	return res, nil
}

func (c *Compiler) compile(ctx context.Context, doc *vdom.Document, el any, vm *viewmodel.ViewModel) (*Result, error) {
	root, err := resolveTarget(doc, el)
	if err != nil {
		return nil, err
	}
	if root == nil {
		c.logger.Debug("mount target not found, nothing to compile", "target", describeTarget(el))
		return &Result{Status: StatusNoRoot}, nil
	}

	res := &Result{Status: StatusCompiled, Root: root}
	w := &walker{
		ctx:      ctx,
		c:        c,
		vm:       vm,
		res:      res,
		journal:  &journal{},
		rootPath: nodePath(root),
	}

	staging := vdom.Fragment()
	for _, child := range root.DetachChildren() {
		staging.AppendChild(child)
	}

	err = w.walk(staging)
	if err != nil {
		w.journal.rollback()
	}
	for _, child := range staging.DetachChildren() {
		root.AppendChild(child)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// resolveTarget turns a mount target into a root node. A nil node with a
// nil error means nothing matched.
func resolveTarget(doc *vdom.Document, el any) (*vdom.VNode, error) {
	switch t := el.(type) {
	case nil:
		return nil, nil
	case *vdom.VNode:
		return t, nil
	case *vdom.Document:
		if t == nil {
			return nil, nil
		}
		return t.Root, nil
	case string:
		if doc == nil {
			return nil, errors.New("E012").WithExpr(t)
		}
		node, err := doc.QuerySelector(t)
		if err != nil {
			return nil, errors.New("E010").WithExpr(t).Wrap(err)
		}
		return node, nil
	}
	return nil, errors.New("E011").WithExpr(fmt.Sprintf("%T", el))
}

func describeTarget(el any) string {
	switch t := el.(type) {
	case nil:
		return "<nil>"
	case string:
		return t
	case *vdom.VNode:
		if t == nil {
			return "<nil>"
		}
		if t.Kind == vdom.KindElement {
			return describe(t)
		}
		return t.Kind.String()
	case *vdom.Document:
		return "document"
	}
	return "<invalid>"
}

// resolveCode maps a keypath failure to an error code.
func resolveCode(err error) string {
	switch {
	case stderrors.Is(err, keypath.ErrNotIndexable):
		return "E002"
	case stderrors.Is(err, keypath.ErrEmptyPath):
		return "E003"
	default:
		return "E001"
	}
}
