package compiler

import (
	"context"
	"strings"

	"github.com/vango-dev/vbind/internal/errors"
	"github.com/vango-dev/vbind/pkg/directive"
	"github.com/vango-dev/vbind/pkg/keypath"
	"github.com/vango-dev/vbind/pkg/vdom"
	"github.com/vango-dev/vbind/pkg/viewmodel"
)

// class is the walker's view of a node kind.
type class uint8

const (
	classOther class = iota
	classElement
	classText
)

// classify derives the class from the node kind on every visit; nodes can
// change under the walker.
func classify(n *vdom.VNode) class {
	switch n.Kind {
	case vdom.KindElement:
		return classElement
	case vdom.KindText:
		return classText
	default:
		return classOther
	}
}

// walker carries the state of one compile pass.
type walker struct {
	ctx      context.Context
	c        *Compiler
	vm       *viewmodel.ViewModel
	res      *Result
	journal  *journal
	rootPath string
}

// walk visits the children of parent in pre-order, recursing into the
// live nodes so that effects applied to a node are visible to its
// descendants.
func (w *walker) walk(parent *vdom.VNode) error {
	for _, node := range parent.ChildNodes() {
		if err := w.ctx.Err(); err != nil {
			return errors.New("E050").WithNode(w.path(node)).Wrap(err)
		}
		w.res.Nodes++

		switch classify(node) {
		case classElement:
			w.res.Elements++
			if err := w.element(node); err != nil {
				return err
			}
		case classText:
			if strings.TrimSpace(node.Text) != "" {
				w.res.Texts++
				if err := w.text(node); err != nil {
					return err
				}
			}
		}

		if node.HasChildNodes() {
			if err := w.walk(node); err != nil {
				return err
			}
		}
	}
	return nil
}

// element applies the directives of node in attribute order. Content
// written by v-text or v-html is walked afterwards like any other child.
func (w *walker) element(node *vdom.VNode) error {
	for _, a := range node.AttrsSnapshot() {
		d, status := directive.Parse(a.Key)
		switch status {
		case directive.NotDirective:
			continue
		case directive.Unknown:
			w.c.metrics.observeDirective(directiveLabel(d, status), "ignored")
			w.skip(node, a, SkipUnknownDirective)
			continue
		}

		out, err := directive.Apply(d, a.Value, node, w.vm, w.c.resolver, w.journal)
		if err != nil {
			return w.resolveError(err, node, a.Value)
		}
		w.c.metrics.observeDirective(directiveLabel(d, status), out.String())

		switch out {
		case directive.OutcomeApplied:
			w.res.Directives++
		case directive.OutcomeNoEvent:
			w.skip(node, a, SkipNoEvent)
		case directive.OutcomeNoMethod:
			w.skip(node, a, SkipNoMethod)
		}

		if w.c.strip && w.journal.removeAttr(node, a.Key) {
			w.res.Stripped++
		}
	}
	return nil
}

// text rewrites the first interpolation of a text node.
func (w *walker) text(node *vdom.VNode) error {
	var failedExpr string
	out, matched, err := interpolate(node.Text, func(expr string) (string, error) {
		v, err := w.c.resolver.Resolve(w.data(), expr)
		if err != nil {
			failedExpr = expr
			return "", err
		}
		return keypath.Stringify(v), nil
	})
	if err != nil {
		return w.resolveError(err, node, failedExpr)
	}
	if !matched {
		return nil
	}
	w.journal.setData(node, out)
	w.res.Interpolations++
	w.c.metrics.observeInterpolation()
	return nil
}

func (w *walker) data() any {
	if w.vm == nil {
		return nil
	}
	return w.vm.Data
}

func (w *walker) skip(node *vdom.VNode, a vdom.Attr, reason SkipReason) {
	path := w.path(node)
	w.res.Skipped = append(w.res.Skipped, Skip{
		Node:   path,
		Attr:   a.Key,
		Value:  a.Value,
		Reason: reason,
	})
	w.c.logger.Debug("directive ignored",
		"node", path,
		"attr", a.Key,
		"value", a.Value,
		"reason", string(reason),
	)
}

func (w *walker) resolveError(err error, node *vdom.VNode, expr string) error {
	return errors.New(resolveCode(err)).
		WithNode(w.path(node)).
		WithExpr(strings.TrimSpace(expr)).
		WithSuggestion("Check that every segment of the expression exists in the data, or compile with missingkey=zero").
		Wrap(err)
}

// path describes node including the ancestry of the mount root, which the
// staged node is detached from while the pass runs.
func (w *walker) path(node *vdom.VNode) string {
	p := nodePath(node)
	switch {
	case w.rootPath == "":
		return p
	case p == "":
		return w.rootPath
	}
	return w.rootPath + " > " + p
}
