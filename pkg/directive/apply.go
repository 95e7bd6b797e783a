package directive

import (
	"strings"

	"github.com/vango-dev/vbind/pkg/keypath"
	"github.com/vango-dev/vbind/pkg/vdom"
	"github.com/vango-dev/vbind/pkg/viewmodel"
)

// Outcome reports what applying a directive did.
type Outcome uint8

const (
	// OutcomeApplied means the effect was applied.
	OutcomeApplied Outcome = iota
	// OutcomeNoEvent means a v-on directive had no event name.
	OutcomeNoEvent
	// OutcomeNoMethod means a v-on directive named a method the
	// view-model does not have.
	OutcomeNoMethod
	// OutcomeUnknown means the directive kind is not supported.
	OutcomeUnknown
)

// String returns a lower-case name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNoEvent:
		return "no-event"
	case OutcomeNoMethod:
		return "no-method"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Effects performs node mutations on behalf of directives. Callers that
// need to undo a compile pass supply a recording implementation.
type Effects interface {
	SetText(node *vdom.VNode, text string)
	SetHTML(node *vdom.VNode, markup string)
	SetValue(node *vdom.VNode, value string)
	Listen(node *vdom.VNode, event string, fn vdom.Listener)
}

// Direct applies effects straight to the tree.
type Direct struct{}

func (Direct) SetText(node *vdom.VNode, text string) {
	node.SetTextContent(text)
}

func (Direct) SetHTML(node *vdom.VNode, markup string) {
	node.SetInnerHTML(markup)
}

func (Direct) SetValue(node *vdom.VNode, value string) {
	node.SetValue(value)
}

func (Direct) Listen(node *vdom.VNode, event string, fn vdom.Listener) {
	node.AddEventListener(event, fn)
}

// Apply applies d to node. expr is the attribute value: a data path for
// value directives, a method name for v-on. The only errors returned are
// *keypath.Error values from resolving expr; nothing is mutated then.
func Apply(d Directive, expr string, node *vdom.VNode, vm *viewmodel.ViewModel, r keypath.Resolver, fx Effects) (Outcome, error) {
	if fx == nil {
		fx = Direct{}
	}

	switch d.Kind {
	case KindText, KindHTML, KindModel:
		v, err := r.Resolve(data(vm), expr)
		if err != nil {
			return OutcomeUnknown, err
		}
		s := keypath.Stringify(v)
		switch d.Kind {
		case KindText:
			fx.SetText(node, s)
		case KindHTML:
			fx.SetHTML(node, s)
		case KindModel:
			fx.SetValue(node, s)
		}
		return OutcomeApplied, nil

	case KindEvent:
		if d.Arg == "" {
			return OutcomeNoEvent, nil
		}
		// Surrounding whitespace is not part of the method name.
		fn, ok := vm.Method(strings.TrimSpace(expr))
		if !ok {
			return OutcomeNoMethod, nil
		}
		fx.Listen(node, d.Arg, func(e vdom.Event) { fn(vm, e) })
		return OutcomeApplied, nil
	}

	return OutcomeUnknown, nil
}

func data(vm *viewmodel.ViewModel) any {
	if vm == nil {
		return nil
	}
	return vm.Data
}
