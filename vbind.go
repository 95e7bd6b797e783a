// Package vbind binds HTML templates to view-models.
//
// A view-model is created from Options and mounted onto a document in one
// step, the way a Vue instance is created with new Vue({el, data, methods}):
//
//	doc, _ := vbind.ParseString(`<div id="app"><p>Hello {{user.name}}!</p></div>`)
//	vm, res, err := vbind.Mount(ctx, doc, vbind.Options{
//	    El:   "#app",
//	    Data: map[string]any{"user": map[string]any{"name": "Ada"}},
//	})
//
// The tree is compiled exactly once. Handlers bound with v-on may change
// vm.Data later; nothing is re-rendered when they do.
package vbind

import (
	"context"

	"github.com/vango-dev/vbind/pkg/compiler"
	"github.com/vango-dev/vbind/pkg/vdom"
	"github.com/vango-dev/vbind/pkg/viewmodel"
)

// =============================================================================
// Types
// =============================================================================

// Options configure a view-model: the mount target, the data bag and the
// method bag.
type Options = viewmodel.Options

// ViewModel is a mounted view-model.
type ViewModel = viewmodel.ViewModel

// Method is an event handler referenced by v-on directives.
type Method = viewmodel.Method

// Event is passed to methods when a bound event is dispatched.
type Event = vdom.Event

// Result summarizes a compile pass.
type Result = compiler.Result

// Document is a parsed template.
type Document = vdom.Document

// =============================================================================
// Mounting
// =============================================================================

// Mount creates a view-model from opts and compiles the tree it targets.
// opts.El may be a selector queried against doc or a *vdom.VNode.
//
// When the target matches nothing, Mount returns the view-model and a
// Result with compiler.StatusNoRoot. On error the tree is left unchanged.
func Mount(ctx context.Context, doc *Document, opts Options, copts ...compiler.Option) (*ViewModel, *Result, error) {
	vm := viewmodel.New(opts)
	res, err := compiler.New(copts...).Compile(ctx, doc, nil, vm)
	if err != nil {
		return nil, nil, err
	}
	return vm, res, nil
}

// MustMount is like Mount but panics on error.
func MustMount(ctx context.Context, doc *Document, opts Options, copts ...compiler.Option) *ViewModel {
	vm, _, err := Mount(ctx, doc, opts, copts...)
	if err != nil {
		panic(err)
	}
	return vm
}

// =============================================================================
// Parsing
// =============================================================================

// ParseString parses a complete HTML document.
func ParseString(markup string) (*Document, error) {
	return vdom.ParseString(markup)
}
