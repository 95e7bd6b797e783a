// Package viewmodel defines the data and methods a template is bound to.
package viewmodel

import (
	"sort"

	"github.com/vango-dev/vbind/pkg/vdom"
)

// Method is an event handler bound by a v-on directive. The view-model is
// passed explicitly as the receiver.
type Method func(vm *ViewModel, e vdom.Event)

// Options mirror the fields accepted when a view-model is created.
type Options struct {
	// El is the mount target: a *vdom.VNode, a selector string, or nil.
	El any

	// Data is the data bag expressions are resolved against. Any value
	// keypath can traverse works; decoded JSON/YAML maps are typical.
	Data any

	// Methods maps names used in v-on directives to handlers.
	Methods map[string]Method
}

// ViewModel holds the data bag, the method bag and the mount target.
// The compiler only reads it; handlers attached to the tree may mutate Data
// later, which does not trigger recompilation.
type ViewModel struct {
	El      any
	Data    any
	Methods map[string]Method
}

// New creates a ViewModel from options.
func New(opts Options) *ViewModel {
	return &ViewModel{
		El:      opts.El,
		Data:    opts.Data,
		Methods: opts.Methods,
	}
}

// Method looks up a method by name.
func (vm *ViewModel) Method(name string) (Method, bool) {
	if vm == nil || vm.Methods == nil {
		return nil, false
	}
	fn, ok := vm.Methods[name]
	return fn, ok && fn != nil
}

// MethodNames returns the registered method names in sorted order.
func (vm *ViewModel) MethodNames() []string {
	if vm == nil {
		return nil
	}
	names := make([]string, 0, len(vm.Methods))
	for name := range vm.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
