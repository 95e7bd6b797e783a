package compiler

import "github.com/vango-dev/vbind/pkg/vdom"

// Status reports whether a compile pass ran.
type Status uint8

const (
	// StatusCompiled means the root was found and compiled.
	StatusCompiled Status = iota
	// StatusNoRoot means the mount target resolved to nothing and no work
	// was done.
	StatusNoRoot
)

// String returns a lower-case name for the status.
func (s Status) String() string {
	switch s {
	case StatusCompiled:
		return "compiled"
	case StatusNoRoot:
		return "no-root"
	default:
		return "unknown"
	}
}

// SkipReason explains why a directive attribute had no effect.
type SkipReason string

const (
	SkipUnknownDirective SkipReason = "unknown-directive"
	SkipNoEvent          SkipReason = "no-event"
	SkipNoMethod         SkipReason = "no-method"
)

// Skip records a directive attribute that was ignored.
type Skip struct {
	Node   string // Path of the element, e.g. "div#app > button"
	Attr   string // Attribute name, e.g. "v-on:click"
	Value  string // Attribute value
	Reason SkipReason
}

// Result summarizes a compile pass.
type Result struct {
	Status Status
	Root   *vdom.VNode

	Nodes          int // Nodes visited
	Elements       int // Element nodes visited
	Texts          int // Non-blank text nodes visited
	Interpolations int // Text nodes rewritten
	Directives     int // Directives applied
	Stripped       int // Directive attributes removed

	Skipped []Skip
}
