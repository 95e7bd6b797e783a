// Package directive parses v-* attributes and applies their effects.
//
// Directives form a closed set: v-text, v-html, v-model and v-on:<event>.
// An attribute name is parsed once into a Directive value and applied with
// a single switch, so there is no string-keyed handler table to keep in
// sync.
//
// Handlers must not alter child topology except by replacing an element's
// content wholesale (v-text, v-html). Callers walking the tree rely on this
// and visit the new content after the directives of its element.
package directive

import "strings"

// Prefix marks an attribute as a directive.
const Prefix = "v-"

// Kind identifies a directive.
type Kind uint8

const (
	KindText  Kind = iota + 1 // v-text="expr"
	KindHTML                  // v-html="expr"
	KindModel                 // v-model="expr"
	KindEvent                 // v-on:event="method"
)

// String returns the directive name without prefix.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHTML:
		return "html"
	case KindModel:
		return "model"
	case KindEvent:
		return "on"
	default:
		return "unknown"
	}
}

// Directive is a parsed directive attribute.
type Directive struct {
	Kind Kind
	Name string // Attribute name without prefix, e.g. "on:click"
	Arg  string // Event name for KindEvent, empty otherwise
}

// Status classifies an attribute name.
type Status uint8

const (
	// NotDirective means the attribute does not carry the prefix.
	NotDirective Status = iota
	// Unknown means the attribute carries the prefix but names no
	// supported directive. Unknown directives are ignored.
	Unknown
	// Recognized means the attribute parsed into a Directive.
	Recognized
)

// String returns a lower-case name for the status.
func (s Status) String() string {
	switch s {
	case NotDirective:
		return "not-directive"
	case Unknown:
		return "unknown"
	case Recognized:
		return "recognized"
	default:
		return "invalid"
	}
}

// IsDirective reports whether an attribute name carries the prefix.
func IsDirective(attrName string) bool {
	return strings.HasPrefix(attrName, Prefix)
}

// Parse classifies an attribute name.
//
//	Parse("v-text")     // {KindText, "text", ""}, Recognized
//	Parse("v-on:click") // {KindEvent, "on:click", "click"}, Recognized
//	Parse("v-on")       // {KindEvent, "on", ""}, Recognized (skipped when applied)
//	Parse("v-text:x")   // Unknown
//	Parse("class")      // NotDirective
func Parse(attrName string) (Directive, Status) {
	if !IsDirective(attrName) {
		return Directive{}, NotDirective
	}
	name := attrName[len(Prefix):]

	head, rest, hasArg := strings.Cut(name, ":")
	if head == "on" {
		arg := ""
		if hasArg {
			arg, _, _ = strings.Cut(rest, ":")
		}
		return Directive{Kind: KindEvent, Name: name, Arg: arg}, Recognized
	}

	switch name {
	case "text":
		return Directive{Kind: KindText, Name: name}, Recognized
	case "html":
		return Directive{Kind: KindHTML, Name: name}, Recognized
	case "model":
		return Directive{Kind: KindModel, Name: name}, Recognized
	}
	return Directive{Name: name}, Unknown
}
