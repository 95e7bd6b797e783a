// Package vdom provides the in-memory DOM tree that vbind compiles.
//
// The tree is a small, mutable stand-in for a browser document. It offers
// exactly the capabilities the compiler consumes: child enumeration, node
// kind discrimination, ordered attribute enumeration, text content, markup
// content parsed into nodes, an input value property, event listener registration and
// batch reparenting.
//
// # Core Types
//
// VNode is the building block representing elements, text, fragments, raw
// markup and comments. Document wraps a root node and answers selector
// queries.
//
// # Element API
//
// Trees can be built with variadic factory functions:
//
//	Div(ID("app"),
//	    H1(Text("{{ title }}")),
//	    Input(Attribute("v-model", "name")),
//	    Button(Attribute("v-on:click", "save"), Text("Save")),
//	)
//
// or parsed from HTML with Parse and ParseString.
//
// # Ownership
//
// A node has at most one parent. AppendChild moves a node that is already
// attached elsewhere, mirroring DOM semantics, so a node can never appear
// twice in a tree.
package vdom
