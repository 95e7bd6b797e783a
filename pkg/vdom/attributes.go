package vdom

import "strings"

// Attribute creates an attribute with an arbitrary name, e.g.
// Attribute("v-on:click", "save").
func Attribute(key, value string) Attr { return Attr{Key: key, Value: value} }

// ID sets the id attribute.
func ID(id string) Attr { return Attribute("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return Attribute("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return Attribute("data-"+key, value) }

// Name sets the name attribute.
func Name(name string) Attr { return Attribute("name", name) }

// Type sets the type attribute.
func Type(t string) Attr { return Attribute("type", t) }

// ValueAttr sets the value attribute (named to avoid confusion with the
// value property set by VNode.SetValue).
func ValueAttr(value string) Attr { return Attribute("value", value) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return Attribute("placeholder", text) }

// Href sets the href attribute.
func Href(url string) Attr { return Attribute("href", url) }

// Directive attributes

// VText creates a v-text directive attribute.
func VText(expr string) Attr { return Attribute("v-text", expr) }

// VHTML creates a v-html directive attribute.
func VHTML(expr string) Attr { return Attribute("v-html", expr) }

// VModel creates a v-model directive attribute.
func VModel(expr string) Attr { return Attribute("v-model", expr) }

// VOn creates a v-on:event directive attribute bound to a method name.
func VOn(event, method string) Attr { return Attribute("v-on:"+event, method) }
