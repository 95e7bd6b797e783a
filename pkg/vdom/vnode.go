package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <input>, etc.
	KindText                  // Plain text node
	KindFragment              // Detached grouping, also the document node
	KindRaw                   // Markup written verbatim, never parsed
	KindComment               // <!-- ... -->
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// VNode is a node of the mutable document tree.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Attrs    []Attr   // Attributes in source order
	Children []*VNode // Child nodes
	Text     string   // For KindText, KindRaw and KindComment
	Value    string   // Form control value property
	HasValue bool     // Value was assigned through SetValue

	parent    *VNode
	listeners map[string][]listenerEntry
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Parent returns the node's parent, or nil when detached.
func (v *VNode) Parent() *VNode {
	if v == nil {
		return nil
	}
	return v.parent
}

// IsElement reports whether v is an element node.
func (v *VNode) IsElement() bool { return v != nil && v.Kind == KindElement }

// IsText reports whether v is a text node.
func (v *VNode) IsText() bool { return v != nil && v.Kind == KindText }

// HasChildNodes reports whether v has at least one child.
func (v *VNode) HasChildNodes() bool { return v != nil && len(v.Children) > 0 }

// ChildNodes returns a snapshot of v's children. Mutating the tree while
// ranging over the snapshot is safe.
func (v *VNode) ChildNodes() []*VNode {
	if v == nil || len(v.Children) == 0 {
		return nil
	}
	out := make([]*VNode, len(v.Children))
	copy(out, v.Children)
	return out
}

// AppendChild appends child to v, detaching it from its current parent first.
func (v *VNode) AppendChild(child *VNode) *VNode {
	if child == nil {
		return nil
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = v
	v.Children = append(v.Children, child)
	return child
}

// RemoveChild removes child from v. It reports whether child was found.
func (v *VNode) RemoveChild(child *VNode) bool {
	for i, c := range v.Children {
		if c == child {
			v.Children = append(v.Children[:i], v.Children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// DetachChildren removes every child of v and returns them in order.
func (v *VNode) DetachChildren() []*VNode {
	if v == nil {
		return nil
	}
	children := v.Children
	v.Children = nil
	for _, c := range children {
		c.parent = nil
	}
	return children
}

// ReplaceChildren detaches v's children and appends nodes in their place.
// The detached children are returned in order.
func (v *VNode) ReplaceChildren(nodes ...*VNode) []*VNode {
	old := v.DetachChildren()
	for _, n := range nodes {
		v.AppendChild(n)
	}
	return old
}

// TextContent returns the concatenated text of v and its descendants.
// Comments and raw markup do not contribute, matching DOM textContent.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindText:
		return v.Text
	case KindRaw, KindComment:
		return ""
	}
	var b strings.Builder
	v.collectText(&b)
	return b.String()
}

func (v *VNode) collectText(b *strings.Builder) {
	for _, c := range v.Children {
		switch c.Kind {
		case KindText:
			b.WriteString(c.Text)
		case KindElement, KindFragment:
			c.collectText(b)
		}
	}
}

// SetTextContent replaces the content of v with s. On text and comment
// nodes it assigns the node's data; on elements and fragments every child
// is replaced by a single text node (none when s is empty).
func (v *VNode) SetTextContent(s string) {
	switch v.Kind {
	case KindText, KindComment, KindRaw:
		v.Text = s
		return
	}
	v.DetachChildren()
	if s != "" {
		v.AppendChild(Text(s))
	}
}

// SetInnerHTML replaces the children of v with the nodes parsed from
// markup, like the DOM innerHTML setter.
func (v *VNode) SetInnerHTML(markup string) {
	v.ReplaceChildren(ParseNodes(markup)...)
}

// SetValue assigns the form control value property. It does not touch the
// value attribute, just like the DOM property.
func (v *VNode) SetValue(value string) {
	v.Value = value
	v.HasValue = true
}

// ClearValue resets the value property to its unassigned state.
func (v *VNode) ClearValue() {
	v.Value = ""
	v.HasValue = false
}

// GetAttr returns the value of the named attribute.
func (v *VNode) GetAttr(name string) (string, bool) {
	if v == nil {
		return "", false
	}
	for _, a := range v.Attrs {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (v *VNode) HasAttr(name string) bool {
	_, ok := v.GetAttr(name)
	return ok
}

// SetAttr sets an attribute, keeping its position when it already exists.
func (v *VNode) SetAttr(name, value string) {
	for i, a := range v.Attrs {
		if a.Key == name {
			v.Attrs[i].Value = value
			return
		}
	}
	v.Attrs = append(v.Attrs, Attr{Key: name, Value: value})
}

// RemoveAttr removes the named attribute. It returns the removed attribute
// and its former index, or -1 when it was not present.
func (v *VNode) RemoveAttr(name string) (Attr, int) {
	for i, a := range v.Attrs {
		if a.Key == name {
			v.Attrs = append(v.Attrs[:i], v.Attrs[i+1:]...)
			return a, i
		}
	}
	return Attr{}, -1
}

// InsertAttr inserts an attribute at index i, clamped to the valid range.
func (v *VNode) InsertAttr(i int, a Attr) {
	if i < 0 || i > len(v.Attrs) {
		i = len(v.Attrs)
	}
	v.Attrs = append(v.Attrs, Attr{})
	copy(v.Attrs[i+1:], v.Attrs[i:])
	v.Attrs[i] = a
}

// AttrsSnapshot returns a copy of the attribute list.
func (v *VNode) AttrsSnapshot() []Attr {
	if len(v.Attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(v.Attrs))
	copy(out, v.Attrs)
	return out
}

// Classes returns the whitespace separated class list.
func (v *VNode) Classes() []string {
	class, _ := v.GetAttr("class")
	return strings.Fields(class)
}

// Clone returns a deep copy of v without a parent. Listeners are copied by
// reference.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	c := &VNode{
		Kind:     v.Kind,
		Tag:      v.Tag,
		Attrs:    v.AttrsSnapshot(),
		Text:     v.Text,
		Value:    v.Value,
		HasValue: v.HasValue,
	}
	if len(v.listeners) > 0 {
		c.listeners = make(map[string][]listenerEntry, len(v.listeners))
		for k, ls := range v.listeners {
			c.listeners[k] = append([]listenerEntry(nil), ls...)
		}
	}
	for _, child := range v.Children {
		c.AppendChild(child.Clone())
	}
	return c
}

// Walk calls fn for v and each descendant in pre-order. Returning false
// from fn skips the node's children.
func (v *VNode) Walk(fn func(*VNode) bool) {
	if v == nil {
		return
	}
	if !fn(v) {
		return
	}
	for _, c := range v.ChildNodes() {
		c.Walk(fn)
	}
}
