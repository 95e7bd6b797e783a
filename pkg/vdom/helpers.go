package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an opaque markup node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Comment creates a comment node.
func Comment(data string) *VNode {
	return &VNode{
		Kind: KindComment,
		Text: data,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	appendArgs(node, children)
	return node
}

// appendArgs appends the node-like arguments to parent.
func appendArgs(parent *VNode, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				parent.AppendChild(v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					parent.AppendChild(c)
				}
			}
		case string:
			parent.AppendChild(Text(v))
		}
	}
}
