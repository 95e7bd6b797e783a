package vdom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads a complete HTML document. Missing html, head and body
// elements are synthesized the way browsers do.
func Parse(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := &Document{Root: &VNode{Kind: KindFragment}}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			doc.Doctype = c.Data
			continue
		}
		if v := convert(c); v != nil {
			doc.Root.AppendChild(v)
		}
	}
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses markup in the context of a body element and returns
// the resulting nodes under a fragment. No html, head or body elements are
// synthesized.
func ParseFragment(r io.Reader) (*VNode, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	frag := &VNode{Kind: KindFragment}
	for _, n := range nodes {
		if v := convert(n); v != nil {
			frag.AppendChild(v)
		}
	}
	return frag, nil
}

// ParseFragmentString is ParseFragment over a string.
func ParseFragmentString(s string) (*VNode, error) {
	return ParseFragment(strings.NewReader(s))
}

// ParseNodes parses markup in a body context and returns the detached
// top-level nodes. Markup that fails to parse is kept as one raw node.
func ParseNodes(markup string) []*VNode {
	if markup == "" {
		return nil
	}
	frag, err := ParseFragmentString(markup)
	if err != nil {
		return []*VNode{Raw(markup)}
	}
	return frag.DetachChildren()
}

// convert maps an html.Node subtree onto a VNode subtree. Doctype and
// error nodes have no counterpart and yield nil.
func convert(n *html.Node) *VNode {
	var v *VNode
	switch n.Type {
	case html.ElementNode:
		v = &VNode{Kind: KindElement, Tag: n.Data}
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			v.Attrs = append(v.Attrs, Attr{Key: key, Value: a.Val})
		}
	case html.TextNode:
		return Text(n.Data)
	case html.CommentNode:
		return Comment(n.Data)
	case html.RawNode:
		return Raw(n.Data)
	case html.DocumentNode:
		v = &VNode{Kind: KindFragment}
	default:
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if cv := convert(c); cv != nil {
			v.AppendChild(cv)
		}
	}
	return v
}
