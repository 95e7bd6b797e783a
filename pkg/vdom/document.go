package vdom

import (
	"fmt"
	"strings"
)

// Document owns a tree whose root is a fragment node, the equivalent of a
// browser document node.
type Document struct {
	Root    *VNode
	Doctype string // Doctype name without the <!DOCTYPE> wrapper, e.g. "html"
}

// NewDocument creates a document whose root holds children.
func NewDocument(children ...*VNode) *Document {
	root := &VNode{Kind: KindFragment}
	for _, c := range children {
		root.AppendChild(c)
	}
	return &Document{Root: root}
}

// QuerySelector returns the first element in document order that matches
// sel, or nil when nothing matches.
//
// Supported syntax: type selectors (div, *), #id, .class, [attr],
// [attr=value] with optional quotes, compounds of these (input#name.wide)
// and the descendant combinator (#app p).
func (d *Document) QuerySelector(sel string) (*VNode, error) {
	if d == nil {
		return nil, nil
	}
	return QuerySelector(d.Root, sel)
}

// QuerySelectorAll returns every matching element in document order.
func (d *Document) QuerySelectorAll(sel string) ([]*VNode, error) {
	if d == nil {
		return nil, nil
	}
	return QuerySelectorAll(d.Root, sel)
}

// Body returns the body element, if any.
func (d *Document) Body() *VNode {
	n, _ := d.QuerySelector("body")
	return n
}

// QuerySelector returns the first descendant of root matching sel.
// root itself is never matched.
func QuerySelector(root *VNode, sel string) (*VNode, error) {
	s, err := parseSelector(sel)
	if err != nil {
		return nil, err
	}
	var found *VNode
	for _, c := range root.ChildNodes() {
		c.Walk(func(n *VNode) bool {
			if found != nil {
				return false
			}
			if s.matches(n, root) {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found, nil
}

// QuerySelectorAll returns every descendant of root matching sel.
func QuerySelectorAll(root *VNode, sel string) ([]*VNode, error) {
	s, err := parseSelector(sel)
	if err != nil {
		return nil, err
	}
	var out []*VNode
	for _, c := range root.ChildNodes() {
		c.Walk(func(n *VNode) bool {
			if s.matches(n, root) {
				out = append(out, n)
			}
			return true
		})
	}
	return out, nil
}

// SelectorError reports a selector that could not be parsed.
type SelectorError struct {
	Selector string
	Offset   int
	Reason   string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q at offset %d: %s", e.Selector, e.Offset, e.Reason)
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

// selector is a chain of compounds joined by descendant combinators.
type selector []compound

func (c compound) matches(n *VNode) bool {
	if n.Kind != KindElement {
		return false
	}
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, n.Tag) {
		return false
	}
	if c.id != "" {
		if id, _ := n.GetAttr("id"); id != c.id {
			return false
		}
	}
	if len(c.classes) > 0 {
		have := n.Classes()
		for _, want := range c.classes {
			if !containsString(have, want) {
				return false
			}
		}
	}
	for _, a := range c.attrs {
		v, ok := n.GetAttr(a.name)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

func (s selector) matches(n, scope *VNode) bool {
	last := len(s) - 1
	if !s[last].matches(n) {
		return false
	}
	i := last - 1
	for p := n.Parent(); p != nil && p != scope && i >= 0; p = p.Parent() {
		if s[i].matches(p) {
			i--
		}
	}
	return i < 0
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func parseSelector(sel string) (selector, error) {
	var out selector
	p := selectorParser{src: sel}
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		c, err := p.compound()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, &SelectorError{Selector: sel, Reason: "empty selector"}
	}
	return out, nil
}

type selectorParser struct {
	src string
	pos int
}

func (p *selectorParser) eof() bool { return p.pos >= len(p.src) }

func (p *selectorParser) skipSpace() {
	for !p.eof() && isSelectorSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *selectorParser) fail(reason string) error {
	return &SelectorError{Selector: p.src, Offset: p.pos, Reason: reason}
}

func (p *selectorParser) compound() (compound, error) {
	var c compound
	start := p.pos
	for !p.eof() && !isSelectorSpace(p.src[p.pos]) {
		switch ch := p.src[p.pos]; ch {
		case '#':
			p.pos++
			id := p.ident()
			if id == "" {
				return c, p.fail("expected id after '#'")
			}
			c.id = id
		case '.':
			p.pos++
			class := p.ident()
			if class == "" {
				return c, p.fail("expected class name after '.'")
			}
			c.classes = append(c.classes, class)
		case '[':
			a, err := p.attr()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
		case '*':
			if p.pos != start {
				return c, p.fail("unexpected '*'")
			}
			p.pos++
			c.tag = "*"
		default:
			if p.pos != start || !isIdentByte(ch) {
				return c, p.fail(fmt.Sprintf("unexpected %q", ch))
			}
			c.tag = p.ident()
		}
	}
	return c, nil
}

func (p *selectorParser) attr() (attrMatch, error) {
	var a attrMatch
	p.pos++ // '['
	p.skipSpace()
	a.name = p.ident()
	if a.name == "" {
		return a, p.fail("expected attribute name")
	}
	p.skipSpace()
	if p.eof() {
		return a, p.fail("unterminated attribute selector")
	}
	if p.src[p.pos] == '=' {
		p.pos++
		p.skipSpace()
		a.hasValue = true
		if p.eof() {
			return a, p.fail("expected attribute value")
		}
		if q := p.src[p.pos]; q == '"' || q == '\'' {
			end := strings.IndexByte(p.src[p.pos+1:], q)
			if end < 0 {
				return a, p.fail("unterminated quoted value")
			}
			a.value = p.src[p.pos+1 : p.pos+1+end]
			p.pos += end + 2
		} else {
			a.value = p.ident()
		}
		p.skipSpace()
	}
	if p.eof() || p.src[p.pos] != ']' {
		return a, p.fail("expected ']'")
	}
	p.pos++
	return a, nil
}

func (p *selectorParser) ident() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isSelectorSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' || b == ':' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9') || b >= 0x80
}
