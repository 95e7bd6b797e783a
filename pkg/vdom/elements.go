package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Element creates an element node with the given tag.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string.
func Element(tag string, args ...any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			if !v.IsEmpty() {
				node.SetAttr(v.Key, v.Value)
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.SetAttr(a.Key, a.Value)
				}
			}
		default:
			appendArgs(node, []any{arg})
		}
	}

	return node
}

// Document structure

func Html(args ...any) *VNode    { return Element("html", args...) }
func Head(args ...any) *VNode    { return Element("head", args...) }
func Body(args ...any) *VNode    { return Element("body", args...) }
func Title(args ...any) *VNode   { return Element("title", args...) }
func Main(args ...any) *VNode    { return Element("main", args...) }
func Section(args ...any) *VNode { return Element("section", args...) }

// Content

func Div(args ...any) *VNode  { return Element("div", args...) }
func Span(args ...any) *VNode { return Element("span", args...) }
func P(args ...any) *VNode    { return Element("p", args...) }
func H1(args ...any) *VNode   { return Element("h1", args...) }
func H2(args ...any) *VNode   { return Element("h2", args...) }
func Ul(args ...any) *VNode   { return Element("ul", args...) }
func Li(args ...any) *VNode   { return Element("li", args...) }
func A(args ...any) *VNode    { return Element("a", args...) }
func Br(args ...any) *VNode   { return Element("br", args...) }

// Forms

func Form(args ...any) *VNode     { return Element("form", args...) }
func Label(args ...any) *VNode    { return Element("label", args...) }
func Input(args ...any) *VNode    { return Element("input", args...) }
func Textarea(args ...any) *VNode { return Element("textarea", args...) }
func Select(args ...any) *VNode   { return Element("select", args...) }
func Option(args ...any) *VNode   { return Element("option", args...) }
func Button(args ...any) *VNode   { return Element("button", args...) }
