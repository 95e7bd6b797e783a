package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/vbind/pkg/vdom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// OmitValue skips reflecting the value property into the markup.
	OmitValue bool
}

// Renderer writes vdom trees as HTML. A Renderer holds no per-call state.
type Renderer struct {
	config Config

	// afterHead runs once the head element has been written.
	afterHead func()
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders node and its descendants to a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter writes node and its descendants to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	sw := &stickyWriter{w: w}
	if err := r.renderNode(sw, node, 0, r.config.Pretty); err != nil {
		return err
	}
	return sw.err
}

// RenderChildren writes the children of node without node itself, the
// equivalent of innerHTML.
func (r *Renderer) RenderChildren(w io.Writer, node *vdom.VNode) error {
	sw := &stickyWriter{w: w}
	for _, child := range node.ChildNodes() {
		if err := r.renderNode(sw, child, 0, r.config.Pretty); err != nil {
			return err
		}
	}
	return sw.err
}

// RenderDocument writes the doctype, if any, followed by the document tree.
func (r *Renderer) RenderDocument(w io.Writer, doc *vdom.Document) error {
	if doc == nil {
		return nil
	}
	sw := &stickyWriter{w: w}
	if doc.Doctype != "" {
		sw.printf("<!DOCTYPE %s>", doc.Doctype)
		if r.config.Pretty {
			sw.writeString("\n")
		}
	}
	if err := r.renderNode(sw, doc.Root, 0, r.config.Pretty); err != nil {
		return err
	}
	return sw.err
}

// renderNode dispatches on the node kind. In block mode the node starts on
// its own indented line.
func (r *Renderer) renderNode(w *stickyWriter, node *vdom.VNode, depth int, block bool) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth, block)
	case vdom.KindText:
		r.renderText(w, node.Text, depth, block)
	case vdom.KindRaw:
		r.renderLine(w, node.Text, depth, block)
	case vdom.KindComment:
		r.renderLine(w, "<!--"+escapeComment(node.Text)+"-->", depth, block)
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth, block); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
	return w.err
}

func (r *Renderer) renderElement(w *stickyWriter, node *vdom.VNode, depth int, block bool) error {
	tag := node.Tag
	if block {
		r.writeIndent(w, depth)
	}

	w.writeString("<")
	w.writeString(tag)
	r.renderAttributes(w, node)
	w.writeString(">")

	if vdom.IsVoidElement(tag) {
		if block {
			w.writeString("\n")
		}
		return w.err
	}

	switch {
	case tag == "textarea" && node.HasValue && !r.config.OmitValue:
		w.writeString(escapeHTML(node.Value))
	case rawTextElements[tag]:
		for _, child := range node.Children {
			w.writeString(child.Text)
		}
	case r.config.Pretty && !preformatted[tag] && hasBlockChildren(node):
		w.writeString("\n")
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth+1, true); err != nil {
				return err
			}
		}
		r.writeIndent(w, depth)
	default:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth+1, false); err != nil {
				return err
			}
		}
	}

	w.printf("</%s>", tag)
	if block {
		w.writeString("\n")
	}
	if tag == "head" && r.afterHead != nil && w.err == nil {
		r.afterHead()
	}
	return w.err
}

// renderAttributes writes attributes in source order. When the value
// property was assigned it replaces the value attribute of inputs, or is
// appended if there is none.
func (r *Renderer) renderAttributes(w *stickyWriter, node *vdom.VNode) {
	reflectValue := node.HasValue && !r.config.OmitValue && node.Tag != "textarea" && node.Tag != "select"
	wroteValue := false

	for _, a := range node.Attrs {
		if a.IsEmpty() {
			continue
		}
		value := a.Value
		if reflectValue && a.Key == "value" {
			value = node.Value
			wroteValue = true
		}
		if isBooleanAttr(a.Key, value) {
			w.writeString(" " + a.Key)
			continue
		}
		w.printf(` %s="%s"`, a.Key, escapeAttr(value))
	}

	if reflectValue && !wroteValue {
		w.printf(` value="%s"`, escapeAttr(node.Value))
	}
}

func (r *Renderer) renderText(w *stickyWriter, text string, depth int, block bool) {
	if !block {
		w.writeString(escapeHTML(text))
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	r.renderLine(w, escapeHTML(text), depth, true)
}

func (r *Renderer) renderLine(w *stickyWriter, s string, depth int, block bool) {
	if block {
		r.writeIndent(w, depth)
	}
	w.writeString(s)
	if block {
		w.writeString("\n")
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *stickyWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.writeString(r.config.Indent)
	}
}

// hasBlockChildren reports whether any child needs a line of its own.
func hasBlockChildren(node *vdom.VNode) bool {
	for _, c := range node.Children {
		switch c.Kind {
		case vdom.KindElement:
			if !inlineElements[c.Tag] {
				return true
			}
		case vdom.KindComment, vdom.KindFragment:
			return true
		}
	}
	return false
}

// stickyWriter remembers the first write error and drops later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) writeString(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func (s *stickyWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}
