// Package render serializes vdom trees back to HTML.
//
// Attributes are written in source order, text is escaped, raw markup
// inserted by v-html is written verbatim, and the value property set by
// v-model is reflected in the markup: as the value attribute of inputs and
// as the content of textareas.
//
//	r := render.NewRenderer(render.Config{})
//	html, err := r.RenderToString(node)
//
// A whole document, including its doctype, is written with RenderDocument.
// StreamingRenderer does the same against an http.ResponseWriter and
// flushes once the head element is complete.
//
// Pretty output indents block-level elements. It changes whitespace in
// text content and should only be used for inspection.
package render
