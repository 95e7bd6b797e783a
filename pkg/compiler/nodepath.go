package compiler

import (
	"strings"

	"github.com/vango-dev/vbind/pkg/vdom"
)

// nodePath describes node by its element ancestry, e.g.
// "html > body > div#app > p". Text nodes end in "#text".
func nodePath(node *vdom.VNode) string {
	var parts []string
	for n := node; n != nil; n = n.Parent() {
		switch n.Kind {
		case vdom.KindElement:
			parts = append(parts, describe(n))
		case vdom.KindText:
			parts = append(parts, "#text")
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

func describe(n *vdom.VNode) string {
	var b strings.Builder
	b.WriteString(n.Tag)
	if id, ok := n.GetAttr("id"); ok && id != "" {
		b.WriteByte('#')
		b.WriteString(id)
	}
	for _, c := range n.Classes() {
		b.WriteByte('.')
		b.WriteString(c)
	}
	return b.String()
}
