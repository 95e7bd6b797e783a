package compiler

import "github.com/vango-dev/vbind/pkg/vdom"

// journal applies tree mutations and remembers how to undo them.
// It implements directive.Effects.
type journal struct {
	undo []func()
}

func (j *journal) push(fn func()) {
	j.undo = append(j.undo, fn)
}

// rollback undoes every recorded mutation, newest first.
func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// replaceContent swaps node's children for next and records the swap.
func (j *journal) replaceContent(node *vdom.VNode, next ...*vdom.VNode) {
	old := node.ReplaceChildren(next...)
	j.push(func() {
		node.ReplaceChildren(old...)
	})
}

func (j *journal) SetText(node *vdom.VNode, text string) {
	if node.Kind != vdom.KindElement && node.Kind != vdom.KindFragment {
		j.setData(node, text)
		return
	}
	if text == "" {
		j.replaceContent(node)
		return
	}
	j.replaceContent(node, vdom.Text(text))
}

func (j *journal) SetHTML(node *vdom.VNode, markup string) {
	j.replaceContent(node, vdom.ParseNodes(markup)...)
}

func (j *journal) SetValue(node *vdom.VNode, value string) {
	oldValue, oldSet := node.Value, node.HasValue
	node.SetValue(value)
	j.push(func() {
		if oldSet {
			node.SetValue(oldValue)
		} else {
			node.ClearValue()
		}
	})
}

func (j *journal) Listen(node *vdom.VNode, event string, fn vdom.Listener) {
	remove := node.AddEventListener(event, fn)
	j.push(remove)
}

// setData assigns the data of a text-like node.
func (j *journal) setData(node *vdom.VNode, text string) {
	old := node.Text
	node.Text = text
	j.push(func() {
		node.Text = old
	})
}

// removeAttr removes a directive attribute, restoring it at the same
// position on rollback.
func (j *journal) removeAttr(node *vdom.VNode, name string) bool {
	a, idx := node.RemoveAttr(name)
	if idx < 0 {
		return false
	}
	j.push(func() {
		node.InsertAttr(idx, a)
	})
	return true
}
