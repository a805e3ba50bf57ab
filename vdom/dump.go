package vdom

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders a node tree for debugging.
func Dump(n *Node) string {
	tree := treeprint.New()
	dumpNode(tree, n)
	return tree.String()
}

func dumpNode(tree treeprint.Tree, n *Node) {
	if n == nil {
		tree.AddNode("<nil>")
		return
	}
	label := Describe(n)
	switch {
	case n.shape.HasNodes():
		branch := tree.AddBranch(label)
		for _, c := range n.children {
			dumpNode(branch, c)
		}
	default:
		tree.AddNode(label)
	}
}

// Describe returns a one-line summary of n.
func Describe(n *Node) string {
	var b strings.Builder
	switch n.kind {
	case KindText:
		fmt.Fprintf(&b, "%q", n.text)
	case KindElement:
		b.WriteString("<" + n.tag)
		if n.inputType != "" {
			b.WriteString(" type=" + n.inputType)
		}
		if n.className != "" {
			b.WriteString(" ." + strings.ReplaceAll(n.className, " ", "."))
		}
		b.WriteString(">")
		switch n.shape {
		case ChildrenText:
			fmt.Fprintf(&b, " %q", n.text)
		case ChildrenUnsafeHTML:
			b.WriteString(" (unsafe html)")
		case ChildrenValue:
			fmt.Fprintf(&b, " value=%q", n.text)
		case ChildrenChecked:
			fmt.Fprintf(&b, " checked=%t", n.checked)
		}
	default:
		fmt.Fprintf(&b, "%s %s", n.kind, n.typ.TypeName())
	}
	if n.hasKey {
		fmt.Fprintf(&b, " key=%v", n.key)
	}
	return b.String()
}
