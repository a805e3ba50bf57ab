package ssr

import (
	"github.com/xlab/treeprint"

	"github.com/vcrobe/vtree/vdom"
)

// DumpBlueprint renders a blueprint tree for debugging. Frozen nodes are
// marked with an asterisk, nodes above a connect node with a plus.
func DumpBlueprint(b *Blueprint) string {
	tree := treeprint.New()
	dumpBlueprint(tree, b)
	return tree.String()
}

func dumpBlueprint(tree treeprint.Tree, b *Blueprint) {
	label := vdom.Describe(b.Node)
	if b.frozen {
		label += " *"
	}
	if b.deep {
		label += " +"
	}
	if len(b.children) == 0 {
		tree.AddNode(label)
		return
	}
	branch := tree.AddBranch(label)
	for _, c := range b.children {
		dumpBlueprint(branch, c)
	}
}
