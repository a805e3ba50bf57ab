package vdom

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vcrobe/vtree/console"
)

// BuildError reports a node that was configured in a way the reconciler
// cannot handle. It is raised as a panic by development builds.
type BuildError struct {
	Op     string
	Reason string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("vdom: failed to set %s: %s", e.Op, e.Reason)
}

func fail(op, reason string) {
	panic(&BuildError{Op: op, Reason: reason})
}

func (n *Node) checkElement(op string) {
	if n.kind != KindElement {
		fail(op, n.kind.String()+" nodes cannot have "+op)
	}
}

func (n *Node) checkChildren(op string) {
	n.checkElement(op)
	if n.shape != NoChildren {
		fail(op, "children are already set")
	}
	switch {
	case n.input:
		fail(op, "input elements cannot have children")
	case n.media:
		fail(op, "media elements cannot have children")
	case n.void:
		fail(op, "<"+n.tag+"> is a void element")
	}
}

func (n *Node) checkInput(op string) {
	if n.kind != KindElement || !n.input {
		fail(op, "only input elements have "+op)
	}
}

func checkKey(key any) {
	if key != nil && !reflect.TypeOf(key).Comparable() {
		fail("key", fmt.Sprintf("key of type %T is not comparable", key))
	}
}

func checkUniqueKeys(nodes []*Node) {
	seen := make(map[any]struct{}, len(nodes))
	for _, n := range nodes {
		if !n.hasKey {
			continue
		}
		if _, dup := seen[n.key]; dup {
			fail("children", fmt.Sprintf("duplicate key %v", n.key))
		}
		seen[n.key] = struct{}{}
	}
}

// checkAttrs warns about attributes that have dedicated setters. Warnings
// never change how the node is built.
func checkAttrs(attrs Attrs) {
	for name := range attrs {
		switch {
		case name == "class":
			console.Warn("vdom: use ClassName() instead of the class attribute")
		case name == "style":
			console.Warn("vdom: use Style() instead of the style attribute")
		case strings.HasPrefix(name, "on"):
			console.Warn("vdom: event handler attribute ignored, use Events():", name)
		}
	}
}
