// Package ssr renders node trees to HTML strings on the server. A rendered
// tree is kept as a Blueprint; diffing a new node tree against the previous
// blueprint reuses every unchanged subtree together with its serialized
// markup.
package ssr

import (
	"slices"

	"go.uber.org/zap"

	"github.com/vcrobe/vtree/vdom"
)

// Blueprint is a frozen snapshot of a rendered node.
type Blueprint struct {
	Node *vdom.Node

	children []*Blueprint
	// data is the component instance for class nodes and the selector data
	// for connect nodes.
	data any

	keyIndex map[any]*Blueprint
	posIndex map[any]*Blueprint

	frozen bool
	deep   bool
	markup string
}

// Children returns the child blueprints.
func (b *Blueprint) Children() []*Blueprint { return b.children }

// Data returns the component instance or selector data of the node.
func (b *Blueprint) Data() any { return b.data }

// Frozen reports whether the markup of the blueprint has been serialized.
func (b *Blueprint) Frozen() bool { return b.frozen }

// DeepConnect reports whether a connect node exists in the subtree.
func (b *Blueprint) DeepConnect() bool { return b.deep }

func newBlueprint(node *vdom.Node, children []*Blueprint, data any) *Blueprint {
	b := &Blueprint{Node: node, children: children, data: data}
	b.deep = node.Kind() == vdom.KindConnect
	for _, c := range children {
		b.deep = b.deep || c.deep
	}
	if node.Kind() == vdom.KindElement && node.Shape() == vdom.ChildrenArray {
		b.keyIndex = make(map[any]*Blueprint)
		b.posIndex = make(map[any]*Blueprint)
		for _, c := range children {
			key, explicit := c.Node.KeyValue()
			index := b.posIndex
			if explicit {
				index = b.keyIndex
			}
			if _, dup := index[key]; !dup {
				index[key] = c
			}
		}
	}
	return b
}

// Renderer builds blueprints and serializes them.
type Renderer struct {
	logger *zap.Logger
	stats  Stats
}

// Stats counts serialization work.
type Stats struct {
	// Escapes counts text and attribute values escaped.
	Escapes int
	// Serialized counts blueprint nodes whose markup was built.
	Serialized int
}

// NewRenderer creates a renderer.
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logger: logger.Named("ssr")}
}

// Stats returns the work counters.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// ResetStats zeroes the work counters.
func (r *Renderer) ResetStats() {
	r.stats = Stats{}
}

// CreateBlueprint builds a blueprint for node. With a previous blueprint the
// new tree is diffed against it and unchanged subtrees are reused.
func (r *Renderer) CreateBlueprint(node *vdom.Node, ctx vdom.Context, prev *Blueprint) *Blueprint {
	if prev == nil {
		return r.create(node, ctx)
	}
	return r.diff(prev, node, ctx)
}

func (r *Renderer) create(node *vdom.Node, ctx vdom.Context) *Blueprint {
	switch node.Kind() {
	case vdom.KindElement:
		var children []*Blueprint
		if node.Shape().HasNodes() {
			children = make([]*Blueprint, 0, len(node.ChildNodes()))
			for _, c := range node.ChildNodes() {
				children = append(children, r.create(c, ctx))
			}
		}
		return newBlueprint(node, children, nil)

	case vdom.KindComponentClass:
		comp := node.Type().(*vdom.ComponentClass).Instantiate(node.PropsValue())
		return newBlueprint(node, []*Blueprint{r.create(vdom.RenderComponent(comp), ctx)}, comp)

	case vdom.KindComponentFunction:
		fn := node.Type().(*vdom.StatelessComponent)
		return newBlueprint(node, []*Blueprint{r.create(fn.RenderProps(node.PropsValue()), ctx)}, nil)

	case vdom.KindConnect:
		desc := node.Type().(*vdom.ConnectDescriptor)
		sel := desc.Select(nil, node.PropsValue(), ctx)
		return newBlueprint(node, []*Blueprint{r.create(desc.RenderOut(sel.Out), ctx)}, sel)

	case vdom.KindContext:
		child := r.create(node.Child(), ctx.Merge(node.ContextValue()))
		return newBlueprint(node, []*Blueprint{child}, nil)
	}
	return newBlueprint(node, nil, nil)
}

// cloneChanged revisits the connect nodes of b against ctx and returns b
// itself when no selector output changed.
func (r *Renderer) cloneChanged(b *Blueprint, ctx vdom.Context) *Blueprint {
	if !b.deep {
		return b
	}
	node := b.Node
	switch node.Kind() {
	case vdom.KindElement:
		var children []*Blueprint
		dirty := false
		for i, c := range b.children {
			n := r.cloneChanged(c, ctx)
			if n != c && !dirty {
				dirty = true
				children = make([]*Blueprint, len(b.children))
				copy(children, b.children[:i])
			}
			if dirty {
				children[i] = n
			}
		}
		if !dirty {
			return b
		}
		return newBlueprint(node, children, nil)

	case vdom.KindComponentClass, vdom.KindComponentFunction:
		child := b.children[0]
		n := r.cloneChanged(child, ctx)
		if n == child {
			return b
		}
		return newBlueprint(node, []*Blueprint{n}, b.data)

	case vdom.KindConnect:
		desc := node.Type().(*vdom.ConnectDescriptor)
		prev := b.data.(*vdom.SelectorData)
		sel := desc.Select(prev, node.PropsValue(), ctx)
		child := b.children[0]
		if sel != prev {
			return newBlueprint(node, []*Blueprint{r.diff(child, desc.RenderOut(sel.Out), ctx)}, sel)
		}
		n := r.cloneChanged(child, ctx)
		if n == child {
			return b
		}
		return newBlueprint(node, []*Blueprint{n}, sel)

	case vdom.KindContext:
		child := b.children[0]
		n := r.cloneChanged(child, ctx.Merge(node.ContextValue()))
		if n == child {
			return b
		}
		return newBlueprint(node, []*Blueprint{n}, nil)
	}
	return b
}

func (r *Renderer) diff(a *Blueprint, b *vdom.Node, ctx vdom.Context) *Blueprint {
	if a.Node == b {
		return r.cloneChanged(a, ctx)
	}
	if !vdom.Compatible(a.Node, b) {
		return r.create(b, ctx)
	}

	switch b.Kind() {
	case vdom.KindText:
		if a.Node.Text() == b.Text() {
			return a
		}
		return newBlueprint(b, nil, nil)

	case vdom.KindElement:
		children, changed := r.diffChildren(a, b, ctx)
		if !changed && vdom.SameContent(a.Node, b) {
			return a
		}
		return newBlueprint(b, children, nil)

	case vdom.KindComponentClass:
		comp := a.data.(vdom.Component)
		child := a.children[0]
		var n *Blueprint
		if vdom.PropsChanged(comp, a.Node.PropsValue(), b.PropsValue()) {
			comp = b.Type().(*vdom.ComponentClass).Instantiate(b.PropsValue())
			n = r.diff(child, vdom.RenderComponent(comp), ctx)
		} else {
			n = r.cloneChanged(child, ctx)
		}
		if n == child {
			return a
		}
		return newBlueprint(b, []*Blueprint{n}, comp)

	case vdom.KindComponentFunction:
		fn := b.Type().(*vdom.StatelessComponent)
		child := a.children[0]
		var n *Blueprint
		if fn.Changed(a.Node.PropsValue(), b.PropsValue()) {
			n = r.diff(child, fn.RenderProps(b.PropsValue()), ctx)
		} else {
			n = r.cloneChanged(child, ctx)
		}
		if n == child {
			return a
		}
		return newBlueprint(b, []*Blueprint{n}, nil)

	case vdom.KindConnect:
		desc := b.Type().(*vdom.ConnectDescriptor)
		prev := a.data.(*vdom.SelectorData)
		sel := desc.Select(prev, b.PropsValue(), ctx)
		child := a.children[0]
		if sel != prev {
			return newBlueprint(b, []*Blueprint{r.diff(child, desc.RenderOut(sel.Out), ctx)}, sel)
		}
		n := r.cloneChanged(child, ctx)
		if n == child {
			return a
		}
		return newBlueprint(b, []*Blueprint{n}, sel)

	case vdom.KindContext:
		child := a.children[0]
		n := r.diff(child, b.Child(), ctx.Merge(b.ContextValue()))
		if n == child {
			return a
		}
		return newBlueprint(b, []*Blueprint{n}, nil)
	}
	return r.create(b, ctx)
}

// diffChildren matches the children of b against the children of a and
// reports whether the resulting child list differs from a's.
func (r *Renderer) diffChildren(a *Blueprint, b *vdom.Node, ctx vdom.Context) ([]*Blueprint, bool) {
	bShape := b.Shape()
	if !bShape.HasNodes() {
		return nil, len(a.children) > 0
	}
	nodes := b.ChildNodes()
	if !a.Node.Shape().HasNodes() {
		children := make([]*Blueprint, len(nodes))
		for i, n := range nodes {
			children[i] = r.create(n, ctx)
		}
		return children, true
	}

	if a.Node.Shape() == vdom.ChildrenArray && bShape == vdom.ChildrenArray {
		return r.trackByKeys(a, nodes, ctx)
	}

	// A single child on either side: match by key equality.
	used := make([]bool, len(a.children))
	children := make([]*Blueprint, len(nodes))
	for i, n := range nodes {
		for j, c := range a.children {
			if !used[j] && vdom.EqualKeys(c.Node, n) {
				used[j] = true
				children[i] = r.diff(c, n, ctx)
				break
			}
		}
		if children[i] == nil {
			children[i] = r.create(n, ctx)
		}
	}
	return children, !sameChildren(a.children, children)
}

func (r *Renderer) trackByKeys(a *Blueprint, nodes []*vdom.Node, ctx vdom.Context) ([]*Blueprint, bool) {
	used := make(map[*Blueprint]bool, len(a.children))
	children := make([]*Blueprint, len(nodes))
	for i, n := range nodes {
		key, explicit := n.KeyValue()
		index := a.posIndex
		if explicit {
			index = a.keyIndex
		}
		if prev, ok := index[key]; ok && !used[prev] {
			used[prev] = true
			children[i] = r.diff(prev, n, ctx)
		} else {
			children[i] = r.create(n, ctx)
		}
	}
	return children, !sameChildren(a.children, children)
}

func sameChildren(a, b []*Blueprint) bool {
	return slices.Equal(a, b)
}
