package vdom

// Instance is the backing record the Reconciler keeps for a mounted node.
// Nodes stay immutable; everything that changes while a node is mounted
// lives here.
type Instance struct {
	node      *Node
	native    NativeNode
	component Component
	selector  *SelectorData
	ctx       Context
	children  []*Instance
	parent    *Instance
	deep      bool
	disposed  bool
	r         *Reconciler
}

func (i *Instance) Node() *Node             { return i.node }
func (i *Instance) Component() Component    { return i.component }
func (i *Instance) Selector() *SelectorData { return i.selector }
func (i *Instance) Context() Context        { return i.ctx }
func (i *Instance) Children() []*Instance   { return i.children }
func (i *Instance) Parent() *Instance       { return i.parent }
func (i *Instance) DeepConnect() bool       { return i.deep }
func (i *Instance) Disposed() bool          { return i.disposed }

// Native returns the host node of the instance. Component instances resolve
// to the host node of their rendered root.
func (i *Instance) Native() NativeNode {
	for i.native == nil && len(i.children) > 0 {
		i = i.children[0]
	}
	return i.native
}

// Update re-renders a stateful component in place. It is the entry point
// used when component state changes outside of a parent render.
func (i *Instance) Update() {
	if i.disposed || i.node.kind != KindComponentClass {
		return
	}
	i.r.renderComponent(i, i.ctx)
	i.propagateDeep()
}

// Invalidate requests an update. With an Invalidator configured on the
// Reconciler the update is queued, otherwise it runs immediately.
func (i *Instance) Invalidate() {
	if i.disposed {
		return
	}
	if inv := i.r.invalidator; inv != nil {
		inv.Invalidate(i)
		return
	}
	i.Update()
}

func (i *Instance) recomputeDeep() {
	deep := i.node.kind == KindConnect
	for _, c := range i.children {
		deep = deep || c.deep
	}
	i.deep = deep
}

func (i *Instance) propagateDeep() {
	for p := i; p != nil; p = p.parent {
		before := p.deep
		p.recomputeDeep()
		if p != i && before == p.deep {
			return
		}
	}
}

// Invalidator queues component instances for a later update.
type Invalidator interface {
	Invalidate(inst *Instance)
}
