package vdom

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/vcrobe/vtree/events"
)

// Reconciler builds and updates host trees from node trees.
type Reconciler struct {
	host        Host
	logger      *zap.Logger
	invalidator Invalidator
}

// NewReconciler creates a reconciler applying mutations to host.
func NewReconciler(host Host, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{host: host, logger: logger.Named("vdom")}
}

// SetInvalidator routes Instance.Invalidate through inv.
func (r *Reconciler) SetInvalidator(inv Invalidator) {
	r.invalidator = inv
}

// Host returns the host the reconciler mutates.
func (r *Reconciler) Host() Host {
	return r.host
}

// Create instantiates node and builds its host subtree. The returned
// instance is not attached to any parent.
func (r *Reconciler) Create(node *Node, ctx Context) *Instance {
	inst := &Instance{node: node, ctx: ctx, r: r}
	switch node.kind {
	case KindText:
		inst.native = r.host.CreateText(node.text)

	case KindElement:
		r.createElement(inst, ctx)

	case KindComponentClass:
		class := node.typ.(*ComponentClass)
		comp := class.Instantiate(node.props)
		inst.component = comp
		if b, ok := comp.(InstanceBinder); ok {
			b.BindInstance(inst)
		}
		r.adopt(inst, r.Create(RenderComponent(comp), ctx))

	case KindComponentFunction:
		fn := node.typ.(*StatelessComponent)
		r.adopt(inst, r.Create(fn.RenderProps(node.props), ctx))

	case KindConnect:
		desc := node.typ.(*ConnectDescriptor)
		inst.selector = desc.Select(nil, node.props, ctx)
		r.adopt(inst, r.Create(desc.RenderOut(inst.selector.Out), ctx))

	case KindContext:
		merged := ctx.Merge(node.ContextValue())
		r.adopt(inst, r.Create(node.children[0], merged))
	}
	inst.recomputeDeep()
	return inst
}

func (r *Reconciler) adopt(parent, child *Instance) {
	child.parent = parent
	parent.children = append(parent.children, child)
}

func (r *Reconciler) createElement(inst *Instance, ctx Context) {
	node := inst.node
	el := r.host.CreateElement(node.tag, node.svg)
	inst.native = el
	if node.inputType != "" {
		r.host.SetAttr(el, "type", node.inputType)
	}
	if node.className != "" {
		r.host.SetClassName(el, node.className)
	}
	for _, k := range slices.Sorted(maps.Keys(node.attrs)) {
		r.host.SetAttr(el, k, node.attrs[k])
	}
	if len(node.style) > 0 {
		r.host.SetStyle(el, node.style)
	}
	r.createContent(inst, ctx)
	if node.handlers != nil {
		events.Attach(node.handlers)
		r.host.SetHandlers(el, node.handlers)
	}
	if node.autofocus {
		r.host.Focus(el)
	}
}

func (r *Reconciler) createContent(inst *Instance, ctx Context) {
	node, el := inst.node, inst.native
	switch node.shape {
	case ChildrenText:
		r.host.SetTextContent(el, node.text)
	case ChildrenUnsafeHTML:
		r.host.SetInnerHTML(el, node.text)
	case ChildrenValue:
		r.host.SetValue(el, node.text)
	case ChildrenChecked:
		r.host.SetChecked(el, node.checked)
	case ChildrenNode, ChildrenArray:
		for _, c := range node.children {
			child := r.Create(c, ctx)
			r.adopt(inst, child)
			r.host.InsertBefore(el, child.Native(), nil)
		}
	}
}

// Diff updates inst so that it reflects node and returns the instance that
// now represents node. When node is incompatible with the mounted one the old
// instance is disposed and a new one is returned; placing its host node is up
// to the caller.
func (r *Reconciler) Diff(inst *Instance, node *Node, ctx Context) *Instance {
	prev := inst.node
	if prev == node {
		if inst.deep {
			r.refresh(inst, ctx)
		}
		return inst
	}
	if !Compatible(prev, node) {
		r.logger.Debug("replacing incompatible node",
			zap.String("old", Describe(prev)), zap.String("new", Describe(node)))
		r.Dispose(inst)
		return r.Create(node, ctx)
	}

	inst.ctx = ctx
	switch node.kind {
	case KindText:
		inst.node = node
		if prev.text != node.text {
			r.host.SetText(inst.native, node.text)
		}

	case KindElement:
		inst.node = node
		r.diffElement(inst, prev, node, ctx)

	case KindComponentClass:
		inst.node = node
		comp := inst.component
		if PropsChanged(comp, prev.props, node.props) {
			if recv, ok := comp.(PropsReceiver); ok {
				recv.NewPropsReceived(prev.props, node.props)
			}
			if recv, ok := comp.(ParameterReceiver); ok {
				callOnPropertiesSet(recv, node.typ.TypeName())
			}
			r.renderComponent(inst, ctx)
		} else {
			r.refresh(inst.children[0], ctx)
		}

	case KindComponentFunction:
		inst.node = node
		fn := node.typ.(*StatelessComponent)
		if fn.Changed(prev.props, node.props) {
			r.diffChild(inst, 0, fn.RenderProps(node.props), ctx)
		} else {
			r.refresh(inst.children[0], ctx)
		}

	case KindConnect:
		inst.node = node
		r.reselect(inst, ctx)

	case KindContext:
		inst.node = node
		r.diffChild(inst, 0, node.children[0], ctx.Merge(node.ContextValue()))
	}
	inst.recomputeDeep()
	return inst
}

func (r *Reconciler) renderComponent(inst *Instance, ctx Context) {
	r.diffChild(inst, 0, RenderComponent(inst.component), ctx)
}

func (r *Reconciler) reselect(inst *Instance, ctx Context) {
	desc := inst.node.typ.(*ConnectDescriptor)
	sel := desc.Select(inst.selector, inst.node.props, ctx)
	if sel != inst.selector {
		inst.selector = sel
		r.diffChild(inst, 0, desc.RenderOut(sel.Out), ctx)
		return
	}
	r.refresh(inst.children[0], ctx)
}

// diffChild diffs the i-th child of inst and swaps host nodes when the child
// instance was replaced.
func (r *Reconciler) diffChild(inst *Instance, i int, node *Node, ctx Context) {
	old := inst.children[i]
	oldNative := old.Native()
	next := r.Diff(old, node, ctx)
	if next == old {
		return
	}
	next.parent = inst
	inst.children[i] = next
	if parent := r.host.Parent(oldNative); parent != nil {
		r.host.ReplaceChild(parent, next.Native(), oldNative)
	}
}

// refresh revisits connect nodes below inst whose selectors may produce new
// output for ctx. Subtrees without connect nodes are skipped.
func (r *Reconciler) refresh(inst *Instance, ctx Context) {
	if !inst.deep {
		return
	}
	inst.ctx = ctx
	switch inst.node.kind {
	case KindElement, KindComponentClass, KindComponentFunction:
		for _, c := range inst.children {
			r.refresh(c, ctx)
		}
	case KindConnect:
		r.reselect(inst, ctx)
	case KindContext:
		r.refresh(inst.children[0], ctx.Merge(inst.node.ContextValue()))
	}
	inst.recomputeDeep()
}

func (r *Reconciler) diffElement(inst *Instance, prev, node *Node, ctx Context) {
	el := inst.native
	if prev.className != node.className {
		r.host.SetClassName(el, node.className)
	}
	r.diffAttrs(el, prev.attrs, node.attrs)
	if !sameStyle(prev.style, node.style) {
		r.host.SetStyle(el, node.style)
	}
	if !sameHandlerSet(prev.handlers, node.handlers) {
		events.Sync(prev.handlers, node.handlers)
		r.host.SetHandlers(el, node.handlers)
	}
	r.diffContent(inst, prev, node, ctx)
}

func (r *Reconciler) diffAttrs(el NativeNode, a, b Attrs) {
	for _, k := range slices.Sorted(maps.Keys(b)) {
		if va, ok := a[k]; !ok || !SameValue(va, b[k]) {
			r.host.SetAttr(el, k, b[k])
		}
	}
	for _, k := range slices.Sorted(maps.Keys(a)) {
		if _, ok := b[k]; !ok {
			r.host.RemoveAttr(el, k)
		}
	}
}

func (r *Reconciler) diffContent(inst *Instance, prev, node *Node, ctx Context) {
	el := inst.native
	if prev.shape != node.shape && !(prev.shape.HasNodes() && node.shape.HasNodes()) {
		r.disposeChildren(inst)
		if prev.shape == ChildrenText || prev.shape == ChildrenUnsafeHTML {
			r.host.SetTextContent(el, "")
		}
		r.createContent(inst, ctx)
		return
	}
	switch node.shape {
	case ChildrenText:
		if prev.text != node.text {
			r.host.SetTextContent(el, node.text)
		}
	case ChildrenUnsafeHTML:
		if prev.text != node.text {
			r.host.SetInnerHTML(el, node.text)
		}
	case ChildrenValue:
		if prev.text != node.text {
			r.host.SetValue(el, node.text)
		}
	case ChildrenChecked:
		if prev.checked != node.checked {
			r.host.SetChecked(el, node.checked)
		}
	case ChildrenNode, ChildrenArray:
		if prev.shape == ChildrenNode && node.shape == ChildrenNode {
			r.diffChild(inst, 0, node.children[0], ctx)
			return
		}
		// A list that shrinks to one child, or grows from one, is still
		// matched by key.
		r.diffChildrenByKeys(inst, node.children, ctx)
	}
}

// diffChildrenByKeys matches new children against the mounted ones by key in
// a single pass, disposes the unmatched old children and restores host order
// with InsertBefore moves.
func (r *Reconciler) diffChildrenByKeys(inst *Instance, nodes []*Node, ctx Context) {
	el := inst.native
	old := inst.children

	keyed := make(map[any]int, len(old))
	positional := make(map[any]int, len(old))
	for i, c := range old {
		index := positional
		if c.node.hasKey {
			index = keyed
		}
		if _, dup := index[c.node.key]; !dup {
			index[c.node.key] = i
		}
	}

	matched := make([]bool, len(old))
	next := make([]*Instance, len(nodes))
	for i, n := range nodes {
		index := positional
		if n.hasKey {
			index = keyed
		}
		j, ok := index[n.key]
		if !ok || matched[j] {
			next[i] = r.Create(n, ctx)
			continue
		}
		matched[j] = true
		oldNative := old[j].Native()
		next[i] = r.Diff(old[j], n, ctx)
		if next[i] != old[j] {
			r.host.RemoveChild(el, oldNative)
		}
	}

	for j, c := range old {
		if !matched[j] {
			native := c.Native()
			r.Dispose(c)
			r.host.RemoveChild(el, native)
		}
	}

	var ref NativeNode
	for i := len(next) - 1; i >= 0; i-- {
		next[i].parent = inst
		native := next[i].Native()
		if r.host.Parent(native) != el || r.host.NextSibling(native) != ref {
			r.host.InsertBefore(el, native, ref)
		}
		ref = native
	}
	inst.children = next
}

// Dispose tears down inst and its subtree: handlers are unregistered and
// Cleaner hooks run. Host nodes are left in place.
func (r *Reconciler) Dispose(inst *Instance) {
	if inst.disposed {
		return
	}
	inst.disposed = true
	for _, c := range inst.children {
		r.Dispose(c)
	}
	switch inst.node.kind {
	case KindElement:
		if inst.node.handlers != nil {
			events.Detach(inst.node.handlers)
			r.host.SetHandlers(inst.native, nil)
		}
	case KindComponentClass:
		if cleaner, ok := inst.component.(Cleaner); ok {
			callOnDestroy(cleaner, inst.node.typ.TypeName())
		}
	}
}

func (r *Reconciler) disposeChildren(inst *Instance) {
	for _, c := range inst.children {
		native := c.Native()
		r.Dispose(c)
		r.host.RemoveChild(inst.native, native)
	}
	inst.children = nil
}

func sameHandlerSet(a, b []*events.Handler) bool {
	return slices.Equal(a, b) && (a == nil) == (b == nil)
}

func orEmpty(n *Node) *Node {
	if n == nil {
		return Text("")
	}
	return n
}
