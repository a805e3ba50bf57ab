package events

// Tree exposes the parent chain of host nodes and the handlers attached to
// them.
type Tree interface {
	Parent(node any) any
	Handlers(node any) []*Handler
}

// DispatchTarget is a node on the propagation path together with the
// handlers it carries for the dispatched source.
type DispatchTarget struct {
	Target   any
	Handlers []*Handler
}

// CollectTargets walks from leaf to the root and returns, leaf first, every
// node that has at least one handler belonging to source.
func CollectTargets(leaf any, tree Tree, source *Source) []DispatchTarget {
	var targets []DispatchTarget
	for node := leaf; node != nil; node = tree.Parent(node) {
		var matched []*Handler
		for _, h := range tree.Handlers(node) {
			if h != nil && h.Source == source {
				matched = append(matched, h)
			}
		}
		if len(matched) > 0 {
			targets = append(targets, DispatchTarget{Target: node, Handlers: matched})
		}
	}
	return targets
}
