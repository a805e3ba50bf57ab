package events

import "slices"

// Sync moves source registrations from the handlers in a to the handlers in
// b. A handler that appears in both sets keeps its registration untouched,
// so the registrations made are exactly b minus a and the ones removed
// exactly a minus b. A nil slice is the empty set and repeated entries count
// once.
func Sync(a, b []*Handler) {
	i := 0
	for ; i < len(a) && i < len(b); i++ {
		ah, bh := a[i], b[i]
		if ah == bh {
			continue
		}
		if leaving(a, b, i) {
			ah.Source.RemoveListener(ah)
		}
		if leaving(b, a, i) {
			bh.Source.AddListener(bh)
		}
	}
	for ; i < len(a); i++ {
		if leaving(a, b, i) {
			a[i].Source.RemoveListener(a[i])
		}
	}
	for ; i < len(b); i++ {
		if leaving(b, a, i) {
			b[i].Source.AddListener(b[i])
		}
	}
}

// leaving reports whether from[i] is the first occurrence of a handler that
// is missing from to.
func leaving(from, to []*Handler, i int) bool {
	h := from[i]
	return h != nil && !slices.Contains(from[:i], h) && !slices.Contains(to, h)
}
