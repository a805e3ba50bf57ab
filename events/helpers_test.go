package events

type fakeTree struct {
	parents  map[any]any
	handlers map[any][]*Handler
}

func newFakeTree() *fakeTree {
	return &fakeTree{parents: make(map[any]any), handlers: make(map[any][]*Handler)}
}

func (t *fakeTree) Parent(n any) any          { return t.parents[n] }
func (t *fakeTree) Handlers(n any) []*Handler { return t.handlers[n] }
func (t *fakeTree) link(child, parent any)    { t.parents[child] = parent }
func (t *fakeTree) on(n any, hs ...*Handler)  { t.handlers[n] = append(t.handlers[n], hs...) }

type fakeListener struct {
	capture bool
	passive bool
	fn      func(*NativeEvent)
}

// fakeBinder records native listeners the way a document would.
type fakeBinder struct {
	listeners map[string][]*fakeListener
	listens   map[string]int
	cancels   map[string]int
}

func newFakeBinder() *fakeBinder {
	return &fakeBinder{
		listeners: make(map[string][]*fakeListener),
		listens:   make(map[string]int),
		cancels:   make(map[string]int),
	}
}

func (b *fakeBinder) Listen(eventType string, capture, passive bool, fn func(*NativeEvent)) func() {
	l := &fakeListener{capture: capture, passive: passive, fn: fn}
	b.listeners[eventType] = append(b.listeners[eventType], l)
	b.listens[eventType]++
	return func() {
		b.cancels[eventType]++
		ls := b.listeners[eventType]
		for i, x := range ls {
			if x == l {
				b.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

func (b *fakeBinder) fire(eventType string, ev *NativeEvent) {
	ev.Type = eventType
	for _, l := range append([]*fakeListener(nil), b.listeners[eventType]...) {
		l.fn(ev)
	}
}
