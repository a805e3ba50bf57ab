package signals

import (
	"sync"

	"github.com/vcrobe/vtree/vdom"
)

// Signal is a value that notifies subscribers when it changes.
type Signal[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64
	nextID  int
	subs    map[int]func()
}

// New creates a Signal holding initial.
func New[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, subs: make(map[int]func())}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Version returns a counter incremented by every Set.
func (s *Signal[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Set stores v and notifies all subscribers.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.version++
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Update applies fn to the current value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Subscribe registers fn to run after every Set. The returned function
// removes the subscription.
func (s *Signal[T]) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Connect builds a connect descriptor reading the signal stored under key in
// the ambient context. pick derives the output from the signal value and the
// node props; the previous selector data is kept while the output is
// unchanged, so the connected subtree is not re-rendered.
func Connect[T any, O comparable](name, key string, pick func(v T, props any) O, render func(out O) *vdom.Node) *vdom.ConnectDescriptor {
	return &vdom.ConnectDescriptor{
		Name: name,
		Select: func(prev *vdom.SelectorData, props any, ctx vdom.Context) *vdom.SelectorData {
			sig, ok := ctx[key].(*Signal[T])
			if !ok {
				var zero T
				return keep(prev, zero, pick(zero, props))
			}
			v := sig.Get()
			return keep(prev, v, pick(v, props))
		},
		Render: func(out any) *vdom.Node {
			return render(out.(O))
		},
	}
}

func keep[T any, O comparable](prev *vdom.SelectorData, in T, out O) *vdom.SelectorData {
	if prev != nil {
		if o, ok := prev.Out.(O); ok && o == out {
			return prev
		}
	}
	return &vdom.SelectorData{In: in, Out: out}
}
