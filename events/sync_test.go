package events

import (
	"maps"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestSync_RegistrationsMatchSetDifference(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	names := slices.Sorted(maps.Keys(nativeEvents))[:12]

	for round := 0; round < 200; round++ {
		binder := newFakeBinder()
		reg := NewRegistry(binder, newFakeTree(), nil)
		pool := make([]*Handler, len(names))
		for i, name := range names {
			pool[i] = reg.On(name, func(*SyntheticEvent) {}, false)
		}
		pick := func() []*Handler {
			var hs []*Handler
			for _, i := range rng.Perm(len(pool))[:rng.IntN(len(pool)+1)] {
				hs = append(hs, pool[i])
			}
			if rng.IntN(5) == 0 {
				hs = append(hs, nil)
			}
			return hs
		}
		a, b := pick(), pick()
		Attach(a)
		before := maps.Clone(binder.listens)

		Sync(a, b)

		for i, h := range pool {
			name := names[i]
			inA, inB := slices.Contains(a, h), slices.Contains(b, h)
			src := h.Source
			if src.Active() != inB {
				t.Fatalf("Round %d: %s active=%v, expected %v", round, name, src.Active(), inB)
			}
			listens := binder.listens[name] - before[name]
			switch {
			case inA && inB:
				if listens != 0 || binder.cancels[name] != 0 {
					t.Fatalf("Round %d: %s kept in both sets was re-registered", round, name)
				}
			case inB:
				if listens != 1 {
					t.Fatalf("Round %d: %s expected 1 registration, got %d", round, name, listens)
				}
			case inA:
				if binder.cancels[name] != 1 {
					t.Fatalf("Round %d: %s expected 1 removal, got %d", round, name, binder.cancels[name])
				}
			}
		}
	}
}

func TestSync_NilSets(t *testing.T) {
	binder := newFakeBinder()
	reg := NewRegistry(binder, newFakeTree(), nil)
	h := reg.OnClick(func(*SyntheticEvent) {})

	Sync(nil, []*Handler{h})
	if !h.Source.Active() {
		t.Fatalf("Expected the handler to be registered")
	}

	Sync([]*Handler{h}, nil)
	if h.Source.Active() {
		t.Errorf("Expected the handler to be removed")
	}
}

func TestSync_Reorder(t *testing.T) {
	binder := newFakeBinder()
	reg := NewRegistry(binder, newFakeTree(), nil)
	a := reg.OnClick(func(*SyntheticEvent) {})
	b := reg.OnKeyDown(func(*SyntheticEvent) {})
	Attach([]*Handler{a, b})

	Sync([]*Handler{a, b}, []*Handler{b, a})

	if binder.listens["click"] != 1 || binder.listens["keydown"] != 1 {
		t.Errorf("Expected no re-registration on reorder, got %v", binder.listens)
	}
	if binder.cancels["click"] != 0 || binder.cancels["keydown"] != 0 {
		t.Errorf("Expected no removal on reorder, got %v", binder.cancels)
	}
}

func TestSync_RepeatedEntriesCountOnce(t *testing.T) {
	binder := newFakeBinder()
	reg := NewRegistry(binder, newFakeTree(), nil)
	a := reg.OnClick(func(*SyntheticEvent) {})
	b := reg.OnKeyDown(func(*SyntheticEvent) {})
	Attach([]*Handler{a})

	Sync([]*Handler{a}, []*Handler{b, b, a})
	keydowns := b.Source.ListenerCount()
	Sync([]*Handler{b, b, a}, nil)

	if keydowns != 1 {
		t.Errorf("Expected 1 keydown registration, got %d", keydowns)
	}
	if a.Source.Active() || b.Source.Active() {
		t.Errorf("Expected every source to be released")
	}
}
