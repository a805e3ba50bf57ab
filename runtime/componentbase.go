package runtime

import (
	"fmt"

	"github.com/vcrobe/vtree/console"
	"github.com/vcrobe/vtree/scheduler"
	"github.com/vcrobe/vtree/vdom"
)

// ComponentBase is a struct that components can embed to gain access to the
// StateHasChanged method and to the props they were rendered with.
type ComponentBase struct {
	inst  *vdom.Instance
	props any
}

// BindInstance is called by the reconciler once the component is mounted.
// It should not be called by user code.
func (b *ComponentBase) BindInstance(inst *vdom.Instance) {
	b.inst = inst
}

// Instance returns the backing instance, or nil before mount.
func (b *ComponentBase) Instance() *vdom.Instance {
	return b.inst
}

// SetProps stores the initial props. Component constructors call it.
func (b *ComponentBase) SetProps(props any) {
	b.props = props
}

// Props returns the props of the last render.
func (b *ComponentBase) Props() any {
	return b.props
}

// NewPropsReceived stores new props before a re-render.
func (b *ComponentBase) NewPropsReceived(_, newProps any) {
	b.props = newProps
}

// StateHasChanged signals that the component state has been updated and the
// component should be re-rendered.
func (b *ComponentBase) StateHasChanged() {
	if b.inst == nil {
		console.Error("StateHasChanged called, but the component is not mounted")
		return
	}
	b.inst.Invalidate()
}

// StartAnimation re-renders the component on every frame of s.
func (b *ComponentBase) StartAnimation(s *scheduler.Scheduler) {
	if b.inst != nil {
		s.StartComponentAnimation(b.inst)
	}
}

// StopAnimation stops the per-frame re-renders started by StartAnimation.
func (b *ComponentBase) StopAnimation(s *scheduler.Scheduler) {
	if b.inst != nil {
		s.StopComponentAnimation(b.inst)
	}
}

// Navigate requests client-side navigation to a new path through the root
// the component is mounted in.
func (b *ComponentBase) Navigate(path string) error {
	if b.inst == nil {
		return fmt.Errorf("navigate to %s: %w", path, ErrNotMounted)
	}
	nav, ok := b.inst.Context()[NavigatorKey].(Navigator)
	if !ok {
		return fmt.Errorf("navigate to %s: no navigator configured", path)
	}
	return nav.Navigate(path)
}
