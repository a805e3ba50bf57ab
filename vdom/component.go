package vdom

import "maps"

// Type is the tag of a component node. Two component nodes are compatible
// only when they share the same Type value.
type Type interface {
	TypeName() string
}

// Component is a stateful component instance.
type Component interface {
	// Render returns the node tree describing the current state.
	Render() *Node
}

// PropsChecker lets a component decide whether new props require a render.
// Components without it re-render whenever the props are not identical.
type PropsChecker interface {
	IsPropsChanged(oldProps, newProps any) bool
}

// PropsReceiver receives new props before the component re-renders.
type PropsReceiver interface {
	NewPropsReceived(oldProps, newProps any)
}

// Initializer is called once, before the first render.
type Initializer interface {
	OnInit()
}

// ParameterReceiver is called before every render triggered by new props,
// including the first one.
type ParameterReceiver interface {
	OnPropertiesSet()
}

// Cleaner is called when the component is removed from the tree.
type Cleaner interface {
	OnDestroy()
}

// InstanceBinder receives the backing instance of a component right after it
// has been created, so the component can request its own updates.
type InstanceBinder interface {
	BindInstance(inst *Instance)
}

// ComponentClass describes a stateful component.
type ComponentClass struct {
	Name string
	New  func(props any) Component
}

func (c *ComponentClass) TypeName() string { return c.Name }

// NewClass creates a component class.
func NewClass(name string, ctor func(props any) Component) *ComponentClass {
	return &ComponentClass{Name: name, New: ctor}
}

// Instantiate creates a component and runs its init hooks.
func (c *ComponentClass) Instantiate(props any) Component {
	comp := c.New(props)
	if init, ok := comp.(Initializer); ok {
		callOnInit(init, c.Name)
	}
	if recv, ok := comp.(ParameterReceiver); ok {
		callOnPropertiesSet(recv, c.Name)
	}
	return comp
}

// StatelessComponent renders props without keeping state between renders.
type StatelessComponent struct {
	Name   string
	Render func(props any) *Node
	// PropsChanged overrides the default referential props comparison.
	PropsChanged func(oldProps, newProps any) bool
}

func (s *StatelessComponent) TypeName() string { return s.Name }

// RenderProps renders props. A nil result becomes an empty text node.
func (s *StatelessComponent) RenderProps(props any) *Node {
	return orEmpty(s.Render(props))
}

// NewStateless creates a stateless component.
func NewStateless(name string, render func(props any) *Node) *StatelessComponent {
	return &StatelessComponent{Name: name, Render: render}
}

// SelectorData is the output of a connect selector. A selector returns the
// previous SelectorData unchanged when nothing relevant changed.
type SelectorData struct {
	In  any
	Out any
}

// ConnectDescriptor binds a selector over the ambient context to a render
// function.
type ConnectDescriptor struct {
	Name   string
	Select func(prev *SelectorData, props any, ctx Context) *SelectorData
	Render func(out any) *Node
}

func (d *ConnectDescriptor) TypeName() string { return d.Name }

// RenderOut renders selector output. A nil result becomes an empty text
// node.
func (d *ConnectDescriptor) RenderOut(out any) *Node {
	return orEmpty(d.Render(out))
}

// RenderComponent renders comp. A nil result becomes an empty text node.
func RenderComponent(comp Component) *Node {
	return orEmpty(comp.Render())
}

type contextWrapper struct{}

func (contextWrapper) TypeName() string { return "context" }

var contextType Type = contextWrapper{}

// Context is the ambient key/value map visible to connect selectors.
type Context map[string]any

// Merge returns a new context with overrides applied on top of c.
func (c Context) Merge(overrides Context) Context {
	if len(overrides) == 0 {
		return c
	}
	merged := make(Context, len(c)+len(overrides))
	maps.Copy(merged, c)
	maps.Copy(merged, overrides)
	return merged
}
