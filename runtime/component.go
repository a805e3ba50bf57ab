package runtime

import "github.com/vcrobe/vtree/vdom"

// Component is implemented by every stateful component.
type Component = vdom.Component

// Navigator performs client-side navigation.
type Navigator interface {
	Navigate(path string) error
}

// NavigatorKey is the context key under which a Root exposes itself as the
// Navigator of the components it renders.
const NavigatorKey = "runtime.navigator"
