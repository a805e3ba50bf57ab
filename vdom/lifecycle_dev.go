//go:build !prod

package vdom

// callOnInit invokes the OnInit lifecycle method in development mode.
// Panics propagate to aid debugging and fast failure.
func callOnInit(init Initializer, name string) {
	init.OnInit()
}

// callOnPropertiesSet invokes the OnPropertiesSet lifecycle method in
// development mode.
func callOnPropertiesSet(recv ParameterReceiver, name string) {
	recv.OnPropertiesSet()
}

// callOnDestroy invokes the OnDestroy lifecycle method in development mode.
func callOnDestroy(cleaner Cleaner, name string) {
	cleaner.OnDestroy()
}
