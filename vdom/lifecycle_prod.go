//go:build prod

package vdom

import "github.com/vcrobe/vtree/console"

// callOnInit invokes the OnInit lifecycle method in production mode.
// Panics are recovered and logged to keep the rest of the tree alive.
func callOnInit(init Initializer, name string) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("OnInit panic in component", name, rec)
		}
	}()
	init.OnInit()
}

// callOnPropertiesSet invokes the OnPropertiesSet lifecycle method in
// production mode.
func callOnPropertiesSet(recv ParameterReceiver, name string) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("OnPropertiesSet panic in component", name, rec)
		}
	}()
	recv.OnPropertiesSet()
}

// callOnDestroy invokes the OnDestroy lifecycle method in production mode.
func callOnDestroy(cleaner Cleaner, name string) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("OnDestroy panic in component", name, rec)
		}
	}()
	cleaner.OnDestroy()
}
