//go:build !prod

package runtime

// guard runs a render step in development mode. Panics propagate to aid
// debugging and fast failure.
func (r *Root) guard(op string, fn func()) {
	fn()
}
