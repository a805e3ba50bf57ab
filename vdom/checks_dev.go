//go:build !prod

package vdom

// devChecks enables construction-time checks on nodes.
const devChecks = true
