//go:build prod

package vdom

const devChecks = false
