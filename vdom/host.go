package vdom

import "github.com/vcrobe/vtree/events"

// NativeNode is a node realised by a Host.
type NativeNode = any

// Host applies the mutations computed by the Reconciler to a concrete
// document. Parent and NextSibling return nil when there is none.
type Host interface {
	CreateElement(tag string, svg bool) NativeNode
	CreateText(text string) NativeNode

	SetText(n NativeNode, text string)
	SetTextContent(n NativeNode, text string)
	SetInnerHTML(n NativeNode, html string)
	SetClassName(n NativeNode, className string)
	SetAttr(n NativeNode, name string, value any)
	RemoveAttr(n NativeNode, name string)
	SetStyle(n NativeNode, style Style)
	SetValue(n NativeNode, value string)
	SetChecked(n NativeNode, checked bool)
	SetHandlers(n NativeNode, handlers []*events.Handler)
	Focus(n NativeNode)

	// InsertBefore inserts child before ref, or appends it when ref is nil.
	// An attached child is moved.
	InsertBefore(parent, child, ref NativeNode)
	RemoveChild(parent, child NativeNode)
	ReplaceChild(parent, newChild, oldChild NativeNode)
	Parent(n NativeNode) NativeNode
	NextSibling(n NativeNode) NativeNode
}
