package vdom

import "golang.org/x/net/html/atom"

// Text creates a text node.
func Text(s string) *Node {
	return &Node{kind: KindText, text: s}
}

// H creates an HTML element. An optional class name may be passed.
func H(tag string, className ...string) *Node {
	n := &Node{kind: KindElement, tag: tag}
	if len(className) > 0 {
		n.className = className[0]
	}
	switch atom.Lookup([]byte(tag)) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
		atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr:
		n.void = true
	case atom.Input:
		n.void = true
		n.input = true
	case atom.Textarea:
		n.input = true
	case atom.Audio, atom.Video:
		n.media = true
	}
	return n
}

// S creates an SVG element.
func S(tag string, className ...string) *Node {
	n := &Node{kind: KindElement, tag: tag, svg: true}
	if len(className) > 0 {
		n.className = className[0]
	}
	return n
}

// Input creates an <input> element of the given type.
func Input(inputType string, className ...string) *Node {
	n := H("input", className...)
	n.inputType = inputType
	return n
}

// TextArea creates a <textarea> element.
func TextArea(className ...string) *Node {
	return H("textarea", className...)
}

// Media creates an <audio> or <video> element.
func Media(tag string, className ...string) *Node {
	n := H(tag, className...)
	n.media = true
	return n
}

// Class creates a node rendered by a stateful component class.
func Class(class *ComponentClass, props any) *Node {
	return &Node{kind: KindComponentClass, typ: class, props: props}
}

// Stateless creates a node rendered by a stateless component.
func Stateless(fn *StatelessComponent, props any) *Node {
	return &Node{
		kind:              KindComponentFunction,
		typ:               fn,
		props:             props,
		checkChangedProps: fn.PropsChanged != nil,
	}
}

// Connect creates a node whose output is derived from the ambient context
// through a selector.
func Connect(desc *ConnectDescriptor, props any) *Node {
	return &Node{kind: KindConnect, typ: desc, props: props}
}

// UpdateContext wraps child so that its subtree sees ctx merged over the
// ambient context.
func UpdateContext(ctx Context, child *Node) *Node {
	return &Node{
		kind:     KindContext,
		typ:      contextType,
		props:    ctx,
		shape:    ChildrenNode,
		children: []*Node{child},
	}
}
