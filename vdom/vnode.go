package vdom

import (
	"maps"

	"github.com/vcrobe/vtree/events"
)

// Kind identifies what a Node describes.
type Kind uint8

const (
	KindText Kind = iota
	KindElement
	KindComponentClass
	KindComponentFunction
	KindConnect
	KindContext
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	case KindComponentClass:
		return "component"
	case KindComponentFunction:
		return "stateless"
	case KindConnect:
		return "connect"
	case KindContext:
		return "context"
	}
	return "unknown"
}

// IsComponent reports whether nodes of this kind render through a component.
func (k Kind) IsComponent() bool {
	return k >= KindComponentClass
}

// ChildrenShape describes what the children slot of a Node holds.
type ChildrenShape uint8

const (
	NoChildren ChildrenShape = iota
	ChildrenNode
	ChildrenArray
	ChildrenText
	ChildrenUnsafeHTML
	ChildrenValue
	ChildrenChecked
)

// HasNodes reports whether the slot holds child nodes.
func (s ChildrenShape) HasNodes() bool {
	return s == ChildrenNode || s == ChildrenArray
}

// Attrs are element attributes or component props keyed by name.
type Attrs map[string]any

// Node is an immutable description of a piece of UI. Nodes are built with the
// constructors in this package and configured through chainable setters before
// they are handed to a Reconciler or a blueprint renderer.
type Node struct {
	kind Kind
	tag  string
	typ  Type

	key    any
	hasKey bool

	className string
	attrs     Attrs
	props     any
	style     Style
	handlers  []*events.Handler

	shape    ChildrenShape
	children []*Node
	text     string
	checked  bool

	inputType string
	svg       bool
	void      bool
	input     bool
	media     bool
	autofocus bool

	checkChangedProps bool
}

func (n *Node) Kind() Kind                  { return n.kind }
func (n *Node) Tag() string                 { return n.tag }
func (n *Node) Type() Type                  { return n.typ }
func (n *Node) ClassNameValue() string      { return n.className }
func (n *Node) Attrs() Attrs                { return n.attrs }
func (n *Node) PropsValue() any             { return n.props }
func (n *Node) StyleValue() Style           { return n.style }
func (n *Node) Handlers() []*events.Handler { return n.handlers }
func (n *Node) Shape() ChildrenShape        { return n.shape }
func (n *Node) InputType() string           { return n.inputType }
func (n *Node) IsSVG() bool                 { return n.svg }
func (n *Node) IsVoid() bool                { return n.void }
func (n *Node) IsInput() bool               { return n.input }
func (n *Node) IsMedia() bool               { return n.media }
func (n *Node) HasAutofocus() bool          { return n.autofocus }

// KeyValue returns the node key and whether it was set explicitly. Unkeyed
// children carry their positional index as key.
func (n *Node) KeyValue() (any, bool) {
	return n.key, n.hasKey
}

// Text returns the text of a text node, or the text, unsafe HTML or value
// held by the children slot of an element.
func (n *Node) Text() string {
	return n.text
}

// CheckedValue returns the checked state held by an input element.
func (n *Node) CheckedValue() bool {
	return n.checked
}

// ChildNodes returns the child nodes. For ChildrenNode it is a one-element
// slice.
func (n *Node) ChildNodes() []*Node {
	return n.children
}

// Child returns the single child of a component-less wrapper or a node with
// ChildrenNode shape.
func (n *Node) Child() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// ContextValue returns the context overrides carried by a context wrapper.
func (n *Node) ContextValue() Context {
	c, _ := n.props.(Context)
	return c
}

// Key assigns an explicit key used to match the node against its previous
// siblings. Keys must be comparable.
func (n *Node) Key(key any) *Node {
	if devChecks {
		checkKey(key)
	}
	n.key = key
	n.hasKey = true
	return n
}

// ClassName sets the class attribute of an element.
func (n *Node) ClassName(className string) *Node {
	if devChecks {
		n.checkElement("className")
	}
	n.className = className
	return n
}

// Style replaces the inline style of an element.
func (n *Node) Style(style Style) *Node {
	if devChecks {
		n.checkElement("style")
	}
	n.style = style
	return n
}

// MergeStyle adds style declarations on top of the current ones.
func (n *Node) MergeStyle(style Style) *Node {
	if devChecks {
		n.checkElement("mergeStyle")
	}
	if style == nil {
		return n
	}
	if n.style == nil {
		n.style = maps.Clone(style)
		return n
	}
	merged := maps.Clone(n.style)
	maps.Copy(merged, style)
	n.style = merged
	return n
}

// Props sets element attributes. For component nodes use the props argument
// of the constructor instead.
func (n *Node) Props(attrs Attrs) *Node {
	if devChecks {
		n.checkElement("props")
		checkAttrs(attrs)
	}
	n.attrs = attrs
	return n
}

// MergeProps adds attributes on top of the current ones.
func (n *Node) MergeProps(attrs Attrs) *Node {
	if devChecks {
		n.checkElement("mergeProps")
		checkAttrs(attrs)
	}
	if attrs == nil {
		return n
	}
	if n.attrs == nil {
		n.attrs = maps.Clone(attrs)
		return n
	}
	merged := maps.Clone(n.attrs)
	maps.Copy(merged, attrs)
	n.attrs = merged
	return n
}

// Events attaches handlers to an element. Calling it with no handlers yields
// an empty, non-nil set; nil entries are ignored by the dispatcher.
func (n *Node) Events(handlers ...*events.Handler) *Node {
	if devChecks {
		n.checkElement("events")
	}
	if handlers == nil {
		handlers = []*events.Handler{}
	}
	n.handlers = handlers
	return n
}

// Children sets the element children. See normalizeChildren for the accepted
// argument types.
func (n *Node) Children(children ...any) *Node {
	if devChecks {
		n.checkChildren("children")
	}
	n.shape, n.children, n.text = normalizeChildren(children)
	return n
}

// UnsafeHTML sets raw markup as the content of an element. The markup is not
// escaped.
func (n *Node) UnsafeHTML(html string) *Node {
	if devChecks {
		n.checkChildren("unsafeHTML")
	}
	n.shape = ChildrenUnsafeHTML
	n.children = nil
	n.text = html
	return n
}

// Value sets the value of an input or textarea element.
func (n *Node) Value(value string) *Node {
	if devChecks {
		n.checkInput("value")
	}
	n.shape = ChildrenValue
	n.text = value
	return n
}

// Checked sets the checked state of a checkbox or radio input.
func (n *Node) Checked(checked bool) *Node {
	if devChecks {
		n.checkInput("checked")
		if n.inputType != "checkbox" && n.inputType != "radio" {
			fail("checked", "input type "+n.inputType+" has no checked property")
		}
	}
	n.shape = ChildrenChecked
	n.checked = checked
	return n
}

// Autofocus focuses the element once it has been created.
func (n *Node) Autofocus(focus bool) *Node {
	if devChecks {
		n.checkElement("autofocus")
	}
	n.autofocus = focus
	return n
}

// Paragraph creates a <p> element with text content.
func Paragraph(text string) *Node {
	return H("p").Children(text)
}

// Div creates a <div> element with the given children.
func Div(className string, children ...any) *Node {
	return H("div", className).Children(children...)
}

// Button creates a <button> element with a text label.
func Button(label string, handlers ...*events.Handler) *Node {
	n := H("button").Children(label)
	if len(handlers) > 0 {
		n.Events(handlers...)
	}
	return n
}

// InputText returns an <input type="text"> element.
func InputText(value string) *Node {
	return Input("text").Value(value)
}
