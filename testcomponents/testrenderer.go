// Package testcomponents holds components and a harness for exercising them
// against a headless document.
package testcomponents

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/vcrobe/vtree/dom"
	"github.com/vcrobe/vtree/events"
	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/vdom"
)

// TestRenderer mounts components into an in-memory document so tests can
// fire events and inspect the resulting markup without a browser.
type TestRenderer struct {
	doc      *dom.Document
	registry *events.Registry
	root     *runtime.Root
}

// NewTestRenderer creates an empty document with a #app mount point.
func NewTestRenderer(opts ...runtime.Option) *TestRenderer {
	doc := dom.NewDocument(zap.NewNop())
	body := doc.Body()
	app := &html.Node{Type: html.ElementNode, Data: "div", Attr: []html.Attribute{{Key: "id", Val: "app"}}}
	body.AppendChild(app)
	return &TestRenderer{
		doc:      doc,
		registry: events.NewRegistry(doc, doc, zap.NewNop()),
		root:     runtime.NewRoot(doc, app, opts...),
	}
}

// Document returns the document components are rendered into.
func (r *TestRenderer) Document() *dom.Document { return r.doc }

// Registry returns the event registry bound to the document.
func (r *TestRenderer) Registry() *events.Registry { return r.registry }

// Root returns the mounted root.
func (r *TestRenderer) Root() *runtime.Root { return r.root }

// Mount renders comp as the root component. The same component value is
// kept across renders so tests can drive it directly.
func (r *TestRenderer) Mount(comp vdom.Component) *vdom.Instance {
	class := vdom.NewClass(fmt.Sprintf("%T", comp), func(any) vdom.Component { return comp })
	r.root.Render(vdom.Class(class, nil))
	return r.root.Instance()
}

// Render mounts or updates the root node.
func (r *TestRenderer) Render(n *vdom.Node) {
	r.root.Render(n)
}

// HTML returns the markup inside the mount point.
func (r *TestRenderer) HTML() string {
	app, err := r.doc.Query("#app")
	if err != nil {
		return ""
	}
	return r.doc.InnerHTML(app)
}

// Query returns the first element matching selector.
func (r *TestRenderer) Query(selector string) (*html.Node, error) {
	return r.doc.Query(selector)
}

// Text returns the text content of the first element matching selector.
func (r *TestRenderer) Text(selector string) (string, error) {
	n, err := r.doc.Query(selector)
	if err != nil {
		return "", err
	}
	return textContent(n), nil
}

// Click fires a click on the first element matching selector.
func (r *TestRenderer) Click(selector string) error {
	return r.Fire(selector, "click", &events.NativeEvent{Which: 1})
}

// Fire delivers a native event of eventType targeting the first element
// matching selector.
func (r *TestRenderer) Fire(selector, eventType string, ev *events.NativeEvent) error {
	n, err := r.doc.Query(selector)
	if err != nil {
		return err
	}
	ev.Target = n
	r.doc.Fire(eventType, ev)
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var s string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s += textContent(c)
	}
	return s
}
