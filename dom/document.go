// Package dom is a headless document built on golang.org/x/net/html. It
// realises node trees produced by the reconciler and delivers simulated native
// events to the event sources bound to it.
package dom

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/vtree/events"
	"github.com/vcrobe/vtree/vdom"
)

// ErrNoMatch is returned when a selector matches no node.
var ErrNoMatch = errors.New("dom: no matching node")

var (
	_ vdom.Host     = (*Document)(nil)
	_ events.Tree   = (*Document)(nil)
	_ events.Binder = (*Document)(nil)
)

// Stats counts host mutations.
type Stats struct {
	Created  int
	Removed  int
	Moved    int
	Replaced int
}

type listener struct {
	capture bool
	passive bool
	fn      func(*events.NativeEvent)
}

// Document is a mutable HTML document.
type Document struct {
	root      *html.Node
	handlers  map[*html.Node][]*events.Handler
	listeners map[string][]*listener
	focused   *html.Node
	stats     Stats
	logger    *zap.Logger
}

// NewDocument creates an empty <html><head></head><body></body></html>
// document.
func NewDocument(logger *zap.Logger) *Document {
	doc, err := Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"), logger)
	if err != nil {
		panic(err)
	}
	return doc
}

// Parse reads an HTML document.
func Parse(r io.Reader, logger *zap.Logger) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Document{
		root:      root,
		handlers:  make(map[*html.Node][]*events.Handler),
		listeners: make(map[string][]*listener),
		logger:    logger.Named("dom"),
	}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the <body> element.
func (d *Document) Body() *html.Node {
	n, err := d.Query("body")
	if err != nil {
		return nil
	}
	return n
}

// Query returns the first element matching a CSS selector.
func (d *Document) Query(selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	n := sel.MatchFirst(d.root)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	return n, nil
}

// QueryAll returns every element matching a CSS selector.
func (d *Document) QueryAll(selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	return sel.MatchAll(d.root), nil
}

// FindXPath returns the nodes matching an XPath expression.
func (d *Document) FindXPath(expr string) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid xpath %q: %w", expr, err)
	}
	return nodes, nil
}

// OuterHTML renders n and its subtree.
func (d *Document) OuterHTML(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		d.logger.Warn("render failed", zap.Error(err))
	}
	return b.String()
}

// InnerHTML renders the children of n.
func (d *Document) InnerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			d.logger.Warn("render failed", zap.Error(err))
		}
	}
	return b.String()
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Focused returns the element focused last.
func (d *Document) Focused() *html.Node {
	return d.focused
}

// Stats returns the mutation counters.
func (d *Document) Stats() Stats {
	return d.stats
}

// ResetStats zeroes the mutation counters.
func (d *Document) ResetStats() {
	d.stats = Stats{}
}

func node(n vdom.NativeNode) *html.Node {
	if n == nil {
		return nil
	}
	return n.(*html.Node)
}

func native(n *html.Node) vdom.NativeNode {
	if n == nil {
		return nil
	}
	return n
}

func (d *Document) CreateElement(tag string, svg bool) vdom.NativeNode {
	d.stats.Created++
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if svg {
		n.Namespace = "svg"
		n.DataAtom = 0
	}
	return n
}

func (d *Document) CreateText(text string) vdom.NativeNode {
	d.stats.Created++
	return &html.Node{Type: html.TextNode, Data: text}
}

func (d *Document) SetText(n vdom.NativeNode, text string) {
	node(n).Data = text
}

func (d *Document) SetTextContent(n vdom.NativeNode, text string) {
	el := node(n)
	removeAllChildren(el)
	if text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (d *Document) SetInnerHTML(n vdom.NativeNode, markup string) {
	el := node(n)
	removeAllChildren(el)
	nodes, err := html.ParseFragment(strings.NewReader(markup), el)
	if err != nil {
		d.logger.Warn("invalid inner html", zap.Error(err))
		return
	}
	for _, c := range nodes {
		el.AppendChild(c)
	}
}

func (d *Document) SetClassName(n vdom.NativeNode, className string) {
	if className == "" {
		removeAttr(node(n), "class")
		return
	}
	setAttr(node(n), "class", className)
}

// SetAttr sets an attribute. true renders as an empty attribute; false and
// nil remove it.
func (d *Document) SetAttr(n vdom.NativeNode, name string, value any) {
	el := node(n)
	switch v := value.(type) {
	case nil:
		removeAttr(el, name)
	case bool:
		if v {
			setAttr(el, name, "")
		} else {
			removeAttr(el, name)
		}
	default:
		setAttr(el, name, FormatAttr(v))
	}
}

func (d *Document) RemoveAttr(n vdom.NativeNode, name string) {
	removeAttr(node(n), name)
}

func (d *Document) SetStyle(n vdom.NativeNode, style vdom.Style) {
	if len(style) == 0 {
		removeAttr(node(n), "style")
		return
	}
	setAttr(node(n), "style", style.String())
}

// SetValue sets the value of an input, or the text of a textarea.
func (d *Document) SetValue(n vdom.NativeNode, value string) {
	el := node(n)
	if el.DataAtom == atom.Textarea {
		d.SetTextContent(el, value)
		return
	}
	setAttr(el, "value", value)
}

func (d *Document) SetChecked(n vdom.NativeNode, checked bool) {
	d.SetAttr(n, "checked", checked)
}

func (d *Document) SetHandlers(n vdom.NativeNode, handlers []*events.Handler) {
	if handlers == nil {
		delete(d.handlers, node(n))
		return
	}
	d.handlers[node(n)] = handlers
}

func (d *Document) Focus(n vdom.NativeNode) {
	d.focused = node(n)
}

func (d *Document) InsertBefore(parent, child, ref vdom.NativeNode) {
	c := node(child)
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
		d.stats.Moved++
	}
	node(parent).InsertBefore(c, node(ref))
}

func (d *Document) RemoveChild(parent, child vdom.NativeNode) {
	c := node(child)
	if c.Parent != node(parent) {
		return
	}
	node(parent).RemoveChild(c)
	d.stats.Removed++
}

func (d *Document) ReplaceChild(parent, newChild, oldChild vdom.NativeNode) {
	p, o := node(parent), node(oldChild)
	c := node(newChild)
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	p.InsertBefore(c, o)
	p.RemoveChild(o)
	d.stats.Replaced++
}

// Parent implements vdom.Host and events.Tree.
func (d *Document) Parent(n any) any {
	if n == nil {
		return nil
	}
	return native(n.(*html.Node).Parent)
}

func (d *Document) NextSibling(n vdom.NativeNode) vdom.NativeNode {
	return native(node(n).NextSibling)
}

// Handlers returns the handlers attached to n.
func (d *Document) Handlers(n any) []*events.Handler {
	el, _ := n.(*html.Node)
	return d.handlers[el]
}

// Listen installs a native listener for eventType.
func (d *Document) Listen(eventType string, capture, passive bool, fn func(*events.NativeEvent)) func() {
	l := &listener{capture: capture, passive: passive, fn: fn}
	d.listeners[eventType] = append(d.listeners[eventType], l)
	d.logger.Debug("listener added", zap.String("event", eventType), zap.Bool("capture", capture))
	return func() {
		ls := d.listeners[eventType]
		for i, x := range ls {
			if x == l {
				d.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount returns the number of native listeners for eventType.
func (d *Document) ListenerCount(eventType string) int {
	return len(d.listeners[eventType])
}

// Fire delivers a native event to the listeners of its type and reports
// whether the default action was prevented. A zero Type is filled from
// eventType.
func (d *Document) Fire(eventType string, ev *events.NativeEvent) bool {
	if ev.Type == "" {
		ev.Type = eventType
	}
	for _, l := range append([]*listener(nil), d.listeners[eventType]...) {
		l.fn(ev)
	}
	return ev.DefaultPrevented
}

// FormatAttr converts an attribute value to its string form.
func FormatAttr(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name && n.Attr[i].Namespace == "" {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name && n.Attr[i].Namespace == "" {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Attr returns the value of an attribute of n.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func removeAllChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}
