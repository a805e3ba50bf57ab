package ssr

import (
	"fmt"
	"html"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/vcrobe/vtree/vdom"
)

// Serialize returns the HTML markup of b. Markup of nodes serialized before
// is reused without being rebuilt.
func (r *Renderer) Serialize(b *Blueprint) string {
	if b.frozen {
		return b.markup
	}
	var sb strings.Builder
	node := b.Node
	switch node.Kind() {
	case vdom.KindText:
		sb.WriteString(r.escape(node.Text()))
	case vdom.KindElement:
		r.openTag(&sb, node)
		switch node.Shape() {
		case vdom.ChildrenText:
			sb.WriteString(r.escape(node.Text()))
		case vdom.ChildrenUnsafeHTML:
			sb.WriteString(node.Text())
		case vdom.ChildrenValue:
			if !node.IsVoid() {
				sb.WriteString(r.escape(node.Text()))
			}
		case vdom.ChildrenNode, vdom.ChildrenArray:
			for _, c := range b.children {
				sb.WriteString(r.Serialize(c))
			}
		}
		if !node.IsVoid() {
			sb.WriteString("</" + node.Tag() + ">")
		}
	default:
		for _, c := range b.children {
			sb.WriteString(r.Serialize(c))
		}
	}
	b.markup = sb.String()
	b.frozen = true
	r.stats.Serialized++
	return b.markup
}

// RenderToString renders node and returns its markup.
func (r *Renderer) RenderToString(node *vdom.Node, ctx vdom.Context) string {
	return r.Serialize(r.CreateBlueprint(node, ctx, nil))
}

// RenderToString renders node with a throwaway renderer.
func RenderToString(node *vdom.Node, ctx vdom.Context) string {
	return NewRenderer(nil).RenderToString(node, ctx)
}

func (r *Renderer) escape(s string) string {
	r.stats.Escapes++
	return html.EscapeString(s)
}

func (r *Renderer) openTag(sb *strings.Builder, node *vdom.Node) {
	sb.WriteString("<" + node.Tag())
	if t := node.InputType(); t != "" {
		r.writeAttr(sb, "type", t)
	}
	if c := node.ClassNameValue(); c != "" {
		r.writeAttr(sb, "class", c)
	}
	attrs := node.Attrs()
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		switch v := attrs[k].(type) {
		case nil:
		case bool:
			if v {
				sb.WriteString(" " + k)
			}
		default:
			r.writeAttr(sb, k, formatAttr(v))
		}
	}
	if style := node.StyleValue(); len(style) > 0 {
		r.writeAttr(sb, "style", style.String())
	}
	switch node.Shape() {
	case vdom.ChildrenValue:
		if node.IsVoid() {
			r.writeAttr(sb, "value", node.Text())
		}
	case vdom.ChildrenChecked:
		if node.CheckedValue() {
			sb.WriteString(" checked")
		}
	}
	if node.HasAutofocus() {
		sb.WriteString(" autofocus")
	}
	sb.WriteString(">")
}

func (r *Renderer) writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(" " + name + `="` + r.escape(value) + `"`)
}

func formatAttr(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
