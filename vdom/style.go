package vdom

import (
	"maps"
	"slices"
	"strings"

	"github.com/aymerick/douceur/parser"
)

// Style is an inline style keyed by CSS property name.
type Style map[string]string

// ParseStyle parses inline CSS declarations such as "color: red; top: 0".
func ParseStyle(text string) (Style, error) {
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, err
	}
	style := make(Style, len(decls))
	for _, d := range decls {
		v := d.Value
		if d.Important {
			v += " !important"
		}
		style[d.Property] = v
	}
	return style, nil
}

// StyleText parses text as inline CSS and merges it into the element style.
// Declarations that fail to parse are reported and skipped.
func (n *Node) StyleText(text string) *Node {
	style, err := ParseStyle(text)
	if err != nil {
		if devChecks {
			fail("style", err.Error())
		}
		return n
	}
	return n.MergeStyle(style)
}

// String renders the style as an inline declaration list with properties in
// sorted order.
func (s Style) String() string {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(s)) {
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(s[k])
	}
	return b.String()
}
