// Package multiline holds a component whose text spans several lines.
package multiline

import (
	"fmt"

	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/vdom"
)

// MultilineText renders a titled message and a counter. The message keeps
// its line breaks.
type MultilineText struct {
	runtime.ComponentBase
	Title   string
	Message string
	Count   int
}

func (m *MultilineText) Render() *vdom.Node {
	return vdom.H("section", "multiline").
		Props(vdom.Attrs{"data-count": m.Count}).
		Children(
			vdom.H("h2").Children(m.Title),
			vdom.H("pre").Children(m.Message),
			vdom.Paragraph(fmt.Sprintf("Count: %d", m.Count)),
		)
}
