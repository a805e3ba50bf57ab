package appcomponents

import (
	"fmt"

	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/vdom"
)

// HomePage is the component rendered for the "/" route.
type HomePage struct {
	runtime.ComponentBase
	Years []int
}

func (h *HomePage) OnInit() {
	h.Years = []int{120, 300}
}

func (h *HomePage) Render() *vdom.Node {
	links := make([]*vdom.Node, len(h.Years))
	for i, year := range h.Years {
		links[i] = vdom.H("li").Key(year).Children(
			vdom.H("a").Props(vdom.Attrs{"href": fmt.Sprintf("/blog/%d", year)}).Children(fmt.Sprintf("Posts from %d", year)),
		)
	}
	return vdom.H("div", "home").Children(
		vdom.H("h1").Children("Home"),
		vdom.H("ul", "years").Children(links),
	)
}
