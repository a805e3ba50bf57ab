// Package databinding holds a component that interpolates its state into
// the rendered markup.
package databinding

import (
	"fmt"

	"github.com/vcrobe/vtree/events"
	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/vdom"
)

// Counter renders its count and label and increments on button clicks.
type Counter struct {
	runtime.ComponentBase

	Count  int
	Label  string
	Events *events.Registry

	onIncrement *events.Handler
}

// OnInit creates the click handler once so re-renders keep the same handler.
func (c *Counter) OnInit() {
	if c.Events != nil {
		c.onIncrement = c.Events.OnClick(events.AdaptNoArgEvent(c.Increment))
	}
}

func (c *Counter) Render() *vdom.Node {
	button := vdom.H("button", "increment").Children("Increment")
	if c.onIncrement != nil {
		button.Events(c.onIncrement)
	}
	return vdom.Div("counter",
		vdom.Paragraph(fmt.Sprintf("Count: %d", c.Count)),
		vdom.Paragraph("Label: "+c.Label),
		button,
	)
}

func (c *Counter) Increment() {
	c.Count++
	c.StateHasChanged()
}

func (c *Counter) SetLabel(label string) {
	c.Label = label
	c.StateHasChanged()
}
