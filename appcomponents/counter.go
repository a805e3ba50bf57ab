package appcomponents

import (
	"fmt"

	"github.com/vcrobe/vtree/events"
	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/signals"
	"github.com/vcrobe/vtree/vdom"
)

// CounterBadge shows the shared counter. It re-renders only when the counter
// value changes.
var CounterBadge = signals.Connect(
	"CounterBadge",
	CounterKey,
	func(v int, _ any) int { return v },
	func(count int) *vdom.Node {
		return vdom.H("span", "badge").Children(fmt.Sprintf("Clicks: %d", count))
	},
)

// CounterControls increments and resets the shared counter.
type CounterControls struct {
	runtime.ComponentBase

	app         *App
	onIncrement *events.Handler
	onReset     *events.Handler
}

func (c *CounterControls) OnInit() {
	if c.app.Events == nil {
		return
	}
	c.onIncrement = c.app.Events.OnClick(events.AdaptNoArgEvent(func() {
		c.app.Counter.Update(func(v int) int { return v + 1 })
	}))
	c.onReset = c.app.Events.OnClick(events.AdaptNoArgEvent(func() {
		c.app.Counter.Set(0)
	}))
}

func (c *CounterControls) Render() *vdom.Node {
	increment := vdom.H("button", "increment").Children("+1")
	reset := vdom.H("button", "reset").Children("Reset")
	if c.onIncrement != nil {
		increment.Events(c.onIncrement)
		reset.Events(c.onReset)
	}
	return vdom.H("div", "controls").Children(increment, reset)
}

// ThemeLabel shows the theme published by the layout.
var ThemeLabel = signals.Connect(
	"ThemeLabel",
	ThemeKey,
	func(v string, _ any) string { return v },
	func(theme string) *vdom.Node {
		return vdom.H("small", "theme").Children("Theme: " + theme)
	},
)
