package appcomponents

import (
	"fmt"

	"github.com/vcrobe/vtree/console"
	"github.com/vcrobe/vtree/events"
	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/vdom"
)

// BlogPage is the component rendered for the "/blog/{year}" route. Its props
// are the year.
type BlogPage struct {
	runtime.ComponentBase

	Year int

	app    *App
	onHome *events.Handler
}

func (b *BlogPage) OnInit() {
	if b.app.Events != nil {
		b.onHome = b.app.Events.OnClick(b.NavigateToHome)
	}
}

// OnPropertiesSet copies the year out of the props.
func (b *BlogPage) OnPropertiesSet() {
	if year, ok := b.Props().(int); ok {
		b.Year = year
	}
}

func (b *BlogPage) Render() *vdom.Node {
	back := vdom.H("button", "home").Children("Back to home")
	if b.onHome != nil {
		back.Events(b.onHome)
	}
	return vdom.H("article", "blog").Children(
		vdom.H("h1").Children(fmt.Sprintf("Blog %d", b.Year)),
		back,
	)
}

// NavigateToHome handles navigation to the home page.
func (b *BlogPage) NavigateToHome(e *events.SyntheticEvent) {
	e.PreventDefault()
	if err := b.Navigate("/"); err != nil {
		console.Error("Navigation error:", err.Error())
	}
}
