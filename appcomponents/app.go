// Package appcomponents is a small routed demo application whose pages share
// a counter signal.
package appcomponents

import (
	"strconv"

	"github.com/vcrobe/vtree/events"
	"github.com/vcrobe/vtree/router"
	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/signals"
	"github.com/vcrobe/vtree/vdom"
)

// Context keys read by the connected components.
const (
	CounterKey = "app.counter"
	ThemeKey   = "app.theme"
)

// App holds the state shared by the pages.
type App struct {
	// Events creates the handlers of interactive elements. Pages rendered
	// without a registry, e.g. on the server, have no handlers.
	Events  *events.Registry
	Counter *signals.Signal[int]
	Theme   *signals.Signal[string]

	home     *vdom.ComponentClass
	blog     *vdom.ComponentClass
	controls *vdom.ComponentClass
}

// New creates the application.
func New(reg *events.Registry) *App {
	a := &App{Events: reg, Counter: signals.New(0), Theme: signals.New("light")}
	a.home = vdom.NewClass("HomePage", func(any) vdom.Component {
		return &HomePage{}
	})
	a.blog = vdom.NewClass("BlogPage", func(props any) vdom.Component {
		p := &BlogPage{app: a}
		p.SetProps(props)
		return p
	})
	a.controls = vdom.NewClass("CounterControls", func(any) vdom.Component {
		return &CounterControls{app: a}
	})
	return a
}

// Context returns the ambient context the pages expect.
func (a *App) Context() vdom.Context {
	return vdom.Context{CounterKey: a.Counter}
}

// Routes returns the route table of the application.
func (a *App) Routes() *router.Table {
	t := router.New()
	t.Handle("/", func(map[string]string) *vdom.Node {
		return a.Layout(vdom.Class(a.home, nil))
	})
	t.HandleIf("/blog/{year}", validYear, func(params map[string]string) *vdom.Node {
		year, _ := strconv.Atoi(params["year"])
		return a.Layout(vdom.Class(a.blog, year))
	})
	t.Handle("/conditionals", func(map[string]string) *vdom.Node {
		return a.Layout(vdom.Stateless(InlineConditionals, Conditions{IsReady: true, IsActive: true}))
	})
	t.HandleNotFound(func(params map[string]string) *vdom.Node {
		return a.Layout(vdom.Stateless(PageNotFound, params["path"]))
	})
	return t
}

func validYear(params map[string]string) bool {
	_, err := strconv.Atoi(params["year"])
	return err == nil
}

// Layout wraps a page with the navigation bar and the shared counter. The
// theme is published to the page through the context.
func (a *App) Layout(page *vdom.Node) *vdom.Node {
	return vdom.UpdateContext(vdom.Context{ThemeKey: a.Theme},
		vdom.H("div", "layout").Children(
			vdom.H("nav").Children(
				vdom.H("a").Props(vdom.Attrs{"href": "/"}).Children("Home"),
				vdom.Connect(CounterBadge, nil),
			),
			vdom.H("main").Children(page),
			vdom.Class(a.controls, nil),
			vdom.H("footer").Children(vdom.Connect(ThemeLabel, nil)),
		),
	)
}

// Bind publishes the application context on root and refreshes the connected
// components whenever a signal changes. The returned function stops the
// refreshes.
func (a *App) Bind(root *runtime.Root) (unbind func()) {
	root.SetContext(a.Context())
	stopCounter := a.Counter.Subscribe(root.Update)
	stopTheme := a.Theme.Subscribe(root.Update)
	return func() {
		stopCounter()
		stopTheme()
	}
}
