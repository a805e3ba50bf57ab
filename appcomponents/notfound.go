package appcomponents

import "github.com/vcrobe/vtree/vdom"

// PageNotFound renders the page for unknown paths. Its props are the path.
var PageNotFound = vdom.NewStateless("PageNotFound", func(props any) *vdom.Node {
	path, _ := props.(string)
	return vdom.H("div", "not-found").Children(
		vdom.H("h1").Children("Page not found"),
		vdom.H("code").Children(path),
	)
})
