package router

import "github.com/vcrobe/vtree/vdom"

// PageFunc builds the page for a matched route from its path parameters.
type PageFunc func(params map[string]string) *vdom.Node

// Route binds a path pattern to a page. Patterns may contain parameters in
// curly braces, e.g. "/blog/{year}". When Accept is set, a path only matches
// if Accept approves its parameters.
type Route struct {
	Path   string
	Page   PageFunc
	Accept func(params map[string]string) bool
}
