package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vcrobe/vtree/vdom"
)

// ErrNoRoute is returned when no route matches a path.
var ErrNoRoute = errors.New("router: no route matches path")

// Table is an ordered list of routes. The first matching route wins.
type Table struct {
	routes   []Route
	notFound PageFunc
}

// New creates a route table.
func New(routes ...Route) *Table {
	return &Table{routes: routes}
}

// Handle registers a route.
func (t *Table) Handle(path string, page PageFunc) {
	t.routes = append(t.routes, Route{Path: path, Page: page})
}

// HandleIf registers a route that matches only when accept approves the
// parameters of the path.
func (t *Table) HandleIf(path string, accept func(map[string]string) bool, page PageFunc) {
	t.routes = append(t.routes, Route{Path: path, Page: page, Accept: accept})
}

// HandleNotFound sets the page rendered when no route matches.
func (t *Table) HandleNotFound(page PageFunc) {
	t.notFound = page
}

// Routes returns the registered routes.
func (t *Table) Routes() []Route {
	return t.routes
}

// Match returns the route matching path and its parameters.
func (t *Table) Match(path string) (Route, map[string]string, error) {
	for _, route := range t.routes {
		if !matchesPattern(route.Path, path) {
			continue
		}
		params := extractParams(route.Path, path)
		if route.Accept != nil && !route.Accept(params) {
			continue
		}
		return route, params, nil
	}
	return Route{}, nil, fmt.Errorf("%w: %s", ErrNoRoute, path)
}

// Resolve builds the page for path, falling back to the not-found page.
func (t *Table) Resolve(path string) (*vdom.Node, error) {
	route, params, err := t.Match(path)
	if err != nil {
		if t.notFound != nil {
			return t.notFound(map[string]string{"path": path}), nil
		}
		return nil, err
	}
	return route.Page(params), nil
}

func normalize(path string) string {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

func isParam(part string) bool {
	return strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}")
}

// matchesPattern checks if an actual path matches a route pattern.
func matchesPattern(pattern, path string) bool {
	pattern, path = normalize(pattern), normalize(path)
	if pattern == path {
		return true
	}

	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i := range patternParts {
		if isParam(patternParts[i]) {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if patternParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}

// extractParams parses path parameters based on a route pattern.
func extractParams(pattern, path string) map[string]string {
	patternParts := strings.Split(strings.Trim(normalize(pattern), "/"), "/")
	pathParts := strings.Split(strings.Trim(normalize(path), "/"), "/")

	params := make(map[string]string)
	for i := range patternParts {
		if i >= len(pathParts) {
			break
		}
		if isParam(patternParts[i]) {
			params[strings.Trim(patternParts[i], "{}")] = pathParts[i]
		}
	}
	return params
}
